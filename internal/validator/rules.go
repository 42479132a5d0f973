package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/laakri/DevCollab/internal/models"
)

const maxTagLength = 50

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func registerCustomRules(v *validator.Validate) {
	// A rule that fails to register is a programming error; refuse to start.
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-session-status", validateSessionStatus)
	mustRegister("username", validateUsername)
	mustRegister("tags", validateTags)
}

func validateSessionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	return models.SessionStatus(value).IsValid()
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return usernamePattern.MatchString(value)
}

// validateTags checks every element of a []string.
func validateTags(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		tag := strings.TrimSpace(field.Index(i).String())
		if tag == "" || len(tag) > maxTagLength {
			return false
		}
	}
	return true
}
