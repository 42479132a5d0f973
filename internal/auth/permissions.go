package auth

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

func IsAdmin(role string) bool {
	return role == RoleAdmin
}

func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleUser:
		return nil
	default:
		return errors.New("invalid role")
	}
}
