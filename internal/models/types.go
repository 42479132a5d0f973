package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringArray is a list of free-text tags. It is a native text[] column on
// Postgres and a text column holding the same array literal elsewhere.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src interface{}) error {
	return (*pq.StringArray)(a).Scan(src)
}

func (StringArray) GormDataType() string {
	return "text[]"
}

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// MarshalJSON renders a nil list as [] rather than null.
func (a StringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// Overlaps reports whether a and other share at least one entry.
// Matching is exact, as with the Postgres && operator.
func (a StringArray) Overlaps(other []string) bool {
	if len(a) == 0 || len(other) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range other {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// NormalizeTags trims entries and drops empty and duplicate ones,
// keeping the first occurrence order.
func NormalizeTags(tags []string) StringArray {
	out := make(StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
