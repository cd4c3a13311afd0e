package models

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("not found")

func IsUniqueConstraint(err error) bool {
	// sqlite3 driver error strings are stable enough for this check.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// parseSQLiteBool normalizes the various representations the sqlite3 driver
// may hand back for a boolean column.
func parseSQLiteBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case int:
		return t != 0
	case []byte:
		s := strings.TrimSpace(string(t))
		return s == "1" || strings.EqualFold(s, "true")
	case string:
		s := strings.TrimSpace(t)
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return false
	}
}
