package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// IsUniqueViolation reports whether err is a unique constraint failure from
// either supported driver. gorm translates both when TranslateError is set;
// the message checks cover connections opened without it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
