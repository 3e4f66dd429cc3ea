// Package repository implements the data access layer for the application.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether a DB error is a unique constraint
// violation. Connections are opened with TranslateError, so the postgres
// and sqlite drivers both surface these as gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
