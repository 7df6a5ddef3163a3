// Package validation holds the shared struct validator and the classification
// of errors that make a push entry INVALID_DATA.
package validation

import (
	"errors"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	sqlite3 "modernc.org/sqlite/lib"

	"soilsync/pkg/depth"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func Struct(v any) error { return validate.Struct(v) }

// IsInvalid reports whether err describes bad input rather than a fault of the
// store or the process.
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}
	var rerr *RuleError
	if errors.As(err, &rerr) {
		return true
	}
	if errors.Is(err, depth.ErrBounds) || errors.Is(err, depth.ErrOverlap) || errors.Is(err, depth.ErrPresetLocked) {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	// the sqlite dialector leaves CHECK violations untranslated
	var serr *gosqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK
}

// RuleError is a domain rule violation not expressible as a struct tag.
type RuleError struct{ Msg string }

func (e *RuleError) Error() string { return e.Msg }

func Rule(msg string) error { return &RuleError{Msg: msg} }
