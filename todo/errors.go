package todo

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrNotFound is returned when an operation targets an id that has no row.
var ErrNotFound = errors.New("todo not found")

// IsNotFound reports whether err means the targeted record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}
