package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist or is not owned by the caller.
	// The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a request carries no valid session
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError describes missing or invalid input. Its message is shown to the caller as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation creates a ValidationError with a formatted message
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
