package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrNotFound is returned when a learning sample value cannot be located
	// in any line of the supplied text.
	ErrNotFound = errors.New("value not found")
	// ErrInvalidInput covers empty field names, empty sample sets and empty values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedTemplate marks structurally invalid template definitions.
	ErrMalformedTemplate = errors.New("malformed template")
	// ErrMalformedPattern marks a field rule whose capture group does not exist
	// on its pattern. This is an authoring error, not a matching failure.
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrRequiredFieldMissing is returned when a required field's pattern found
	// no match during extraction.
	ErrRequiredFieldMissing = errors.New("required field missing")
	ErrInternal             = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
