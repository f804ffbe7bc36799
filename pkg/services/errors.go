package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage is returned when the chat message is blank after trimming
	ErrEmptyMessage = errors.New("no message provided")

	// ErrCompletionFailed is returned when the completion provider could not produce a reply
	ErrCompletionFailed = errors.New("completion failed")
)

// ValidationError wraps field-specific validation errors.
// Message is safe to show to the customer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
