package models

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound indicates a detail lookup for an identity that does
// not exist. An expected outcome, not a failure.
var ErrRecordNotFound = errors.New("activity log record not found")

// ValidationError reports invalid explicit input, identifying the
// offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalidf builds a ValidationError for the given field.
func Invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
