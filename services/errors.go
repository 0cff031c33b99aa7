package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the domain services. Controllers translate these to
// HTTP statuses; nothing below this layer knows about HTTP.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrTemplateInactive  = errors.New("template is not active")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrDuplicateKey      = errors.New("duplicate key")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IncompleteSubmissionError is returned when a record is moved to completed
// while snapshot fields are still unanswered. MissingFields keeps the
// snapshot's field order.
type IncompleteSubmissionError struct {
	MissingFields []string
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("cannot complete record with missing fields: %s", strings.Join(e.MissingFields, ", "))
}

// UnknownFieldError is returned when an answer names a label absent from the
// record's template snapshot.
type UnknownFieldError struct {
	Label string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q does not exist in the template", e.Label)
}
