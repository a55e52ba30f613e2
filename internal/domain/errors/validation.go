package errors

import (
	"net/http"
	"strings"
)

// FieldError describes a single invalid field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level validation failures. It implements
// AppError so the HTTP delivery can render it without type switching on
// every handler.
type ValidationError struct {
	fields []FieldError
}

// NewValidationError creates a ValidationError from field-level failures.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{fields: fields}
}

// Fields returns the individual field failures.
func (e *ValidationError) Fields() []FieldError {
	return e.fields
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message() + ": " + e.Details()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return "order payload validation failed"
}

// Details returns one line per offending field.
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return strings.Join(parts, "; ")
}
