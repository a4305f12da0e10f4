// Package apperr defines the error taxonomy shared by every bounded context.
// Domain packages wrap these kinds in their own sentinels so that
// pkg/errhttp can map any of them with a single errors.Is check.
package apperr

import "errors"

var (
	// ErrValidation marks malformed, missing or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated marks a missing or invalid credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks a verified caller without permission over the target.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a lookup with no matching record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
)

// FieldError carries per-field validation messages keyed by wire field name.
// It matches ErrValidation under errors.Is.
type FieldError struct {
	Fields map[string]string
}

// NewFieldError returns a FieldError for a single field.
func NewFieldError(field, msg string) *FieldError {
	return &FieldError{Fields: map[string]string{field: msg}}
}

func (e *FieldError) Error() string {
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			return "validation failed: " + field + ": " + msg
		}
	}
	return "validation failed"
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// Add records msg for field, keeping the first message per field.
func (e *FieldError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e as an error, or nil when no field was recorded.
func (e *FieldError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
