package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by a service wraps exactly one of these,
// so callers can branch with errors.Is without knowing the storage engine.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)

// ErrDanglingReference is returned when a write points at a row that was
// removed after validation resolved it.
var ErrDanglingReference = fmt.Errorf("%w: referenced entity no longer exists", ErrConflict)

// Violation is a single failed invariant on one field of a candidate entity.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violation found in one pass.
type ValidationError struct {
	Violations []Violation
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Violations returns nil when v is empty, otherwise a *ValidationError.
func Violations(v []Violation) error {
	if len(v) == 0 {
		return nil
	}
	return NewValidationError(v...)
}
