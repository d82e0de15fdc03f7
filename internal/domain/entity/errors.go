package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the pipeline and the read API. Callers match
// them with errors.Is after wrapping.
var (
	// ErrNotFound marks a lookup for an entity that is not stored.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput marks input that fails domain validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateURL indicates that an article with the same URL already exists.
	// Persisted articles are immutable, so a duplicate insert is rejected rather
	// than overwritten; callers treat this as an expected outcome, not a failure.
	ErrDuplicateURL = errors.New("article URL already exists")
)

// ValidationError carries the field that failed validation so API responses
// can name it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
