package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a lookup by id, slug, or order number that
	// matched no row. Handlers map it to 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a unique-constraint violation outside the order
	// transaction (e.g. duplicate slug during seeding).
	ErrConflict = errors.New("conflict")
)

// ValidationError is a malformed or incomplete request payload. It is raised
// before any store access and maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// OrderCreationError wraps a store failure that aborted the order
// transaction after rollback. It maps to 500 with the underlying message.
type OrderCreationError struct {
	Err error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Err)
}

func (e *OrderCreationError) Unwrap() error { return e.Err }
