package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for every authentication failure —
// unknown user, inactive user, or wrong password — so the response
// never reveals which half was wrong. Anything else out of Login is an
// internal error.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// Typed business errors. Handlers map these to HTTP statuses at the
// endpoint boundary; anything else is treated as an internal failure,
// logged server-side, and returned as a generic 500. None of these is
// fatal to the process.

// NotFoundError — a referenced entity is absent (404).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ValidationError — malformed or out-of-range client input (400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError — a delete blocked by referencing rows (400).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// DuplicateError — a uniqueness violation (409).
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// InsufficientStockError — a sale exceeds available stock (400).
// Reports both sides so the client can show what was possible.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", e.Available, e.Requested)
}
