package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found or is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates bad or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a valid request against an entity in the wrong state.
	ErrConflict = errors.New("conflict")
)

// Error carries a caller-facing message and unwraps to one of the sentinels above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func Conflictf(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// StatusMismatchError is returned by stores when a guarded status transition
// finds the order in a different status.
type StatusMismatchError struct {
	Current OrderStatus
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("order is in status %s", e.Current)
}

func (e *StatusMismatchError) Unwrap() error {
	return ErrConflict
}
