package core

import (
	"errors"
	"fmt"
)

// Error kinds shared by every package of the harness.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidK          = errors.New("invalid k")
	ErrInvalidRange      = errors.New("invalid k range")
	ErrEmptyInput        = errors.New("empty input")
	ErrNonFinite         = errors.New("non-finite value")
)

// Error wraps errors with operation context.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with operation context.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
