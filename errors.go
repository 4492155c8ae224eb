package finrag

import (
	"errors"
	"fmt"
)

// Sentinel errors for common application error conditions. Use errors.Is()
// to check for them.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrClosed indicates the application has been closed and can no
	// longer serve requests.
	ErrClosed = errors.New("application closed")
)

// Error wraps an underlying error with the operation that failed. It
// supports errors.Is and errors.As through Unwrap.
type Error struct {
	// Op is the operation that failed (e.g., "finrag.New", "App.Import").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func opErr(op string, err error) error {
	return &Error{Op: op, Err: err}
}
