package classfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for package classfile.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrNotAClassFile is returned when the header does not start with CA FE BA BE.
	ErrNotAClassFile = errors.New("not a java class file")

	// ErrInsufficientBytes matches any *InsufficientBytesError.
	ErrInsufficientBytes = errors.New("insufficient bytes")
)

// InsufficientBytesError reports a source that ended before a magic prefix or
// header could be read in full.
type InsufficientBytesError struct {
	Expected int
	Actual   int
}

func (e *InsufficientBytesError) Error() string {
	return fmt.Sprintf("should have got at least %d bytes, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrInsufficientBytes.
func (e *InsufficientBytesError) Is(target error) bool {
	return target == ErrInsufficientBytes
}

func insufficient(expected, actual int) *InsufficientBytesError {
	return &InsufficientBytesError{Expected: expected, Actual: actual}
}
