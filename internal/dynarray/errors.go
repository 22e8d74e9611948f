package dynarray

import (
	"errors"
	"fmt"
)

// Diagnostic lines written on reported, non-fatal errors.
const (
	MsgOutOfRange = "subscript out of range"
	MsgEmpty      = "Array is empty"
)

var (
	// ErrNegativeIndex is the panic cause for a negative mutable subscript.
	ErrNegativeIndex = errors.New("dynarray: negative subscript")

	// ErrBadCount is the panic cause for a source count that is not positive
	// or exceeds the source length.
	ErrBadCount = errors.New("dynarray: invalid element count")

	// ErrOutOfRange reports a read-only access outside the used prefix.
	ErrOutOfRange = errors.New("dynarray: " + MsgOutOfRange)

	// ErrEmpty reports a front access on an array with no used slots.
	ErrEmpty = errors.New("dynarray: array is empty")
)

// IndexError wraps an error with the subscript that caused it.
type IndexError struct {
	Index   int
	NumUsed int
	Wrapped error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s (index %d, %d in use)", e.Wrapped.Error(), e.Index, e.NumUsed)
}

func (e *IndexError) Unwrap() error {
	return e.Wrapped
}
