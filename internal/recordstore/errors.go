package recordstore

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned by DeleteAt when the position is outside [0, len).
	ErrInvalidIndex = errors.New("invalid index")
	// ErrCorruptStore is returned when a collection file does not hold a JSON array.
	ErrCorruptStore = errors.New("corrupt store")
)

// InvalidIndexError describes an out of range delete.
type InvalidIndexError struct {
	Index int
	Len   int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index %d for collection of length %d", e.Index, e.Len)
}

func (e *InvalidIndexError) Unwrap() error { return ErrInvalidIndex }

// CorruptStoreError carries the offending file and the decode failure.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Is(target error) bool { return target == ErrCorruptStore }

func (e *CorruptStoreError) Unwrap() error { return e.Err }
