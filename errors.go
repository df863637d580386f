package dynarray

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrCapacityOverflow is raised when a requested capacity cannot be
	// represented as a byte size.
	ErrCapacityOverflow = errors.New("dynarray: capacity overflow")

	// ErrDoubleRelease is returned by TrackingAllocator when a block is
	// released twice.
	ErrDoubleRelease = errors.New("dynarray: block released twice")

	// ErrUnknownBlock is returned by TrackingAllocator when a block it never
	// handed out is released.
	ErrUnknownBlock = errors.New("dynarray: release of unknown block")

	// ErrPointerType is raised when an allocator that hands out memory the
	// garbage collector does not scan is used with an element type that
	// contains pointers.
	ErrPointerType = errors.New("dynarray: element type contains pointers")
)

// IndexError is the panic value for an out-of-range element access.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dynarray: index out of range [%d] with length %d", e.Index, e.Len)
}

// AllocError is the panic value for a failed allocate or release.
type AllocError struct {
	Op    string // "allocate" or "release"
	Elems int
	Err   error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("dynarray: %s %d elements: %v", e.Op, e.Elems, e.Err)
}

// Cause returns the underlying allocator error, so errors.Cause can see
// through the panic value.
func (e *AllocError) Cause() error { return e.Err }

// Unwrap supports the standard errors.Is/As chain.
func (e *AllocError) Unwrap() error { return e.Err }
