// Package scratch manages the temporary plane buffers converter routines use
// when the source layout cannot be packed directly.
package scratch

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrAllocation is returned when a scratch buffer cannot be obtained.
var ErrAllocation = errors.New("scratch: allocation failed")

// Align rounds x up to a multiple of a. a must be a power of two.
func Align(x, a int) int {
	return (x + a - 1) &^ (a - 1)
}

// Allocator provides raw scratch memory.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// Heap allocates scratch memory on the Go heap. A Limit > 0 caps the bytes
// held at once.
type Heap struct {
	Limit int64

	used atomic.Int64
}

// NewHeap returns a heap allocator with the given byte limit (<= 0 disables it).
func NewHeap(limit int64) *Heap {
	return &Heap{Limit: limit}
}

func (h *Heap) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrAllocation, n)
	}
	if used := h.used.Add(int64(n)); h.Limit > 0 && used > h.Limit {
		h.used.Add(-int64(n))
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, n, h.Limit)
	}
	return make([]byte, n), nil
}

func (h *Heap) Free(b []byte) {
	if len(b) > 0 {
		h.used.Add(-int64(len(b)))
	}
}

// InUse returns the bytes currently allocated from h.
func (h *Heap) InUse() int64 {
	return h.used.Load()
}
