package scratch

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrPoolClosed is returned by Get after Close.
	ErrPoolClosed = errors.New("scratch: pool is closed")

	// ErrExhausted is returned when the outstanding-buffer cap is reached.
	ErrExhausted = errors.New("scratch: pool exhausted")
)

// Usage reports pool accounting.
type Usage struct {
	Outstanding      int   // buffers acquired and not yet released
	OutstandingBytes int64 // bytes held by outstanding buffers
	PeakBytes        int64
	Acquired         uint64 // lifetime totals
	Released         uint64
}

// Pool hands out scratch buffers from an Allocator and tracks them until they
// are released.
//
// Buffers returned from Get are OWNED by the caller and must be returned via
// Buffer.Release.
type Pool struct {
	mu             sync.Mutex
	alloc          Allocator
	maxOutstanding int
	usage          Usage
	closed         bool
}

// NewPool creates a pool over a. A nil allocator uses an unbounded Heap.
// If maxOutstanding <= 0, the number of outstanding buffers is unbounded.
func NewPool(a Allocator, maxOutstanding int) *Pool {
	if a == nil {
		a = NewHeap(0)
	}
	return &Pool{alloc: a, maxOutstanding: maxOutstanding}
}

// Get returns an owned buffer of n bytes.
func (p *Pool) Get(n int) (*Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if p.maxOutstanding > 0 && p.usage.Outstanding >= p.maxOutstanding {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, ErrExhausted)
	}

	data, err := p.alloc.Alloc(n)
	if err != nil {
		return nil, err
	}

	p.usage.Outstanding++
	p.usage.OutstandingBytes += int64(n)
	p.usage.Acquired++
	if p.usage.OutstandingBytes > p.usage.PeakBytes {
		p.usage.PeakBytes = p.usage.OutstandingBytes
	}
	return &Buffer{pool: p, data: data}, nil
}

func (p *Pool) put(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.alloc.Free(b)
	p.usage.Outstanding--
	p.usage.OutstandingBytes -= int64(len(b))
	p.usage.Released++
}

// Usage returns a snapshot of the pool accounting.
func (p *Pool) Usage() Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usage
}

// Close stops the pool from handing out buffers. Outstanding buffers can
// still be released.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Buffer is one scratch allocation.
type Buffer struct {
	pool *Pool
	data []byte
}

// Bytes returns the buffer memory. It is nil after Release.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Release hands the memory back to the pool. Safe to call more than once.
func (b *Buffer) Release() {
	if b == nil || b.data == nil {
		return
	}
	data := b.data
	b.data = nil
	b.pool.put(data)
}
