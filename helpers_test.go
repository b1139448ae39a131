//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// makeFrame allocates a frame of layout l with padded strides. fill is called
// once per plane.
func makeFrame(l pixfmt.Layout, w, h int, fill func(plane int, b []byte)) Frame {
	f := Frame{Width: w, Height: h}
	for i := 0; i < l.Info().Planes; i++ {
		rowBytes, rows := engine.PlaneExtent(l, i, w, h)
		stride := scratch.Align(rowBytes, 32)
		f.Planes[i] = make([]byte, stride*rows)
		f.Strides[i] = stride
		if fill != nil {
			fill(i, f.Planes[i])
		}
	}
	return f
}

// constFill sets every sample of a plane to vals[plane], honouring the
// layout's sample size and byte order.
func constFill(l pixfmt.Layout, vals ...uint16) func(int, []byte) {
	info := l.Info()
	return func(plane int, b []byte) {
		v := vals[plane%len(vals)]
		if info.Depth <= 8 {
			for i := range b {
				b[i] = byte(v)
			}
			return
		}
		for i := 0; i+1 < len(b); i += 2 {
			if info.BigEndian {
				binary.BigEndian.PutUint16(b[i:], v)
			} else {
				binary.LittleEndian.PutUint16(b[i:], v)
			}
		}
	}
}

func newNativeConverter(t *testing.T, in pixfmt.Layout, out pixfmt.OutputFormat) *Converter {
	t.Helper()
	c, err := NewConverter(in, out, Config{Engine: engine.NewNative()})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

// stubEngine wraps Native, counts context acquisitions and records what the
// converter asks for.
type stubEngine struct {
	native *engine.Native

	mu          sync.Mutex
	acquires    int
	last        engine.Params
	committed   engine.ColorspaceDetails
	closed      int
	failAcquire bool
	failScale   bool
}

func newStubEngine() *stubEngine {
	return &stubEngine{native: engine.NewNative()}
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Coefficients(cs engine.ColorSpace) engine.Matrix {
	return s.native.Coefficients(cs)
}

func (s *stubEngine) GetCachedContext(prev engine.Context, p engine.Params) (engine.Context, error) {
	s.mu.Lock()
	s.acquires++
	s.last = p
	fail := s.failAcquire
	s.mu.Unlock()

	var inner engine.Context
	if sc, ok := prev.(*stubContext); ok {
		inner = sc.Context
	}
	if fail {
		if inner != nil {
			_ = inner.Close()
		}
		return nil, errors.New("stub: acquire failed")
	}
	ctx, err := s.native.GetCachedContext(inner, p)
	if err != nil {
		return nil, err
	}
	return &stubContext{Context: ctx, engine: s}, nil
}

type stubContext struct {
	engine.Context
	engine *stubEngine
}

func (c *stubContext) SetColorspaceDetails(d engine.ColorspaceDetails) error {
	c.engine.mu.Lock()
	c.engine.committed = d
	c.engine.mu.Unlock()
	return c.Context.SetColorspaceDetails(d)
}

func (c *stubContext) Scale(src engine.Planes, height int, dst engine.Planes) error {
	c.engine.mu.Lock()
	fail := c.engine.failScale
	c.engine.mu.Unlock()
	if fail {
		return errors.New("stub: scale failed")
	}
	return c.Context.Scale(src, height, dst)
}

func (c *stubContext) Close() error {
	c.engine.mu.Lock()
	c.engine.closed++
	c.engine.mu.Unlock()
	return c.Context.Close()
}

// trackingAllocator counts allocations that have not been freed.
type trackingAllocator struct {
	heap *scratch.Heap

	mu   sync.Mutex
	live int
}

func (a *trackingAllocator) Alloc(n int) ([]byte, error) {
	b, err := a.heap.Alloc(n)
	if err == nil {
		a.mu.Lock()
		a.live++
		a.mu.Unlock()
	}
	return b, err
}

func (a *trackingAllocator) Free(b []byte) {
	a.mu.Lock()
	a.live--
	a.mu.Unlock()
	a.heap.Free(b)
}
