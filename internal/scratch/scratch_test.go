package scratch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

func TestAlign(t *testing.T) {
	testCases := []struct{ x, a, want int }{
		{0, 32, 0},
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{1919, 32, 1920},
		{13, 16, 16},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Align(tc.x, tc.a), "Align(%d, %d)", tc.x, tc.a)
	}
}

func TestHeapLimit(t *testing.T) {
	h := NewHeap(100)

	a, err := h.Alloc(60)
	require.NoError(t, err)
	assert.Len(t, a, 60)

	_, err = h.Alloc(60)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.EqualValues(t, 60, h.InUse())

	h.Free(a)
	assert.Zero(t, h.InUse())

	_, err = h.Alloc(0)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestPoolAccounting(t *testing.T) {
	p := NewPool(nil, 2)
	defer p.Close()

	b1, err := p.Get(100)
	require.NoError(t, err)
	b2, err := p.Get(50)
	require.NoError(t, err)

	_, err = p.Get(10)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, ErrAllocation)

	u := p.Usage()
	assert.Equal(t, 2, u.Outstanding)
	assert.EqualValues(t, 150, u.OutstandingBytes)
	assert.EqualValues(t, 150, u.PeakBytes)

	b1.Release()
	b1.Release()
	assert.Nil(t, b1.Bytes())
	b2.Release()

	u = p.Usage()
	assert.Zero(t, u.Outstanding)
	assert.Zero(t, u.OutstandingBytes)
	assert.EqualValues(t, 2, u.Acquired)
	assert.EqualValues(t, 2, u.Released)
	assert.EqualValues(t, 150, u.PeakBytes)
}

func TestPoolAllocatorFailure(t *testing.T) {
	p := NewPool(NewHeap(64), 0)
	_, err := p.Get(65)
	require.ErrorIs(t, err, ErrAllocation)
	assert.Zero(t, p.Usage().Outstanding)
}

func TestPoolClosed(t *testing.T) {
	p := NewPool(nil, 0)
	b, err := p.Get(8)
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, err = p.Get(8)
	assert.True(t, errors.Is(err, ErrPoolClosed))

	b.Release()
	assert.Zero(t, p.Usage().Outstanding)
}

func TestCarve(t *testing.T) {
	testCases := []struct {
		l       pixfmt.Layout
		stride  int
		height  int
		size    int
		strides [4]int
	}{
		{pixfmt.YUV422P, 32, 7, 32*7 + 2*16*7, [4]int{32, 16, 16}},
		{pixfmt.YUV420P16LE, 64, 7, 64*7 + 2*32*4, [4]int{64, 32, 32}},
		{pixfmt.YUV444P10LE, 64, 4, 3 * 64 * 4, [4]int{64, 64, 64}},
		{pixfmt.NV12, 32, 4, 32*4 + 32*2, [4]int{32, 32}},
	}
	for _, tc := range testCases {
		t.Run(tc.l.String(), func(t *testing.T) {
			require.Equal(t, tc.size, Size(tc.l, tc.stride, tc.height))
			assert.Equal(t, tc.strides, Strides(tc.l, tc.stride))

			buf := make([]byte, tc.size)
			p := Carve(buf, tc.l, tc.stride, tc.height)
			total := 0
			for i := 0; i < tc.l.Info().Planes; i++ {
				total += len(p.Data[i])
			}
			assert.Equal(t, tc.size, total)
			assert.Equal(t, tc.strides, p.Stride)

			// Planes are contiguous and do not overlap.
			p.Data[0][len(p.Data[0])-1] = 1
			assert.Equal(t, byte(0), p.Data[1][0])
		})
	}
}
