//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"fmt"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// Frame describes a source frame. Planes and Strides follow the converter's
// input layout; unused planes are nil. Strides are in bytes.
type Frame struct {
	Planes  [4][]byte
	Strides [4]int
	Width   int
	Height  int
}

func (f Frame) planes() engine.Planes {
	return engine.Planes{Data: f.Planes, Stride: f.Strides}
}

func (f Frame) validate(l pixfmt.Layout) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidFrame, f.Width, f.Height)
	}
	if err := engine.CheckPlanes(l, f.Width, f.Height, f.planes()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	return nil
}

// destPlanes locates the planes of format f inside dst. Each plane slice runs
// to the end of dst.
func destPlanes(f pixfmt.OutputFormat, dst []byte, stride, height int) engine.Planes {
	var p engine.Planes
	for i, pl := range pixfmt.Geometry(f, stride, height) {
		p.Data[i] = dst[pl.Offset:]
		p.Stride[i] = pl.Stride
	}
	return p
}
