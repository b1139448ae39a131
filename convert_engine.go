//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"fmt"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// convertEngine lets the engine write the output directly. YV12 is YUV420P
// with the chroma planes stored V first.
func (c *Converter) convertEngine(src Frame, dst []byte, stride int, target pixfmt.Layout, swapUV bool) error {
	// The engine writes ceil(height/div) rows into planes sized for floor rows.
	d, _ := pixfmt.Describe(c.output)
	for i := 0; i < d.Planes; i++ {
		if div := d.PlaneHeightDiv[i]; src.Height%div != 0 {
			return fmt.Errorf("%w: %v needs a height divisible by %d, got %d", ErrInvalidFrame, c.output, div, src.Height)
		}
	}
	planes := destPlanes(c.output, dst, stride, src.Height)
	if swapUV {
		planes.Data[1], planes.Data[2] = planes.Data[2], planes.Data[1]
		planes.Stride[1], planes.Stride[2] = planes.Stride[2], planes.Stride[1]
	}
	return c.scale(src, target, engine.Bilinear, planes)
}
