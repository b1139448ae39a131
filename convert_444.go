//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"encoding/binary"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// convertToAYUV packs 8-bit 4:4:4 into V U Y A bytes with opaque alpha.
func (c *Converter) convertToAYUV(src Frame, dst []byte, stride int) error {
	w, h := src.Width, src.Height

	var y, u, v []byte
	var lumaStride, uStride, vStride int
	if c.input.Is(pixfmt.YUV444P, pixfmt.YUVJ444P) {
		y, u, v = src.Planes[0], src.Planes[1], src.Planes[2]
		lumaStride, uStride, vStride = src.Strides[0], src.Strides[1], src.Strides[2]
		c.stats.direct.Add(1)
	} else {
		scaled := scratch.Align(stride, 32)
		buf, planes, err := c.acquireScratch(pixfmt.YUV444P, scaled, h)
		if err != nil {
			return err
		}
		defer buf.Release()
		if err := c.scale(src, pixfmt.YUV444P, engine.Point, planes); err != nil {
			return err
		}
		y, u, v = planes.Data[0], planes.Data[1], planes.Data[2]
		lumaStride, uStride, vStride = planes.Stride[0], planes.Stride[1], planes.Stride[2]
		c.stats.scratch.Add(1)
	}

	outStride := stride * 4
	for line := 0; line < h; line++ {
		packAYUVRow(dst[line*outStride:], y[line*lumaStride:], u[line*uStride:], v[line*vStride:], w)
	}
	return nil
}

func packAYUVRow(out, y, u, v []byte, width int) {
	i := 0
	for ; i+8 <= width; i += 8 {
		o := out[4*i : 4*i+32]
		yy, uu, vv := y[i:i+8], u[i:i+8], v[i:i+8]
		for j := 0; j < 8; j++ {
			binary.LittleEndian.PutUint32(o[4*j:], uint32(vv[j])|uint32(uu[j])<<8|uint32(yy[j])<<16|0xFF<<24)
		}
	}
	for ; i < width; i++ {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v[i])|uint32(u[i])<<8|uint32(y[i])<<16|0xFF<<24)
	}
}
