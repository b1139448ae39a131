//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"encoding/binary"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// convertTo422Packed produces YUY2 (Y0 U Y1 V) or, with uyvy set, UYVY
// (U Y0 V Y1). Odd trailing columns are not written.
func (c *Converter) convertTo422Packed(src Frame, dst []byte, stride int, uyvy bool) error {
	w, h := src.Width, src.Height

	var y, u, v []byte
	var lumaStride, uStride, vStride int
	if c.input.Is(pixfmt.YUV422P, pixfmt.YUVJ422P) {
		y, u, v = src.Planes[0], src.Planes[1], src.Planes[2]
		lumaStride, uStride, vStride = src.Strides[0], src.Strides[1], src.Strides[2]
		c.stats.direct.Add(1)
	} else {
		scaled := scratch.Align(w, 32)
		buf, planes, err := c.acquireScratch(pixfmt.YUV422P, scaled, h)
		if err != nil {
			return err
		}
		defer buf.Release()
		if err := c.scale(src, pixfmt.YUV422P, engine.FastBilinear, planes); err != nil {
			return err
		}
		y, u, v = planes.Data[0], planes.Data[1], planes.Data[2]
		lumaStride, uStride, vStride = planes.Stride[0], planes.Stride[1], planes.Stride[2]
		c.stats.scratch.Add(1)
	}

	outStride := stride * 2
	halfwidth := w >> 1
	for line := 0; line < h; line++ {
		pack422Row(dst[line*outStride:], y[line*lumaStride:], u[line*uStride:], v[line*vStride:], halfwidth, uyvy)
	}
	return nil
}

func pack422Row(out, y, u, v []byte, halfwidth int, uyvy bool) {
	put := func(o []byte, y0, u0, y1, v0 byte) {
		if uyvy {
			binary.LittleEndian.PutUint32(o, uint32(u0)|uint32(y0)<<8|uint32(v0)<<16|uint32(y1)<<24)
		} else {
			binary.LittleEndian.PutUint32(o, uint32(y0)|uint32(u0)<<8|uint32(y1)<<16|uint32(v0)<<24)
		}
	}

	i := 0
	for ; i+8 <= halfwidth; i += 8 {
		o := out[4*i : 4*i+32]
		yy := y[2*i : 2*i+16]
		uu := u[i : i+8]
		vv := v[i : i+8]
		for j := 0; j < 8; j++ {
			put(o[4*j:], yy[2*j], uu[j], yy[2*j+1], vv[j])
		}
	}
	for ; i < halfwidth; i++ {
		put(out[4*i:], y[2*i], u[i], y[2*i+1], v[i])
	}
}
