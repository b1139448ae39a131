//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"encoding/binary"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// convertToY410 packs 10-bit 4:4:4 into one 32-bit word per pixel:
// U in bits 0-9, Y in 10-19, V in 20-29 and a 2-bit opaque alpha.
func (c *Converter) convertToY410(src Frame, dst []byte, stride int) error {
	w, h := src.Width, src.Height

	var in highDepthPlanes
	var shift uint
	switch c.input {
	case pixfmt.YUV444P10LE, pixfmt.YUV444P10BE:
		in, _ = directHighDepth(c.input, 0, 0, src)
		c.stats.direct.Add(1)
	case pixfmt.YUV444P9LE, pixfmt.YUV444P9BE:
		in, _ = directHighDepth(c.input, 0, 0, src)
		shift = 1
		c.stats.direct.Add(1)
	default:
		scaled := scratch.Align(w, 32) * 2
		buf, planes, err := c.acquireScratch(pixfmt.YUV444P10LE, scaled, h)
		if err != nil {
			return err
		}
		defer buf.Release()
		if err := c.scale(src, pixfmt.YUV444P10LE, engine.Point, planes); err != nil {
			return err
		}
		in = scratchHighDepth(planes, pixfmt.YUV444P10LE)
		c.stats.scratch.Add(1)
	}
	// Samples are packed at their stored depth, not MSB-aligned.
	in.read.shift = shift

	outStride := stride * 4
	for line := 0; line < h; line++ {
		out := dst[line*outStride:]
		y := in.y[line*in.yStride:]
		u := in.u[line*in.uStride:]
		v := in.v[line*in.vStride:]
		for x := 0; x < w; x++ {
			word := uint32(in.read.at(u, x))&0x3FF |
				(uint32(in.read.at(y, x))&0x3FF)<<10 |
				(uint32(in.read.at(v, x))&0x3FF)<<20 |
				3<<30
			binary.LittleEndian.PutUint32(out[4*x:], word)
		}
	}
	return nil
}

// convertToY416 packs 16-bit 4:4:4 into two 32-bit words per pixel.
func (c *Converter) convertToY416(src Frame, dst []byte, stride int) error {
	w, h := src.Width, src.Height

	var in highDepthPlanes
	if c.input.Is(pixfmt.YUV444P16LE, pixfmt.YUV444P16BE) {
		in, _ = directHighDepth(c.input, 0, 0, src)
		c.stats.direct.Add(1)
	} else {
		scaled := scratch.Align(w, 32) * 2
		buf, planes, err := c.acquireScratch(pixfmt.YUV444P16LE, scaled, h)
		if err != nil {
			return err
		}
		defer buf.Release()
		if err := c.scale(src, pixfmt.YUV444P16LE, engine.Point, planes); err != nil {
			return err
		}
		in = scratchHighDepth(planes, pixfmt.YUV444P16LE)
		c.stats.scratch.Add(1)
	}

	outStride := stride * 8
	for line := 0; line < h; line++ {
		out := dst[line*outStride:]
		y := in.y[line*in.yStride:]
		u := in.u[line*in.uStride:]
		v := in.v[line*in.vStride:]
		for x := 0; x < w; x++ {
			binary.LittleEndian.PutUint32(out[8*x:], 0xFFFF|uint32(in.read.at(v, x))<<16)
			binary.LittleEndian.PutUint32(out[8*x+4:], uint32(in.read.at(y, x))|uint32(in.read.at(u, x))<<16)
		}
	}
	return nil
}
