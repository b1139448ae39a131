//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"encoding/binary"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// sampleReader reads 16-bit samples in the source byte order and aligns them
// to the most significant bit.
type sampleReader struct {
	bigEndian bool
	shift     uint
}

func newSampleReader(l pixfmt.Layout) sampleReader {
	info := l.Info()
	return sampleReader{bigEndian: info.BigEndian, shift: uint(16 - info.Depth)}
}

func (r sampleReader) at(row []byte, x int) uint16 {
	if r.bigEndian {
		return binary.BigEndian.Uint16(row[2*x:]) << r.shift
	}
	return binary.LittleEndian.Uint16(row[2*x:]) << r.shift
}

// highDepthPlanes is a source view of three 16-bit planes.
type highDepthPlanes struct {
	y, u, v                   []byte
	yStride, uStride, vStride int
	read                      sampleReader
}

// directHighDepth returns the source planes when they can be packed without
// the engine: planar, 9/10/16-bit, with the requested subsampling.
func directHighDepth(l pixfmt.Layout, log2W, log2H int, src Frame) (highDepthPlanes, bool) {
	info := l.Info()
	if info.SemiPlanar || info.RGB || info.Depth <= 8 || info.Log2ChromaW != log2W || info.Log2ChromaH != log2H {
		return highDepthPlanes{}, false
	}
	return highDepthPlanes{
		y: src.Planes[0], u: src.Planes[1], v: src.Planes[2],
		yStride: src.Strides[0], uStride: src.Strides[1], vStride: src.Strides[2],
		read: newSampleReader(l),
	}, true
}

func scratchHighDepth(p engine.Planes, l pixfmt.Layout) highDepthPlanes {
	return highDepthPlanes{
		y: p.Data[0], u: p.Data[1], v: p.Data[2],
		yStride: p.Stride[0], uStride: p.Stride[1], vStride: p.Stride[2],
		read: newSampleReader(l),
	}
}

// convertToPX1X produces P010/P016 (chromaVertical 2) and P210/P216
// (chromaVertical 1): a 16-bit luma plane followed by interleaved U V words.
func (c *Converter) convertToPX1X(src Frame, dst []byte, stride int, chromaVertical int) error {
	w, h := src.Width, src.Height
	log2H := chromaVertical - 1

	in, direct := directHighDepth(c.input, 1, log2H, src)
	if direct {
		c.stats.direct.Add(1)
	} else {
		target := pixfmt.YUV422P16LE
		if chromaVertical == 2 {
			target = pixfmt.YUV420P16LE
		}
		scaled := scratch.Align(w, 32) * 2
		buf, planes, err := c.acquireScratch(target, scaled, h)
		if err != nil {
			return err
		}
		defer buf.Release()
		if err := c.scale(src, target, engine.Point, planes); err != nil {
			return err
		}
		in = scratchHighDepth(planes, target)
		c.stats.scratch.Add(1)
	}

	outStride := stride * 2

	// Luma
	bulk := in.read.shift == 0 && !in.read.bigEndian
	for line := 0; line < h; line++ {
		out := dst[line*outStride:]
		row := in.y[line*in.yStride:]
		if bulk {
			copy(out[:2*w], row[:2*w])
			continue
		}
		for x := 0; x < w; x++ {
			binary.LittleEndian.PutUint16(out[2*x:], in.read.at(row, x))
		}
	}

	// Chroma, interleaved U V after the luma rows.
	base := dst[h*outStride:]
	chromaRows := h / chromaVertical
	chromaWidth := w >> 1
	for line := 0; line < chromaRows; line++ {
		out := base[line*outStride:]
		u := in.u[line*in.uStride:]
		v := in.v[line*in.vStride:]
		for x := 0; x < chromaWidth; x++ {
			binary.LittleEndian.PutUint32(out[4*x:], uint32(in.read.at(u, x))|uint32(in.read.at(v, x))<<16)
		}
	}
	return nil
}
