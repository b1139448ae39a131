package scratch

import (
	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// Strides returns the per-plane strides of a scratch frame in layout l whose
// luma rows are lumaStride bytes apart. Chroma strides follow the horizontal
// subsampling.
func Strides(l pixfmt.Layout, lumaStride int) [4]int {
	var s [4]int
	info := l.Info()
	s[0] = lumaStride
	switch {
	case info.RGB:
	case info.SemiPlanar:
		s[1] = lumaStride
	default:
		s[1] = lumaStride >> info.Log2ChromaW
		s[2] = s[1]
	}
	return s
}

// Size returns the bytes needed for a height-row scratch frame.
func Size(l pixfmt.Layout, lumaStride, height int) int {
	s := Strides(l, lumaStride)
	n := s[0] * height
	ch := l.ChromaHeight(height)
	for i := 1; i < l.Info().Planes; i++ {
		n += s[i] * ch
	}
	return n
}

// Carve splits buf into the planes of a scratch frame. buf must hold at least
// Size(l, lumaStride, height) bytes.
func Carve(buf []byte, l pixfmt.Layout, lumaStride, height int) engine.Planes {
	var p engine.Planes
	p.Stride = Strides(l, lumaStride)
	off := 0
	for i := 0; i < l.Info().Planes; i++ {
		rows := height
		if i > 0 {
			rows = l.ChromaHeight(height)
		}
		n := p.Stride[i] * rows
		p.Data[i] = buf[off : off+n : off+n]
		off += n
	}
	return p
}
