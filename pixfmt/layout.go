// Package pixfmt describes the pixel layouts pixconv reads and the canonical
// output formats it writes.
package pixfmt

import (
	"fmt"
	"strings"
)

// Layout identifies the in-memory representation of a frame: bit depth,
// chroma subsampling, plane arrangement, byte order and range.
type Layout int

const (
	LayoutNone Layout = iota

	// 8-bit planar
	YUV420P
	YUVJ420P
	YUV422P
	YUVJ422P
	YUV444P
	YUVJ444P
	YUV440P
	YUVJ440P
	YUV411P
	YUV410P

	// 8-bit semi-planar
	NV12
	NV21

	// High bit depth planar
	YUV420P9LE
	YUV420P9BE
	YUV420P10LE
	YUV420P10BE
	YUV420P16LE
	YUV420P16BE
	YUV422P9LE
	YUV422P9BE
	YUV422P10LE
	YUV422P10BE
	YUV422P16LE
	YUV422P16BE
	YUV444P9LE
	YUV444P9BE
	YUV444P10LE
	YUV444P10BE
	YUV444P16LE
	YUV444P16BE

	// Packed RGB, destination only
	BGRA
	BGR24

	numLayouts
)

// Info is the static description of a Layout.
type Info struct {
	Name        string
	Depth       int // bits per component
	Log2ChromaW int
	Log2ChromaH int
	Planes      int
	SemiPlanar  bool // chroma interleaved in plane 1
	SwapUV      bool // semi-planar chroma stored V first
	BigEndian   bool
	FullRange   bool
	RGB         bool
	PixelBytes  int // bytes per pixel for packed RGB
}

var layouts = [numLayouts]Info{
	LayoutNone: {Name: "none"},

	YUV420P:  {Name: "yuv420p", Depth: 8, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3},
	YUVJ420P: {Name: "yuvj420p", Depth: 8, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3, FullRange: true},
	YUV422P:  {Name: "yuv422p", Depth: 8, Log2ChromaW: 1, Planes: 3},
	YUVJ422P: {Name: "yuvj422p", Depth: 8, Log2ChromaW: 1, Planes: 3, FullRange: true},
	YUV444P:  {Name: "yuv444p", Depth: 8, Planes: 3},
	YUVJ444P: {Name: "yuvj444p", Depth: 8, Planes: 3, FullRange: true},
	YUV440P:  {Name: "yuv440p", Depth: 8, Log2ChromaH: 1, Planes: 3},
	YUVJ440P: {Name: "yuvj440p", Depth: 8, Log2ChromaH: 1, Planes: 3, FullRange: true},
	YUV411P:  {Name: "yuv411p", Depth: 8, Log2ChromaW: 2, Planes: 3},
	YUV410P:  {Name: "yuv410p", Depth: 8, Log2ChromaW: 2, Log2ChromaH: 2, Planes: 3},

	NV12: {Name: "nv12", Depth: 8, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 2, SemiPlanar: true},
	NV21: {Name: "nv21", Depth: 8, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 2, SemiPlanar: true, SwapUV: true},

	YUV420P9LE:  {Name: "yuv420p9le", Depth: 9, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3},
	YUV420P9BE:  {Name: "yuv420p9be", Depth: 9, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3, BigEndian: true},
	YUV420P10LE: {Name: "yuv420p10le", Depth: 10, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3},
	YUV420P10BE: {Name: "yuv420p10be", Depth: 10, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3, BigEndian: true},
	YUV420P16LE: {Name: "yuv420p16le", Depth: 16, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3},
	YUV420P16BE: {Name: "yuv420p16be", Depth: 16, Log2ChromaW: 1, Log2ChromaH: 1, Planes: 3, BigEndian: true},
	YUV422P9LE:  {Name: "yuv422p9le", Depth: 9, Log2ChromaW: 1, Planes: 3},
	YUV422P9BE:  {Name: "yuv422p9be", Depth: 9, Log2ChromaW: 1, Planes: 3, BigEndian: true},
	YUV422P10LE: {Name: "yuv422p10le", Depth: 10, Log2ChromaW: 1, Planes: 3},
	YUV422P10BE: {Name: "yuv422p10be", Depth: 10, Log2ChromaW: 1, Planes: 3, BigEndian: true},
	YUV422P16LE: {Name: "yuv422p16le", Depth: 16, Log2ChromaW: 1, Planes: 3},
	YUV422P16BE: {Name: "yuv422p16be", Depth: 16, Log2ChromaW: 1, Planes: 3, BigEndian: true},
	YUV444P9LE:  {Name: "yuv444p9le", Depth: 9, Planes: 3},
	YUV444P9BE:  {Name: "yuv444p9be", Depth: 9, Planes: 3, BigEndian: true},
	YUV444P10LE: {Name: "yuv444p10le", Depth: 10, Planes: 3},
	YUV444P10BE: {Name: "yuv444p10be", Depth: 10, Planes: 3, BigEndian: true},
	YUV444P16LE: {Name: "yuv444p16le", Depth: 16, Planes: 3},
	YUV444P16BE: {Name: "yuv444p16be", Depth: 16, Planes: 3, BigEndian: true},

	BGRA:  {Name: "bgra", Depth: 8, Planes: 1, RGB: true, PixelBytes: 4},
	BGR24: {Name: "bgr24", Depth: 8, Planes: 1, RGB: true, PixelBytes: 3},
}

// Info returns the static description of l. Unknown layouts describe as "none".
func (l Layout) Info() Info {
	if !l.Valid() {
		return layouts[LayoutNone]
	}
	return layouts[l]
}

// Valid reports whether l is one of the enumerated layouts.
func (l Layout) Valid() bool {
	return l > LayoutNone && l < numLayouts
}

func (l Layout) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layouts[l].Name
}

// SampleBytes returns the storage size of one component sample.
func (l Layout) SampleBytes() int {
	if l.Info().Depth > 8 {
		return 2
	}
	return 1
}

// ChromaWidth returns the width of a chroma plane for a frame of width w,
// rounding up like libswscale does.
func (l Layout) ChromaWidth(w int) int {
	s := l.Info().Log2ChromaW
	return (w + (1 << s) - 1) >> s
}

// ChromaHeight returns the height of a chroma plane for a frame of height h.
func (l Layout) ChromaHeight(h int) int {
	s := l.Info().Log2ChromaH
	return (h + (1 << s) - 1) >> s
}

// LimitedRange maps the full-range (JPEG) planar layouts to their
// limited-range counterparts. Other layouts are returned unchanged.
func (l Layout) LimitedRange() Layout {
	switch l {
	case YUVJ420P:
		return YUV420P
	case YUVJ422P:
		return YUV422P
	case YUVJ440P:
		return YUV440P
	case YUVJ444P:
		return YUV444P
	}
	return l
}

// Is reports whether l is any of the given layouts.
func (l Layout) Is(set ...Layout) bool {
	for _, s := range set {
		if l == s {
			return true
		}
	}
	return false
}

// ParseLayout parses an FFmpeg-style pixel format name such as "yuv420p10le".
func ParseLayout(name string) (Layout, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l := LayoutNone + 1; l < numLayouts; l++ {
		if layouts[l].Name == name {
			return l, nil
		}
	}
	return LayoutNone, fmt.Errorf("pixfmt: unknown layout %q", name)
}

// Layouts returns every enumerated layout, including destination-only ones.
func Layouts() []Layout {
	out := make([]Layout, 0, numLayouts-1)
	for l := LayoutNone + 1; l < numLayouts; l++ {
		out = append(out, l)
	}
	return out
}

// InputLayouts returns the layouts accepted as converter input.
func InputLayouts() []Layout {
	var out []Layout
	for _, l := range Layouts() {
		if !layouts[l].RGB {
			out = append(out, l)
		}
	}
	return out
}
