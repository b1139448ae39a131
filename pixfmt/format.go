package pixfmt

import (
	"fmt"
	"strings"
)

// OutputFormat is one of the canonical layouts a converter can produce.
type OutputFormat int

const (
	FormatYV12 OutputFormat = iota
	FormatNV12
	FormatYUY2
	FormatUYVY
	FormatAYUV
	FormatP010
	FormatP210
	FormatY410
	FormatP016
	FormatP216
	FormatY416
	FormatRGB32
	FormatRGB24

	numOutputFormats
)

// Descriptor holds the per-output-format plane metadata used to derive plane
// offsets and strides from a single caller stride.
type Descriptor struct {
	Name           string
	BytesPerSample int // bytes per luma-plane pixel
	Planes         int
	PlaneWidthDiv  [4]int
	PlaneHeightDiv [4]int
}

var descriptors = [numOutputFormats]Descriptor{
	FormatYV12:  {"YV12", 1, 3, [4]int{1, 2, 2}, [4]int{1, 2, 2}},
	FormatNV12:  {"NV12", 1, 2, [4]int{1, 1}, [4]int{1, 2}},
	FormatYUY2:  {"YUY2", 2, 1, [4]int{1}, [4]int{1}},
	FormatUYVY:  {"UYVY", 2, 1, [4]int{1}, [4]int{1}},
	FormatAYUV:  {"AYUV", 4, 1, [4]int{1}, [4]int{1}},
	FormatP010:  {"P010", 2, 2, [4]int{1, 1}, [4]int{1, 2}},
	FormatP210:  {"P210", 2, 2, [4]int{1, 1}, [4]int{1, 1}},
	FormatY410:  {"Y410", 4, 1, [4]int{1}, [4]int{1}},
	FormatP016:  {"P016", 2, 2, [4]int{1, 1}, [4]int{1, 2}},
	FormatP216:  {"P216", 2, 2, [4]int{1, 1}, [4]int{1, 1}},
	FormatY416:  {"Y416", 8, 1, [4]int{1}, [4]int{1}},
	FormatRGB32: {"RGB32", 4, 1, [4]int{1}, [4]int{1}},
	FormatRGB24: {"RGB24", 3, 1, [4]int{1}, [4]int{1}},
}

// Valid reports whether f is one of the canonical output formats.
func (f OutputFormat) Valid() bool {
	return f >= 0 && f < numOutputFormats
}

func (f OutputFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
	return descriptors[f].Name
}

// Describe returns the descriptor of f. ok is false for unknown formats.
func Describe(f OutputFormat) (d Descriptor, ok bool) {
	if !f.Valid() {
		return Descriptor{}, false
	}
	return descriptors[f], true
}

// OutputFormats returns all canonical output formats.
func OutputFormats() []OutputFormat {
	out := make([]OutputFormat, 0, numOutputFormats)
	for f := OutputFormat(0); f < numOutputFormats; f++ {
		out = append(out, f)
	}
	return out
}

// ParseOutputFormat parses a format name such as "p010" or "RGB32".
func ParseOutputFormat(name string) (OutputFormat, error) {
	name = strings.TrimSpace(name)
	for f := OutputFormat(0); f < numOutputFormats; f++ {
		if strings.EqualFold(descriptors[f].Name, name) {
			return f, nil
		}
	}
	return -1, fmt.Errorf("pixfmt: unknown output format %q", name)
}

// Plane locates one plane inside a single destination buffer.
type Plane struct {
	Offset   int // bytes from the start of the buffer
	Stride   int // bytes per row
	Rows     int
	ElemSize int // bytes per sample
}

// End returns the offset one past the last byte of the plane.
func (p Plane) End() int {
	return p.Offset + p.Stride*p.Rows
}

// Geometry lays out the planes of f contiguously in one buffer, given the
// caller stride in pixels and the frame height. Plane 0 uses the caller stride
// scaled by the sample size; every later plane follows the previous one.
func Geometry(f OutputFormat, stride, height int) []Plane {
	d, ok := Describe(f)
	if !ok {
		return nil
	}
	base := stride * d.BytesPerSample
	planes := make([]Plane, d.Planes)
	for i := range planes {
		p := Plane{
			Stride:   base / d.PlaneWidthDiv[i],
			Rows:     height / d.PlaneHeightDiv[i],
			ElemSize: d.BytesPerSample,
		}
		if i > 0 {
			prev := planes[i-1]
			p.Offset = prev.Offset + (base/d.PlaneWidthDiv[i-1])*(height/d.PlaneHeightDiv[i-1])
		}
		planes[i] = p
	}
	return planes
}

// FrameSize returns the number of bytes a destination buffer must hold for f at
// the given stride (in pixels) and height. Subsampled planes get height/div
// rows, so an odd height leaves no room for the last chroma row; converters
// reject odd heights for YV12 and NV12.
func FrameSize(f OutputFormat, stride, height int) int {
	planes := Geometry(f, stride, height)
	if len(planes) == 0 {
		return 0
	}
	return planes[len(planes)-1].End()
}
