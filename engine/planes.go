package engine

import (
	"fmt"

	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// PlaneExtent returns the bytes per row and the row count of plane i of a
// width x height frame in layout l. Chroma planes round up.
func PlaneExtent(l pixfmt.Layout, i, width, height int) (rowBytes, rows int) {
	info := l.Info()
	switch {
	case info.RGB:
		if i == 0 {
			return width * info.PixelBytes, height
		}
	case info.SemiPlanar:
		switch i {
		case 0:
			return width, height
		case 1:
			return 2 * l.ChromaWidth(width), l.ChromaHeight(height)
		}
	default:
		sb := l.SampleBytes()
		switch i {
		case 0:
			return width * sb, height
		case 1, 2:
			return l.ChromaWidth(width) * sb, l.ChromaHeight(height)
		}
	}
	return 0, 0
}

// NumPlanes returns how many planes layout l uses.
func NumPlanes(l pixfmt.Layout) int {
	return l.Info().Planes
}

// CheckPlanes verifies that every plane of p can hold rows of layout l.
func CheckPlanes(l pixfmt.Layout, width, height int, p Planes) error {
	for i := 0; i < NumPlanes(l); i++ {
		rowBytes, rows := PlaneExtent(l, i, width, height)
		if p.Stride[i] < rowBytes {
			return fmt.Errorf("%w: %v plane %d stride %d < %d", ErrShortPlane, l, i, p.Stride[i], rowBytes)
		}
		if need := (rows-1)*p.Stride[i] + rowBytes; len(p.Data[i]) < need {
			return fmt.Errorf("%w: %v plane %d has %d bytes, need %d", ErrShortPlane, l, i, len(p.Data[i]), need)
		}
	}
	return nil
}

// fitRows returns how many rows of rowBytes fit in a plane buffer.
func fitRows(buf []byte, stride, rowBytes, rows int) int {
	if rowBytes == 0 {
		return rows
	}
	n := 0
	if len(buf) >= rowBytes {
		n = (len(buf)-rowBytes)/stride + 1
	}
	if n > rows {
		n = rows
	}
	return n
}
