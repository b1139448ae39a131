// Package engine defines the boundary to the colorspace-aware rescaling engine
// pixconv delegates resampling and layout changes to, and ships two
// implementations: SWScale (FFmpeg libswscale) and Native (pure Go).
package engine

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

var (
	// ErrUnavailable is returned when an engine cannot be used on this system.
	ErrUnavailable = errors.New("engine: rescaling engine not available")

	// ErrUnsupported is returned for layout pairs an engine cannot convert.
	ErrUnsupported = errors.New("engine: unsupported conversion")

	// ErrShortPlane is returned when a plane slice is too small for the geometry.
	ErrShortPlane = errors.New("engine: plane buffer too small")

	// ErrClosed is returned when a closed context is used.
	ErrClosed = errors.New("engine: context is closed")
)

// Flags selects the resampling algorithm and quality knobs. Values match
// libswscale's SWS_* flags.
type Flags int32

const (
	FastBilinear     Flags = 0x1
	Bilinear         Flags = 0x2
	Point            Flags = 0x10
	PrintInfo        Flags = 0x1000
	FullChromaHInt   Flags = 0x2000
	AccurateRounding Flags = 0x40000
)

// Has reports whether all bits of o are set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// Params describes one acquire-or-reuse request. Source and destination share
// the same dimensions; pixconv never changes frame geometry.
type Params struct {
	Width  int
	Height int
	Src    pixfmt.Layout
	Dst    pixfmt.Layout
	Flags  Flags
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d %v->%v flags=%#x", p.Width, p.Height, p.Src, p.Dst, int32(p.Flags))
}

// Validate checks the request against what any engine can serve.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupported, p.Width, p.Height)
	}
	if !p.Src.Valid() || p.Src.Info().RGB {
		return fmt.Errorf("%w: source layout %v", ErrUnsupported, p.Src)
	}
	if !p.Dst.Valid() {
		return fmt.Errorf("%w: destination layout %v", ErrUnsupported, p.Dst)
	}
	return nil
}

// Planes carries up to four plane buffers with their byte strides.
// Unused planes are nil.
type Planes struct {
	Data   [4][]byte
	Stride [4]int
}

// Matrix is a YUV<->RGB coefficient table in libswscale's layout:
// {crv, cbu, cgu, cgv}, 16.16 fixed point, limited-range chroma.
type Matrix [4]int32

// ColorspaceDetails is the colorspace state of a context.
type ColorspaceDetails struct {
	InvTable     Matrix // coefficients used to interpret the source
	Table        Matrix // coefficients used to produce the destination
	SrcFullRange bool
	DstFullRange bool
	Brightness   int
	Contrast     int
	Saturation   int
}

// Engine acquires conversion contexts.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string

	// GetCachedContext returns a context for p. When prev already matches p it
	// may be returned as is; otherwise prev is released and a new context is
	// built. prev may be nil. On error prev has been released.
	GetCachedContext(prev Context, p Params) (Context, error)

	// Coefficients returns the coefficient table for a colorspace.
	Coefficients(cs ColorSpace) Matrix
}

// Context is one built conversion state.
type Context interface {
	Params() Params
	ColorspaceDetails() (ColorspaceDetails, error)
	SetColorspaceDetails(d ColorspaceDetails) error

	// Scale converts height rows from src into dst.
	Scale(src Planes, height int, dst Planes) error

	Close() error
}
