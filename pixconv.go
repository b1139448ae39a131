//go:build !ios && !android && (amd64 || arm64)

// Package pixconv converts decoded video frames from planar and semi-planar
// YUV layouts into a fixed set of canonical output formats (YV12, NV12, YUY2,
// UYVY, AYUV, P010, P016, P210, P216, Y410, Y416, RGB32, RGB24), writing into
// a caller-supplied buffer.
//
// Resampling and layout changes are delegated to a rescaling engine: FFmpeg's
// libswscale loaded through purego when available, otherwise a pure Go
// fallback. The packed outputs are produced by hand-written packing loops,
// reading the source planes directly when their layout allows it.
//
// For most use cases, create a Converter with NewConverter and call Convert
// once per frame. The low-level packages (avutil, swscale, engine, pixfmt)
// are available for advanced use.
package pixconv

import (
	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/bindings"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// Init loads the FFmpeg libraries. Converters fall back to the pure Go engine
// when this fails, so calling it is only needed to surface the load error.
// It is safe to call multiple times.
func Init() error {
	return bindings.Load()
}

// IsLoaded returns true if FFmpeg libraries have been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Version returns the libavutil and libswscale versions, or zeros when not loaded.
func Version() (avutil, swscale uint32) {
	return bindings.AVUtilVersion(), bindings.SWScaleVersion()
}

// Re-export common types for convenience
type (
	// Layout is an input pixel layout.
	Layout = pixfmt.Layout

	// OutputFormat is one of the canonical output formats.
	OutputFormat = pixfmt.OutputFormat

	// ColorSpace selects the YUV matrix.
	ColorSpace = engine.ColorSpace

	// ColorRange selects limited or full range.
	ColorRange = engine.ColorRange
)

// Re-export common constants
const (
	FormatYV12  = pixfmt.FormatYV12
	FormatNV12  = pixfmt.FormatNV12
	FormatYUY2  = pixfmt.FormatYUY2
	FormatUYVY  = pixfmt.FormatUYVY
	FormatAYUV  = pixfmt.FormatAYUV
	FormatP010  = pixfmt.FormatP010
	FormatP210  = pixfmt.FormatP210
	FormatY410  = pixfmt.FormatY410
	FormatP016  = pixfmt.FormatP016
	FormatP216  = pixfmt.FormatP216
	FormatY416  = pixfmt.FormatY416
	FormatRGB32 = pixfmt.FormatRGB32
	FormatRGB24 = pixfmt.FormatRGB24

	ColorSpaceUnspecified = engine.ColorSpaceUnspecified
	ColorSpaceBT601       = engine.ColorSpaceBT601
	ColorSpaceBT709       = engine.ColorSpaceBT709

	ColorRangeUnspecified = engine.ColorRangeUnspecified
	ColorRangeMPEG        = engine.ColorRangeMPEG // limited
	ColorRangeJPEG        = engine.ColorRangeJPEG // full
)

// FrameSize returns the bytes a destination buffer needs for format f at the
// given stride (in pixels) and height.
func FrameSize(f OutputFormat, stride, height int) int {
	return pixfmt.FrameSize(f, stride, height)
}
