//go:build !ios && !android && (amd64 || arm64)

// Package swscale provides bindings to FFmpeg's libswscale library:
// context management, raw-plane scaling and colorspace details.
package swscale

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pixconv/avutil"
	"github.com/obinnaokechukwu/pixconv/internal/bindings"
)

// Context is an opaque SwsContext pointer.
type Context = unsafe.Pointer

// Scaling algorithm flags
const (
	FlagFastBilinear = 1    // Fast bilinear scaling
	FlagBilinear     = 2    // Bilinear scaling
	FlagPoint        = 0x10 // Nearest neighbor (point sampling)

	FlagPrintInfo   = 0x1000  // Log context parameters at verbose level
	FlagFullChrHInt = 0x2000  // Full chroma horizontal interpolation
	FlagAccurateRnd = 0x40000 // Accurate rounding
)

// CSITU709 is SWS_CS_ITU709, the GetCoefficients id for BT.709.
const CSITU709 = 1

// Function bindings
var (
	swsGetCachedContext func(ctx unsafe.Pointer, srcW, srcH int32, srcFormat int32, dstW, dstH int32, dstFormat int32, flags int32, srcFilter, dstFilter, param unsafe.Pointer) uintptr
	swsScale            func(ctx unsafe.Pointer, srcSlice, srcStride unsafe.Pointer, srcSliceY, srcSliceH int32, dst, dstStride unsafe.Pointer) int32
	swsFreeContext      func(ctx unsafe.Pointer)
	swsIsSupportedIn    func(format int32) int32
	swsIsSupportedOut   func(format int32) int32

	swsGetColorspaceDetails func(ctx unsafe.Pointer, invTable *unsafe.Pointer, srcRange *int32, table *unsafe.Pointer, dstRange *int32, brightness, contrast, saturation *int32) int32
	swsSetColorspaceDetails func(ctx unsafe.Pointer, invTable unsafe.Pointer, srcRange int32, table unsafe.Pointer, dstRange int32, brightness, contrast, saturation int32) int32
	swsGetCoefficients      func(colorspace int32) uintptr

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	if err := bindings.Load(); err != nil {
		return
	}

	lib := bindings.LibSWScale()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&swsGetCachedContext, lib, "sws_getCachedContext")
	purego.RegisterLibFunc(&swsScale, lib, "sws_scale")
	purego.RegisterLibFunc(&swsFreeContext, lib, "sws_freeContext")
	purego.RegisterLibFunc(&swsIsSupportedIn, lib, "sws_isSupportedInput")
	purego.RegisterLibFunc(&swsIsSupportedOut, lib, "sws_isSupportedOutput")

	// Optional in some FFmpeg builds / versions
	registerOptionalLibFunc(&swsGetColorspaceDetails, lib, "sws_getColorspaceDetails")
	registerOptionalLibFunc(&swsSetColorspaceDetails, lib, "sws_setColorspaceDetails")
	registerOptionalLibFunc(&swsGetCoefficients, lib, "sws_getCoefficients")

	bindingsRegistered = true
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() { _ = recover() }()
	purego.RegisterLibFunc(fptr, handle, name)
}

// Available reports whether the swscale functions were registered.
func Available() bool {
	return bindingsRegistered
}

// GetCachedContext returns a context for the given parameters, reusing ctx when
// its parameters already match and freeing it otherwise.
// ctx may be nil. Returns nil if the context cannot be created; ctx has been
// freed in that case.
func GetCachedContext(ctx Context, srcW, srcH int, srcFormat avutil.PixelFormat, dstW, dstH int, dstFormat avutil.PixelFormat, flags int32) Context {
	if swsGetCachedContext == nil {
		return nil
	}
	return unsafe.Pointer(swsGetCachedContext(ctx,
		int32(srcW), int32(srcH), int32(srcFormat),
		int32(dstW), int32(dstH), int32(dstFormat),
		flags, nil, nil, nil,
	))
}

// FreeContext frees a scaling context.
// Safe to call with nil.
func FreeContext(ctx Context) {
	if ctx == nil || swsFreeContext == nil {
		return
	}
	swsFreeContext(ctx)
}

// Scale performs the scaling operation on raw plane pointers.
// srcSlice/srcStride describe the source planes, srcSliceY/srcSliceH the
// rows to convert, dst/dstStride the destination planes.
// Returns the height of the output slice, or a negative error code.
func Scale(ctx Context, srcSlice *[4]unsafe.Pointer, srcStride *[4]int32, srcSliceY, srcSliceH int32, dst *[4]unsafe.Pointer, dstStride *[4]int32) int32 {
	if ctx == nil || swsScale == nil {
		return -1
	}
	return swsScale(ctx,
		unsafe.Pointer(srcSlice), unsafe.Pointer(srcStride),
		srcSliceY, srcSliceH,
		unsafe.Pointer(dst), unsafe.Pointer(dstStride),
	)
}

// IsSupportedInput returns true if the pixel format is supported as input.
func IsSupportedInput(format avutil.PixelFormat) bool {
	if swsIsSupportedIn == nil {
		return false
	}
	return swsIsSupportedIn(int32(format)) > 0
}

// IsSupportedOutput returns true if the pixel format is supported as output.
func IsSupportedOutput(format avutil.PixelFormat) bool {
	if swsIsSupportedOut == nil {
		return false
	}
	return swsIsSupportedOut(int32(format)) > 0
}

// HasColorspaceDetails reports whether sws_getColorspaceDetails/sws_setColorspaceDetails are available.
func HasColorspaceDetails() bool {
	return swsGetColorspaceDetails != nil && swsSetColorspaceDetails != nil
}

// GetColorspaceDetails wraps sws_getColorspaceDetails.
func GetColorspaceDetails(ctx Context, invTable *unsafe.Pointer, srcRange *int32, table *unsafe.Pointer, dstRange *int32, brightness, contrast, saturation *int32) int32 {
	if ctx == nil || swsGetColorspaceDetails == nil {
		return -1
	}
	return swsGetColorspaceDetails(ctx, invTable, srcRange, table, dstRange, brightness, contrast, saturation)
}

// SetColorspaceDetails wraps sws_setColorspaceDetails. The tables are copied
// into the context.
func SetColorspaceDetails(ctx Context, invTable unsafe.Pointer, srcRange int32, table unsafe.Pointer, dstRange int32, brightness, contrast, saturation int32) int32 {
	if ctx == nil || swsSetColorspaceDetails == nil {
		return -1
	}
	return swsSetColorspaceDetails(ctx, invTable, srcRange, table, dstRange, brightness, contrast, saturation)
}

// GetCoefficients wraps sws_getCoefficients and returns the coefficient table pointer.
func GetCoefficients(colorspace int32) unsafe.Pointer {
	if swsGetCoefficients == nil {
		return nil
	}
	return unsafe.Pointer(swsGetCoefficients(colorspace))
}

// ReadTable copies a four-entry coefficient table out of swscale memory.
func ReadTable(ptr unsafe.Pointer) [4]int32 {
	if ptr == nil {
		return [4]int32{}
	}
	s := unsafe.Slice((*int32)(ptr), 4)
	return [4]int32{s[0], s[1], s[2], s[3]}
}
