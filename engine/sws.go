//go:build !ios && !android && (amd64 || arm64)

package engine

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/obinnaokechukwu/pixconv/avutil"
	"github.com/obinnaokechukwu/pixconv/internal/bindings"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
	"github.com/obinnaokechukwu/pixconv/swscale"
)

var swsFormats = map[pixfmt.Layout]avutil.PixelFormat{
	pixfmt.YUV420P:     avutil.PixelFormatYUV420P,
	pixfmt.YUVJ420P:    avutil.PixelFormatYUVJ420P,
	pixfmt.YUV422P:     avutil.PixelFormatYUV422P,
	pixfmt.YUVJ422P:    avutil.PixelFormatYUVJ422P,
	pixfmt.YUV444P:     avutil.PixelFormatYUV444P,
	pixfmt.YUVJ444P:    avutil.PixelFormatYUVJ444P,
	pixfmt.YUV440P:     avutil.PixelFormatYUV440P,
	pixfmt.YUVJ440P:    avutil.PixelFormatYUVJ440P,
	pixfmt.YUV411P:     avutil.PixelFormatYUV411P,
	pixfmt.YUV410P:     avutil.PixelFormatYUV410P,
	pixfmt.NV12:        avutil.PixelFormatNV12,
	pixfmt.NV21:        avutil.PixelFormatNV21,
	pixfmt.YUV420P9LE:  avutil.PixelFormatYUV420P9LE,
	pixfmt.YUV420P9BE:  avutil.PixelFormatYUV420P9BE,
	pixfmt.YUV420P10LE: avutil.PixelFormatYUV420P10LE,
	pixfmt.YUV420P10BE: avutil.PixelFormatYUV420P10BE,
	pixfmt.YUV420P16LE: avutil.PixelFormatYUV420P16LE,
	pixfmt.YUV420P16BE: avutil.PixelFormatYUV420P16BE,
	pixfmt.YUV422P9LE:  avutil.PixelFormatYUV422P9LE,
	pixfmt.YUV422P9BE:  avutil.PixelFormatYUV422P9BE,
	pixfmt.YUV422P10LE: avutil.PixelFormatYUV422P10LE,
	pixfmt.YUV422P10BE: avutil.PixelFormatYUV422P10BE,
	pixfmt.YUV422P16LE: avutil.PixelFormatYUV422P16LE,
	pixfmt.YUV422P16BE: avutil.PixelFormatYUV422P16BE,
	pixfmt.YUV444P9LE:  avutil.PixelFormatYUV444P9LE,
	pixfmt.YUV444P9BE:  avutil.PixelFormatYUV444P9BE,
	pixfmt.YUV444P10LE: avutil.PixelFormatYUV444P10LE,
	pixfmt.YUV444P10BE: avutil.PixelFormatYUV444P10BE,
	pixfmt.YUV444P16LE: avutil.PixelFormatYUV444P16LE,
	pixfmt.YUV444P16BE: avutil.PixelFormatYUV444P16BE,
	pixfmt.BGRA:        avutil.PixelFormatBGRA,
	pixfmt.BGR24:       avutil.PixelFormatBGR24,
}

// PixelFormat returns the FFmpeg pixel format for a layout.
func PixelFormat(l pixfmt.Layout) (avutil.PixelFormat, bool) {
	f, ok := swsFormats[l]
	return f, ok
}

// SWScale is the libswscale-backed engine.
type SWScale struct{}

// NewSWScale loads FFmpeg and returns the engine, or ErrUnavailable.
func NewSWScale() (*SWScale, error) {
	if err := bindings.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !swscale.Available() {
		return nil, fmt.Errorf("%w: swscale functions not registered", ErrUnavailable)
	}
	return &SWScale{}, nil
}

func (*SWScale) Name() string { return "swscale" }

// GetCachedContext wraps sws_getCachedContext. Contexts from other engines are
// closed and replaced.
func (e *SWScale) GetCachedContext(prev Context, p Params) (Context, error) {
	cur, _ := prev.(*swsContext)
	if cur == nil && prev != nil {
		_ = prev.Close()
	}
	fail := func(err error) (Context, error) {
		if cur != nil {
			_ = cur.Close()
		}
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return fail(err)
	}
	src, ok := PixelFormat(p.Src)
	if !ok || !swscale.IsSupportedInput(src) {
		return fail(fmt.Errorf("%w: swscale input %v", ErrUnsupported, p.Src))
	}
	dst, ok := PixelFormat(p.Dst)
	if !ok || !swscale.IsSupportedOutput(dst) {
		return fail(fmt.Errorf("%w: swscale output %v", ErrUnsupported, p.Dst))
	}

	var old swscale.Context
	if cur != nil {
		old = cur.ptr
		cur.ptr = nil
	}
	// sws_getCachedContext frees old itself when it cannot reuse it.
	ptr := swscale.GetCachedContext(old, p.Width, p.Height, src, p.Width, p.Height, dst, swsFlags(p.Flags))
	if ptr == nil {
		return nil, fmt.Errorf("%w: sws_getCachedContext failed for %v", ErrUnsupported, p)
	}
	if cur == nil {
		cur = &swsContext{}
	}
	cur.ptr = ptr
	cur.params = p
	return cur, nil
}

// Coefficients returns sws_getCoefficients for cs, falling back to the
// built-in tables when the symbol is missing.
func (e *SWScale) Coefficients(cs ColorSpace) Matrix {
	if ptr := swscale.GetCoefficients(ToSwsColorspace(cs)); ptr != nil {
		return Matrix(swscale.ReadTable(ptr))
	}
	return StaticCoefficients(cs)
}

// swsFlags translates engine flags to SWS_* bits.
func swsFlags(f Flags) int32 {
	var out int32
	for _, m := range []struct {
		flag Flags
		sws  int32
	}{
		{FastBilinear, swscale.FlagFastBilinear},
		{Bilinear, swscale.FlagBilinear},
		{Point, swscale.FlagPoint},
		{PrintInfo, swscale.FlagPrintInfo},
		{FullChromaHInt, swscale.FlagFullChrHInt},
		{AccurateRounding, swscale.FlagAccurateRnd},
	} {
		if f.Has(m.flag) {
			out |= m.sws
		}
	}
	return out
}

type swsContext struct {
	ptr    swscale.Context
	params Params

	// Tables handed to sws_setColorspaceDetails.
	invTable Matrix
	table    Matrix
}

func (c *swsContext) Params() Params { return c.params }

func (c *swsContext) ColorspaceDetails() (ColorspaceDetails, error) {
	if c.ptr == nil {
		return ColorspaceDetails{}, ErrClosed
	}
	if !swscale.HasColorspaceDetails() {
		return ColorspaceDetails{}, fmt.Errorf("%w: swscale colorspace details not available", ErrUnsupported)
	}

	var invTable, table unsafe.Pointer
	var srcRange, dstRange int32
	var brightness, contrast, saturation int32
	ret := swscale.GetColorspaceDetails(c.ptr, &invTable, &srcRange, &table, &dstRange, &brightness, &contrast, &saturation)
	if ret < 0 {
		return ColorspaceDetails{}, avutil.NewError(ret, "sws_getColorspaceDetails")
	}
	return ColorspaceDetails{
		InvTable:     Matrix(swscale.ReadTable(invTable)),
		Table:        Matrix(swscale.ReadTable(table)),
		SrcFullRange: srcRange == 1,
		DstFullRange: dstRange == 1,
		Brightness:   int(brightness),
		Contrast:     int(contrast),
		Saturation:   int(saturation),
	}, nil
}

func (c *swsContext) SetColorspaceDetails(d ColorspaceDetails) error {
	if c.ptr == nil {
		return ErrClosed
	}
	if !swscale.HasColorspaceDetails() {
		return fmt.Errorf("%w: swscale colorspace details not available", ErrUnsupported)
	}

	// swscale copies the tables, but they must stay put during the call.
	c.invTable, c.table = d.InvTable, d.Table
	var pinner runtime.Pinner
	pinner.Pin(&c.invTable)
	pinner.Pin(&c.table)
	defer pinner.Unpin()

	ret := swscale.SetColorspaceDetails(c.ptr,
		unsafe.Pointer(&c.invTable[0]), boolRange(d.SrcFullRange),
		unsafe.Pointer(&c.table[0]), boolRange(d.DstFullRange),
		int32(d.Brightness), int32(d.Contrast), int32(d.Saturation))
	if ret < 0 {
		return avutil.NewError(ret, "sws_setColorspaceDetails")
	}
	return nil
}

// swscale uses 0=limited (MPEG), 1=full (JPEG)
func boolRange(full bool) int32 {
	if full {
		return 1
	}
	return 0
}

func (c *swsContext) Scale(src Planes, height int, dst Planes) error {
	if c.ptr == nil {
		return ErrClosed
	}
	if height <= 0 || height > c.params.Height {
		return fmt.Errorf("%w: slice height %d for %v", ErrUnsupported, height, c.params)
	}
	if err := CheckPlanes(c.params.Src, c.params.Width, height, src); err != nil {
		return err
	}
	if err := CheckPlanes(c.params.Dst, c.params.Width, height, dst); err != nil {
		return err
	}

	var pinner runtime.Pinner
	defer pinner.Unpin()

	var srcPtrs, dstPtrs [4]unsafe.Pointer
	var srcStrides, dstStrides [4]int32
	for i := 0; i < NumPlanes(c.params.Src); i++ {
		srcPtrs[i] = pinPlane(&pinner, src.Data[i])
		srcStrides[i] = int32(src.Stride[i])
	}
	for i := 0; i < NumPlanes(c.params.Dst); i++ {
		dstPtrs[i] = pinPlane(&pinner, dst.Data[i])
		dstStrides[i] = int32(dst.Stride[i])
	}

	ret := swscale.Scale(c.ptr, &srcPtrs, &srcStrides, 0, int32(height), &dstPtrs, &dstStrides)
	if ret < 0 {
		return avutil.NewError(ret, "sws_scale")
	}
	if ret == 0 {
		return avutil.NewError(avutil.AVERROR_BUG, "sws_scale")
	}
	return nil
}

func pinPlane(p *runtime.Pinner, b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	ptr := &b[0]
	p.Pin(ptr)
	return unsafe.Pointer(ptr)
}

func (c *swsContext) Close() error {
	if c.ptr != nil {
		swscale.FreeContext(c.ptr)
		c.ptr = nil
	}
	return nil
}
