package engine

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// Native is a pure Go engine. It converts between same-sized layouts without
// FFmpeg: any enumerated YUV layout to any planar or semi-planar YUV layout,
// BGRA or BGR24.
type Native struct{}

// NewNative returns the pure Go engine.
func NewNative() *Native {
	return &Native{}
}

func (*Native) Name() string { return "native" }

func (n *Native) GetCachedContext(prev Context, p Params) (Context, error) {
	cur, _ := prev.(*nativeContext)
	if cur == nil && prev != nil {
		_ = prev.Close()
	}
	if cur != nil && !cur.closed && cur.params == p {
		return cur, nil
	}
	if cur != nil {
		_ = cur.Close()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return newNativeContext(p), nil
}

func (*Native) Coefficients(cs ColorSpace) Matrix {
	return StaticCoefficients(cs)
}

// interpolator picks the x/image/draw kernel matching the swscale flag.
func interpolator(f Flags) draw.Interpolator {
	switch {
	case f&Point != 0:
		return draw.NearestNeighbor
	case f&FastBilinear != 0:
		return draw.ApproxBiLinear
	default:
		return draw.BiLinear
	}
}

type nativeContext struct {
	params  Params
	details ColorspaceDetails
	scaler  draw.Interpolator
	closed  bool

	// Working planes hold samples widened to 16 bits.
	y, cb, cr *image.Gray16
	// Chroma on the destination grid; aliases cb/cr when the grids match.
	dcb, dcr *image.Gray16
}

func newNativeContext(p Params) *nativeContext {
	def := StaticCoefficients(ColorSpaceUnspecified)
	c := &nativeContext{
		params: p,
		details: ColorspaceDetails{
			InvTable:     def,
			Table:        def,
			SrcFullRange: p.Src.Info().FullRange,
			DstFullRange: p.Dst.Info().FullRange,
			Contrast:     1 << 16,
			Saturation:   1 << 16,
		},
		scaler: interpolator(p.Flags),
		y:      image.NewGray16(image.Rect(0, 0, p.Width, p.Height)),
	}

	sw, sh := p.Src.ChromaWidth(p.Width), p.Src.ChromaHeight(p.Height)
	c.cb = image.NewGray16(image.Rect(0, 0, sw, sh))
	c.cr = image.NewGray16(image.Rect(0, 0, sw, sh))

	dw, dh := c.dstChromaSize(p.Width, p.Height)
	if dw == sw && dh == sh {
		c.dcb, c.dcr = c.cb, c.cr
	} else {
		c.dcb = image.NewGray16(image.Rect(0, 0, dw, dh))
		c.dcr = image.NewGray16(image.Rect(0, 0, dw, dh))
	}
	return c
}

// dstChromaSize returns the chroma grid the destination needs. RGB output
// needs chroma at full resolution.
func (c *nativeContext) dstChromaSize(w, h int) (int, int) {
	if c.params.Dst.Info().RGB {
		return w, h
	}
	return c.params.Dst.ChromaWidth(w), c.params.Dst.ChromaHeight(h)
}

func (c *nativeContext) Params() Params { return c.params }

func (c *nativeContext) ColorspaceDetails() (ColorspaceDetails, error) {
	if c.closed {
		return ColorspaceDetails{}, ErrClosed
	}
	return c.details, nil
}

func (c *nativeContext) SetColorspaceDetails(d ColorspaceDetails) error {
	if c.closed {
		return ErrClosed
	}
	c.details = d
	return nil
}

func (c *nativeContext) Close() error {
	c.closed = true
	c.y, c.cb, c.cr, c.dcb, c.dcr = nil, nil, nil, nil, nil
	return nil
}

func (c *nativeContext) Scale(src Planes, height int, dst Planes) error {
	if c.closed {
		return ErrClosed
	}
	p := c.params
	if height <= 0 || height > p.Height {
		return fmt.Errorf("%w: slice height %d for %v", ErrUnsupported, height, p)
	}
	if err := CheckPlanes(p.Src, p.Width, height, src); err != nil {
		return err
	}
	for i := 0; i < NumPlanes(p.Dst); i++ {
		rowBytes, _ := PlaneExtent(p.Dst, i, p.Width, height)
		if dst.Stride[i] < rowBytes {
			return fmt.Errorf("%w: %v plane %d stride %d < %d", ErrShortPlane, p.Dst, i, dst.Stride[i], rowBytes)
		}
	}

	c.load(src, height)

	rgb := p.Dst.Info().RGB
	if !rgb && c.details.SrcFullRange != c.details.DstFullRange {
		c.remapRange(height)
	}

	sw, sh := p.Src.ChromaWidth(p.Width), p.Src.ChromaHeight(height)
	dw, dh := c.dstChromaSize(p.Width, height)
	if c.dcb != c.cb {
		sr, dr := image.Rect(0, 0, sw, sh), image.Rect(0, 0, dw, dh)
		c.scaler.Scale(c.dcb, dr, c.cb, sr, draw.Src, nil)
		c.scaler.Scale(c.dcr, dr, c.cr, sr, draw.Src, nil)
	}

	if rgb {
		c.storeRGB(dst, height)
	} else {
		c.storeYUV(dst, height)
	}
	return nil
}

// expand widens a depth-bit sample to 16 bits by bit replication, so that
// truncating back to depth bits is lossless.
func expand(v uint32, depth int) uint16 {
	return uint16(v<<(16-depth) | v>>(2*depth-16))
}

func (c *nativeContext) load(src Planes, h int) {
	l := c.params.Src
	info := l.Info()
	w := c.params.Width
	readPlane(c.y, src.Data[0], src.Stride[0], w, h, info)

	cw, ch := l.ChromaWidth(w), l.ChromaHeight(h)
	if !info.SemiPlanar {
		readPlane(c.cb, src.Data[1], src.Stride[1], cw, ch, info)
		readPlane(c.cr, src.Data[2], src.Stride[2], cw, ch, info)
		return
	}

	u, v := c.cb, c.cr
	if info.SwapUV {
		u, v = v, u
	}
	for y := 0; y < ch; y++ {
		row := src.Data[1][y*src.Stride[1]:]
		uo := u.Pix[y*u.Stride:]
		vo := v.Pix[y*v.Stride:]
		for x := 0; x < cw; x++ {
			binary.BigEndian.PutUint16(uo[2*x:], expand(uint32(row[2*x]), 8))
			binary.BigEndian.PutUint16(vo[2*x:], expand(uint32(row[2*x+1]), 8))
		}
	}
}

func readPlane(img *image.Gray16, buf []byte, stride, w, h int, info pixfmt.Info) {
	mask := uint32(1)<<info.Depth - 1
	for y := 0; y < h; y++ {
		row := buf[y*stride:]
		out := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			var v uint32
			switch {
			case info.Depth <= 8:
				v = uint32(row[x])
			case info.BigEndian:
				v = uint32(binary.BigEndian.Uint16(row[2*x:]))
			default:
				v = uint32(binary.LittleEndian.Uint16(row[2*x:]))
			}
			binary.BigEndian.PutUint16(out[2*x:], expand(v&mask, info.Depth))
		}
	}
}

// 16-bit range constants: limited luma spans 16..235, chroma 16..240.
const (
	lumaLow    = 16 << 8
	lumaSpan   = 219 << 8
	chromaSpan = 224 << 8
	chromaMid  = 128 << 8
)

func clamp16(v float64) uint16 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

func (c *nativeContext) remapRange(h int) {
	toLimited := c.details.SrcFullRange
	mapLuma := func(v uint16) uint16 {
		if toLimited {
			return clamp16(lumaLow + float64(v)*lumaSpan/0xFFFF)
		}
		return clamp16((float64(v) - lumaLow) * 0xFFFF / lumaSpan)
	}
	mapChroma := func(v uint16) uint16 {
		d := float64(v) - chromaMid
		if toLimited {
			return clamp16(chromaMid + d*chromaSpan/0xFFFF)
		}
		return clamp16(chromaMid + d*0xFFFF/chromaSpan)
	}

	mapPlane(c.y, c.params.Width, h, mapLuma)
	cw, ch := c.params.Src.ChromaWidth(c.params.Width), c.params.Src.ChromaHeight(h)
	mapPlane(c.cb, cw, ch, mapChroma)
	mapPlane(c.cr, cw, ch, mapChroma)
}

func mapPlane(img *image.Gray16, w, h int, fn func(uint16) uint16) {
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			binary.BigEndian.PutUint16(row[2*x:], fn(binary.BigEndian.Uint16(row[2*x:])))
		}
	}
}

func (c *nativeContext) storeYUV(dst Planes, h int) {
	l := c.params.Dst
	info := l.Info()
	w := c.params.Width
	writePlane(dst.Data[0], dst.Stride[0], c.y, w, h, info)

	cw, ch := l.ChromaWidth(w), l.ChromaHeight(h)
	if !info.SemiPlanar {
		writePlane(dst.Data[1], dst.Stride[1], c.dcb, cw, ch, info)
		writePlane(dst.Data[2], dst.Stride[2], c.dcr, cw, ch, info)
		return
	}

	u, v := c.dcb, c.dcr
	if info.SwapUV {
		u, v = v, u
	}
	rows := fitRows(dst.Data[1], dst.Stride[1], 2*cw, ch)
	for y := 0; y < rows; y++ {
		out := dst.Data[1][y*dst.Stride[1]:]
		ui := u.Pix[y*u.Stride:]
		vi := v.Pix[y*v.Stride:]
		for x := 0; x < cw; x++ {
			out[2*x] = ui[2*x]
			out[2*x+1] = vi[2*x]
		}
	}
}

// writePlane truncates 16-bit samples to the layout depth. Rows that do not
// fit in buf are dropped.
func writePlane(buf []byte, stride int, img *image.Gray16, w, h int, info pixfmt.Info) {
	sb := 1
	if info.Depth > 8 {
		sb = 2
	}
	shift := 16 - info.Depth
	rows := fitRows(buf, stride, w*sb, h)
	for y := 0; y < rows; y++ {
		out := buf[y*stride:]
		in := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			v := binary.BigEndian.Uint16(in[2*x:]) >> shift
			switch {
			case sb == 1:
				out[x] = byte(v)
			case info.BigEndian:
				binary.BigEndian.PutUint16(out[2*x:], v)
			default:
				binary.LittleEndian.PutUint16(out[2*x:], v)
			}
		}
	}
}

func clamp8(v float64) byte {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// storeRGB applies the committed InvTable. The table is expressed for
// limited-range chroma, so full-range sources scale it by 224/255.
func (c *nativeContext) storeRGB(dst Planes, h int) {
	m := c.details.InvTable
	crv := float64(m[0]) / 65536
	cbu := float64(m[1]) / 65536
	cgu := float64(m[2]) / 65536
	cgv := float64(m[3]) / 65536

	yOff, yGain := 16.0, 255.0/219
	if c.details.SrcFullRange {
		yOff, yGain = 0, 1
		k := 224.0 / 255
		crv, cbu, cgu, cgv = crv*k, cbu*k, cgu*k, cgv*k
	}

	w := c.params.Width
	bpp := c.params.Dst.Info().PixelBytes
	rows := fitRows(dst.Data[0], dst.Stride[0], w*bpp, h)
	for y := 0; y < rows; y++ {
		out := dst.Data[0][y*dst.Stride[0]:]
		yl := c.y.Pix[y*c.y.Stride:]
		ub := c.dcb.Pix[y*c.dcb.Stride:]
		vr := c.dcr.Pix[y*c.dcr.Stride:]
		for x := 0; x < w; x++ {
			luma := (float64(binary.BigEndian.Uint16(yl[2*x:]))/257 - yOff) * yGain
			cb := float64(binary.BigEndian.Uint16(ub[2*x:]))/257 - 128
			cr := float64(binary.BigEndian.Uint16(vr[2*x:]))/257 - 128

			px := out[x*bpp:]
			px[0] = clamp8(luma + cbu*cb)
			px[1] = clamp8(luma - cgu*cb - cgv*cr)
			px[2] = clamp8(luma + crv*cr)
			if bpp == 4 {
				px[3] = 0xFF
			}
		}
	}
}
