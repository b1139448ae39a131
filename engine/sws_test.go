//go:build !ios && !android && (amd64 || arm64)

package engine

import (
	"errors"
	"testing"

	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

func requireSWScale(t *testing.T) *SWScale {
	t.Helper()
	e, err := NewSWScale()
	if err != nil {
		t.Skipf("FFmpeg not available: %v", err)
	}
	return e
}

func TestSWScaleContextReuse(t *testing.T) {
	e := requireSWScale(t)
	p := Params{Width: 64, Height: 32, Src: pixfmt.YUV420P, Dst: pixfmt.NV12, Flags: Bilinear}

	c1, err := e.GetCachedContext(nil, p)
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	c2, err := e.GetCachedContext(c1, p)
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	defer c2.Close()
	if c2.Params() != p {
		t.Errorf("params: got %v want %v", c2.Params(), p)
	}

	// A context from another engine is released and replaced.
	native, err := NewNative().GetCachedContext(nil, p)
	if err != nil {
		t.Fatalf("native GetCachedContext: %v", err)
	}
	c3, err := e.GetCachedContext(native, p)
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	defer c3.Close()
	if _, err := native.ColorspaceDetails(); !errors.Is(err, ErrClosed) {
		t.Errorf("foreign context should be closed, got %v", err)
	}
}

func TestSWScaleMatchesNativeLuma(t *testing.T) {
	e := requireSWScale(t)
	const w, h = 32, 16
	p := Params{Width: w, Height: h, Src: pixfmt.YUV444P, Dst: pixfmt.YUV422P, Flags: Point}

	src := makePlanes(pixfmt.YUV444P, w, h)
	for i := range src.Data[0] {
		src.Data[0][i] = byte(16 + i%200)
	}
	fill(src.Data[1], 100)
	fill(src.Data[2], 150)

	ctx, err := e.GetCachedContext(nil, p)
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	defer ctx.Close()

	dst := makePlanes(pixfmt.YUV422P, w, h)
	if err := ctx.Scale(src, h, dst); err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if string(dst.Data[0]) != string(src.Data[0]) {
		t.Error("luma should pass through unchanged")
	}
	if dst.Data[1][0] != 100 || dst.Data[2][0] != 150 {
		t.Errorf("flat chroma: got U=%d V=%d", dst.Data[1][0], dst.Data[2][0])
	}
}

func TestSWScaleColorspaceDetails(t *testing.T) {
	e := requireSWScale(t)
	ctx, err := e.GetCachedContext(nil, Params{Width: 16, Height: 16, Src: pixfmt.YUV420P, Dst: pixfmt.BGRA, Flags: Bilinear})
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	defer ctx.Close()

	d, err := ctx.ColorspaceDetails()
	if errors.Is(err, ErrUnsupported) {
		t.Skip("swscale colorspace APIs not available in this FFmpeg build")
	}
	if err != nil {
		t.Fatalf("ColorspaceDetails: %v", err)
	}

	d.InvTable = e.Coefficients(ColorSpaceBT709)
	d.SrcFullRange = true
	if err := ctx.SetColorspaceDetails(d); err != nil {
		t.Fatalf("SetColorspaceDetails: %v", err)
	}
	got, err := ctx.ColorspaceDetails()
	if err != nil {
		t.Fatalf("ColorspaceDetails: %v", err)
	}
	if got.InvTable != StaticCoefficients(ColorSpaceBT709) {
		t.Errorf("InvTable: got %v want BT.709", got.InvTable)
	}
	if !got.SrcFullRange {
		t.Error("source range should be full")
	}
}

func TestSWScaleShortPlane(t *testing.T) {
	e := requireSWScale(t)
	const w, h = 16, 16
	ctx, err := e.GetCachedContext(nil, Params{Width: w, Height: h, Src: pixfmt.YUV420P, Dst: pixfmt.YUV420P, Flags: Point})
	if err != nil {
		t.Fatalf("GetCachedContext: %v", err)
	}
	defer ctx.Close()

	src := makePlanes(pixfmt.YUV420P, w, h)
	dst := makePlanes(pixfmt.YUV420P, w, h)
	dst.Data[2] = dst.Data[2][:10]
	if err := ctx.Scale(src, h, dst); !errors.Is(err, ErrShortPlane) {
		t.Fatalf("expected ErrShortPlane, got %v", err)
	}
}

func TestByName(t *testing.T) {
	if e, err := ByName("native"); err != nil || e.Name() != "native" {
		t.Fatalf("ByName(native) = %v, %v", e, err)
	}
	if _, err := ByName("opencl"); err == nil {
		t.Error("expected error for unknown engine")
	}
	if e, err := ByName("auto"); err != nil || e == nil {
		t.Fatalf("ByName(auto) = %v, %v", e, err)
	}
}

func TestSWSFlags(t *testing.T) {
	testCases := []struct {
		in   Flags
		want int32
	}{
		{Bilinear, 0x2},
		{Point | PrintInfo, 0x1010},
		{FastBilinear | FullChromaHInt | AccurateRounding | PrintInfo, 0x43001},
		{0, 0},
	}
	for _, tc := range testCases {
		if got := swsFlags(tc.in); got != tc.want {
			t.Errorf("swsFlags(%#x) = %#x, want %#x", int32(tc.in), got, tc.want)
		}
	}
}
