//go:build !ios && !android && (amd64 || arm64)

package swscale

import (
	"os"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/pixconv/avutil"
	"github.com/obinnaokechukwu/pixconv/internal/bindings"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	if err := bindings.Load(); err == nil {
		ffmpegAvailable = true
	}
	os.Exit(m.Run())
}

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if !ffmpegAvailable {
		t.Skip("FFmpeg not available")
	}
}

func TestGetCachedContextReuse(t *testing.T) {
	skipIfNoFFmpeg(t)

	ctx := GetCachedContext(nil,
		64, 48, avutil.PixelFormatYUV420P,
		64, 48, avutil.PixelFormatNV12,
		FlagBilinear)
	if ctx == nil {
		t.Fatal("GetCachedContext returned nil")
	}

	// Same parameters: swscale hands back the same context.
	same := GetCachedContext(ctx,
		64, 48, avutil.PixelFormatYUV420P,
		64, 48, avutil.PixelFormatNV12,
		FlagBilinear)
	if same != ctx {
		t.Errorf("expected context reuse, got %p want %p", same, ctx)
	}

	// Different geometry: a context is still returned.
	other := GetCachedContext(same,
		32, 16, avutil.PixelFormatYUV420P,
		32, 16, avutil.PixelFormatNV12,
		FlagBilinear)
	if other == nil {
		t.Fatal("GetCachedContext returned nil after geometry change")
	}
	FreeContext(other)

	// Free nil should not panic
	FreeContext(nil)
}

func TestScaleFlags(t *testing.T) {
	skipIfNoFFmpeg(t)

	testCases := []struct {
		name  string
		flags int32
	}{
		{"FastBilinear", FlagFastBilinear},
		{"Bilinear", FlagBilinear},
		{"Point", FlagPoint},
		{"BilinearHQ", FlagBilinear | FlagFullChrHInt | FlagAccurateRnd},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := GetCachedContext(nil,
				64, 64, avutil.PixelFormatYUV420P10LE,
				64, 64, avutil.PixelFormatYUV444P16LE,
				tc.flags)
			if ctx == nil {
				t.Fatalf("GetCachedContext with %s flag returned nil", tc.name)
			}
			FreeContext(ctx)
		})
	}
}

func TestScaleRawPlanes(t *testing.T) {
	skipIfNoFFmpeg(t)

	const w, h = 16, 8
	ctx := GetCachedContext(nil, w, h, avutil.PixelFormatYUV444P, w, h, avutil.PixelFormatYUV422P, FlagPoint)
	if ctx == nil {
		t.Fatal("GetCachedContext returned nil")
	}
	defer FreeContext(ctx)

	srcBuf := avutil.Malloc(w * h * 3)
	dstBuf := avutil.Malloc(w * h * 2)
	if srcBuf == nil || dstBuf == nil {
		t.Fatal("av_malloc failed")
	}
	defer avutil.Free(srcBuf)
	defer avutil.Free(dstBuf)

	src := unsafe.Slice((*byte)(srcBuf), w*h*3)
	for i := range src {
		src[i] = 128
	}
	for i := 0; i < w*h; i++ {
		src[i] = byte(16 + i%200)
	}

	srcSlice := [4]unsafe.Pointer{srcBuf, unsafe.Add(srcBuf, w*h), unsafe.Add(srcBuf, 2*w*h)}
	srcStride := [4]int32{w, w, w}
	dstSlice := [4]unsafe.Pointer{dstBuf, unsafe.Add(dstBuf, w*h), unsafe.Add(dstBuf, w*h+w*h/2)}
	dstStride := [4]int32{w, w / 2, w / 2}

	if ret := Scale(ctx, &srcSlice, &srcStride, 0, h, &dstSlice, &dstStride); ret != h {
		t.Fatalf("Scale returned %d, want %d", ret, h)
	}

	dst := unsafe.Slice((*byte)(dstBuf), w*h*2)
	for i := 0; i < w*h; i++ {
		if dst[i] != src[i] {
			t.Fatalf("luma %d: got %d want %d", i, dst[i], src[i])
		}
	}
}

func TestColorspaceDetails(t *testing.T) {
	skipIfNoFFmpeg(t)
	if !HasColorspaceDetails() || GetCoefficients(CSITU709) == nil {
		t.Skip("swscale colorspace APIs not available in this FFmpeg build")
	}

	ctx := GetCachedContext(nil, 16, 16, avutil.PixelFormatYUV420P, 16, 16, avutil.PixelFormatBGRA, FlagBilinear)
	if ctx == nil {
		t.Fatal("GetCachedContext returned nil")
	}
	defer FreeContext(ctx)

	var invTable, table unsafe.Pointer
	var srcRange, dstRange, brightness, contrast, saturation int32
	if ret := GetColorspaceDetails(ctx, &invTable, &srcRange, &table, &dstRange, &brightness, &contrast, &saturation); ret < 0 {
		t.Fatalf("GetColorspaceDetails failed: %d", ret)
	}

	bt709 := GetCoefficients(CSITU709)
	if ret := SetColorspaceDetails(ctx, bt709, 0, table, 1, brightness, contrast, saturation); ret < 0 {
		t.Fatalf("SetColorspaceDetails failed: %d", ret)
	}

	if ret := GetColorspaceDetails(ctx, &invTable, &srcRange, &table, &dstRange, &brightness, &contrast, &saturation); ret < 0 {
		t.Fatalf("GetColorspaceDetails failed: %d", ret)
	}
	if got, want := ReadTable(invTable), ReadTable(bt709); got != want {
		t.Errorf("inverse table: got %v want %v", got, want)
	}
	if srcRange != 0 || dstRange != 1 {
		t.Errorf("ranges: got src=%d dst=%d, want 0/1", srcRange, dstRange)
	}
}

func TestVersion(t *testing.T) {
	skipIfNoFFmpeg(t)
	ver := bindings.SWScaleVersion()
	if ver == 0 {
		t.Error("SWScaleVersion returned 0")
	}
	t.Logf("swscale version: %d.%d.%d", ver>>16, (ver>>8)&0xFF, ver&0xFF)
}
