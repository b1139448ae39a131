//go:build !ios && !android && (amd64 || arm64)

package avutil

// PixelFormat represents FFmpeg pixel formats.
//
// Values follow libavutil/pixfmt.h for libavutil 57 and later; the removed
// VAAPI_MOCO/VAAPI_IDCT entries shifted everything after AV_PIX_FMT_BGR555LE.
type PixelFormat int32

const (
	PixelFormatNone     PixelFormat = -1
	PixelFormatYUV420P  PixelFormat = 0  // Planar YUV 4:2:0
	PixelFormatBGR24    PixelFormat = 3  // Packed BGR 8:8:8
	PixelFormatYUV422P  PixelFormat = 4  // Planar YUV 4:2:2
	PixelFormatYUV444P  PixelFormat = 5  // Planar YUV 4:4:4
	PixelFormatYUV410P  PixelFormat = 6  // Planar YUV 4:1:0
	PixelFormatYUV411P  PixelFormat = 7  // Planar YUV 4:1:1
	PixelFormatYUVJ420P PixelFormat = 12 // Planar YUV 4:2:0 (JPEG)
	PixelFormatYUVJ422P PixelFormat = 13 // Planar YUV 4:2:2 (JPEG)
	PixelFormatYUVJ444P PixelFormat = 14 // Planar YUV 4:4:4 (JPEG)
	PixelFormatNV12     PixelFormat = 23 // Planar YUV 4:2:0 (UV interleaved)
	PixelFormatNV21     PixelFormat = 24 // Planar YUV 4:2:0 (VU interleaved)
	PixelFormatBGRA     PixelFormat = 28 // Packed BGRA 8:8:8:8
	PixelFormatYUV440P  PixelFormat = 31 // Planar YUV 4:4:0
	PixelFormatYUVJ440P PixelFormat = 32 // Planar YUV 4:4:0 (JPEG)

	PixelFormatYUV420P16LE PixelFormat = 45
	PixelFormatYUV420P16BE PixelFormat = 46
	PixelFormatYUV422P16LE PixelFormat = 47
	PixelFormatYUV422P16BE PixelFormat = 48
	PixelFormatYUV444P16LE PixelFormat = 49
	PixelFormatYUV444P16BE PixelFormat = 50

	PixelFormatYUV420P9BE  PixelFormat = 59
	PixelFormatYUV420P9LE  PixelFormat = 60
	PixelFormatYUV420P10BE PixelFormat = 61
	PixelFormatYUV420P10LE PixelFormat = 62
	PixelFormatYUV422P10BE PixelFormat = 63
	PixelFormatYUV422P10LE PixelFormat = 64
	PixelFormatYUV444P9BE  PixelFormat = 65
	PixelFormatYUV444P9LE  PixelFormat = 66
	PixelFormatYUV444P10BE PixelFormat = 67
	PixelFormatYUV444P10LE PixelFormat = 68
	PixelFormatYUV422P9BE  PixelFormat = 69
	PixelFormatYUV422P9LE  PixelFormat = 70
)
