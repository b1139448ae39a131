//go:build !ios && !android && (amd64 || arm64)

package scratch

import (
	"fmt"
	"unsafe"

	"github.com/obinnaokechukwu/pixconv/avutil"
)

// AVMalloc allocates scratch memory with av_malloc, which returns buffers
// aligned for FFmpeg's SIMD paths.
type AVMalloc struct{}

// AVMallocAvailable reports whether av_malloc is bound.
func AVMallocAvailable() bool {
	return avutil.Available()
}

func (AVMalloc) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrAllocation, n)
	}
	ptr := avutil.Malloc(uintptr(n))
	if ptr == nil {
		return nil, fmt.Errorf("%w: av_malloc(%d)", ErrAllocation, n)
	}
	return unsafe.Slice((*byte)(ptr), n), nil
}

func (AVMalloc) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	avutil.Free(unsafe.Pointer(unsafe.SliceData(b)))
}
