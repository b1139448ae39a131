//go:build !ios && !android && (amd64 || arm64)

// Package avutil provides the libavutil bindings pixconv needs: pixel format
// identifiers, error strings, the FFmpeg heap allocator and the log level.
package avutil

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/pixconv/internal/bindings"
)

// Function bindings - registered when init() is called
var (
	avMalloc func(size uintptr) unsafe.Pointer
	avFree   func(ptr unsafe.Pointer)

	avStrerror func(errnum int32, errbuf unsafe.Pointer, errbufSize uintptr) int32

	avLogSetLevel func(level int32)
	avLogGetLevel func() int32

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
		return // Will fail later when functions are called
	}

	lib := bindings.LibAVUtil()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avMalloc, lib, "av_malloc")
	purego.RegisterLibFunc(&avFree, lib, "av_free")
	purego.RegisterLibFunc(&avStrerror, lib, "av_strerror")
	purego.RegisterLibFunc(&avLogSetLevel, lib, "av_log_set_level")
	purego.RegisterLibFunc(&avLogGetLevel, lib, "av_log_get_level")

	bindingsRegistered = true
}

// Available reports whether the libavutil functions were registered.
func Available() bool {
	return bindingsRegistered
}

// Malloc allocates memory using FFmpeg's allocator.
// Returns nil if FFmpeg is not loaded or the allocation fails.
func Malloc(size uintptr) unsafe.Pointer {
	if avMalloc == nil {
		return nil
	}
	return avMalloc(size)
}

// Free frees memory allocated by Malloc.
func Free(ptr unsafe.Pointer) {
	if ptr == nil || avFree == nil {
		return
	}
	avFree(ptr)
}

// SetLogLevel sets the global FFmpeg log level (AV_LOG_*).
func SetLogLevel(level int32) error {
	if avLogSetLevel == nil {
		return bindings.ErrNotLoaded
	}
	avLogSetLevel(level)
	return nil
}

// LogLevel returns the global FFmpeg log level, or -8 (quiet) if not loaded.
func LogLevel() int32 {
	if avLogGetLevel == nil {
		return -8
	}
	return avLogGetLevel()
}

// ErrorString returns a human-readable error message for an FFmpeg error code.
func ErrorString(errnum int32) string {
	if avStrerror == nil {
		return "unknown error (FFmpeg not loaded)"
	}

	buf := make([]byte, 256)
	avStrerror(errnum, unsafe.Pointer(&buf[0]), 256)

	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
