//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/pixconv/avutil"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
)

// FFmpegError is an error from FFmpeg operations.
// It contains the raw FFmpeg error code and a human-readable message.
type FFmpegError = avutil.Error

// Common errors
var (
	// ErrUnsupportedFormat indicates an input layout or output format outside
	// the supported set.
	ErrUnsupportedFormat = errors.New("pixconv: unsupported format")

	// ErrEngineFailure indicates the rescaling engine could not build a
	// context or rejected a scale call.
	ErrEngineFailure = errors.New("pixconv: rescaling engine failure")

	// ErrAllocation indicates a scratch buffer could not be obtained.
	ErrAllocation = scratch.ErrAllocation

	// ErrInvalidFrame indicates bad dimensions, strides or buffer sizes.
	ErrInvalidFrame = errors.New("pixconv: invalid frame")

	// ErrClosed indicates the converter has been closed.
	ErrClosed = errors.New("pixconv: converter is closed")
)

// ErrorCode returns the FFmpeg error code from an error, or 0 if not an FFmpeg error.
func ErrorCode(err error) int32 {
	return avutil.Code(err)
}

func engineError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrEngineFailure, op, err)
}
