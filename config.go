//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"github.com/pion/logging"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
)

// Config contains configuration for creating a Converter.
type Config struct {
	// Engine performs rescaling. Defaults to engine.Default().
	Engine engine.Engine

	// Allocator provides scratch memory. Defaults to a Go heap allocator
	// capped at MaxScratchBytes.
	Allocator scratch.Allocator

	// MaxScratchBytes caps the default heap allocator (<= 0 is unbounded).
	MaxScratchBytes int64

	// MaxScratchBuffers caps outstanding scratch buffers (<= 0 is unbounded).
	MaxScratchBuffers int

	// HighQuality enables full chroma interpolation and accurate rounding.
	HighQuality bool

	// ColorSpace and ColorRange describe the source frames. They take effect
	// on the next context rebuild.
	ColorSpace ColorSpace
	ColorRange ColorRange

	// LoggerFactory overrides the default pion/logging factory.
	LoggerFactory logging.LoggerFactory
}

// DefaultConfig returns the configuration NewConverter uses for zero fields.
func DefaultConfig() Config {
	return Config{
		MaxScratchBuffers: 2,
		ColorSpace:        ColorSpaceUnspecified,
		ColorRange:        ColorRangeUnspecified,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Engine == nil {
		cfg.Engine = engine.Default()
	}
	if cfg.Allocator == nil {
		cfg.Allocator = scratch.NewHeap(cfg.MaxScratchBytes)
	}
	if cfg.MaxScratchBuffers == 0 {
		cfg.MaxScratchBuffers = def.MaxScratchBuffers
	}
	if cfg.ColorSpace == 0 {
		cfg.ColorSpace = def.ColorSpace
	}
	return cfg
}
