//go:build ios || android || !(amd64 || arm64)

package engine

import "fmt"

// Default returns Native; FFmpeg is not bound on this platform.
func Default() Engine {
	return NewNative()
}

// ByName resolves "auto", "swscale" or "native".
func ByName(name string) (Engine, error) {
	switch name {
	case "", "auto", "native":
		return NewNative(), nil
	case "swscale":
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("engine: unknown engine %q", name)
}
