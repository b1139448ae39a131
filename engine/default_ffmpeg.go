//go:build !ios && !android && (amd64 || arm64)

package engine

import "fmt"

// Default returns the SWScale engine when FFmpeg can be loaded, else Native.
func Default() Engine {
	if e, err := NewSWScale(); err == nil {
		return e
	}
	return NewNative()
}

// ByName resolves "auto", "swscale" or "native".
func ByName(name string) (Engine, error) {
	switch name {
	case "", "auto":
		return Default(), nil
	case "swscale":
		e, err := NewSWScale()
		if err != nil {
			return nil, err
		}
		return e, nil
	case "native":
		return NewNative(), nil
	}
	return nil, fmt.Errorf("engine: unknown engine %q", name)
}
