//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the FFmpeg shared libraries pixconv talks to
// (libavutil and libswscale) and exposes their handles for purego registration.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// ErrNotLoaded is returned when FFmpeg functions are called before Load().
var ErrNotLoaded = errors.New("pixconv: FFmpeg libraries not loaded; call pixconv.Init() first")

// ErrLibraryNotFound is returned when a required FFmpeg library cannot be found.
var ErrLibraryNotFound = errors.New("pixconv: FFmpeg library not found")

// ErrUnsupportedVersion is returned when libavutil predates the pixel format
// numbering pixconv is written against (major 57, FFmpeg 5.0).
var ErrUnsupportedVersion = errors.New("pixconv: libavutil older than 57 is not supported")

// MinAVUtilMajor is the oldest libavutil major version whose AVPixelFormat
// numbering matches avutil.PixelFormat.
const MinAVUtilMajor = 57

var (
	avutilVersions  = []int{60, 59, 58, 57}
	swscaleVersions = []int{9, 8, 7, 6}
)

// Library handles
var (
	libAVUtil  uintptr
	libSWScale uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

var (
	avutilVersion  func() uint32
	swscaleVersion func() uint32
)

// IsLoaded returns true if FFmpeg libraries have been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads libavutil and libswscale. It is safe to call multiple times;
// subsequent calls return the result of the first attempt.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	var err error

	// avutil first: swscale resolves symbols from it (RTLD_GLOBAL).
	libAVUtil, err = loadLibrary("avutil", avutilVersions)
	if err != nil {
		return fmt.Errorf("loading libavutil: %w", err)
	}
	purego.RegisterLibFunc(&avutilVersion, libAVUtil, "avutil_version")
	if major := int(avutilVersion() >> 16); major < MinAVUtilMajor {
		return fmt.Errorf("%w: found %d", ErrUnsupportedVersion, major)
	}

	libSWScale, err = loadLibrary("swscale", swscaleVersions)
	if err != nil {
		return fmt.Errorf("loading libswscale: %w", err)
	}
	purego.RegisterLibFunc(&swscaleVersion, libSWScale, "swscale_version")

	return nil
}

// loadLibrary attempts to load a library by trying versioned names.
func loadLibrary(name string, versions []int) (uintptr, error) {
	for _, searchPath := range LibrarySearchPaths() {
		for _, ver := range versions {
			if lib, err := tryOpen(filepath.Join(searchPath, LibraryName(name, ver))); err == nil {
				return lib, nil
			}
		}
		if lib, err := tryOpen(filepath.Join(searchPath, LibraryName(name, 0))); err == nil {
			return lib, nil
		}
	}

	// Let the dynamic linker search on its own.
	for _, ver := range versions {
		if lib, err := tryOpen(LibraryName(name, ver)); err == nil {
			return lib, nil
		}
	}
	if lib, err := tryOpen(LibraryName(name, 0)); err == nil {
		return lib, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// tryOpen opens a library with RTLD_NOW | RTLD_GLOBAL; FFmpeg libraries
// cross-reference each other's symbols.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// FindLibrary searches for a library and returns its full path.
// This is useful for diagnostics.
func FindLibrary(name string, versions []int) (string, error) {
	for _, searchPath := range LibrarySearchPaths() {
		for _, ver := range append(versions, 0) {
			fullPath := filepath.Join(searchPath, LibraryName(name, ver))
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "linux", "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/opt/homebrew/lib",            // Apple Silicon
			"/usr/local/lib",               // Intel
			"/opt/homebrew/opt/ffmpeg/lib", // Homebrew FFmpeg
			"/usr/local/opt/ffmpeg/lib",
		)

	case "windows":
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths,
			"C:\\ffmpeg\\bin",
			"C:\\Program Files\\ffmpeg\\bin",
		)
	}

	return paths
}

// LibraryName returns the platform-specific file name of an FFmpeg library.
// A version of 0 yields the unversioned name.
//
//   - Linux:   LibraryName("swscale", 8) -> "libswscale.so.8"
//   - macOS:   LibraryName("swscale", 8) -> "libswscale.8.dylib"
//   - Windows: LibraryName("swscale", 8) -> "swscale-8.dll"
func LibraryName(name string, version int) string {
	switch runtime.GOOS {
	case "darwin":
		if version > 0 {
			return fmt.Sprintf("lib%s.%d.dylib", name, version)
		}
		return "lib" + name + ".dylib"
	case "windows":
		if version > 0 {
			return fmt.Sprintf("%s-%d.dll", name, version)
		}
		return name + ".dll"
	default:
		if version > 0 {
			return fmt.Sprintf("lib%s.so.%d", name, version)
		}
		return "lib" + name + ".so"
	}
}

// AVUtilVersion returns the avutil library version.
// Returns 0 if libraries are not loaded.
func AVUtilVersion() uint32 {
	if !loaded || avutilVersion == nil {
		return 0
	}
	return avutilVersion()
}

// SWScaleVersion returns the swscale library version.
// Returns 0 if libraries are not loaded.
func SWScaleVersion() uint32 {
	if !loaded || swscaleVersion == nil {
		return 0
	}
	return swscaleVersion()
}

// LibAVUtil returns the avutil library handle.
func LibAVUtil() uintptr {
	return libAVUtil
}

// LibSWScale returns the swscale library handle.
func LibSWScale() uintptr {
	return libSWScale
}
