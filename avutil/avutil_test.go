//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"os"
	"testing"
	"unsafe"

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

func TestMallocFree(t *testing.T) {
	skipIfNoFFmpeg(t)

	p := Malloc(64)
	if p == nil {
		t.Fatal("Malloc returned nil")
	}
	buf := unsafe.Slice((*byte)(p), 64)
	for i := range buf {
		buf[i] = byte(i)
	}
	if buf[63] != 63 {
		t.Errorf("buffer not writable")
	}
	Free(p)

	// Free nil should not panic
	Free(nil)
}

func TestLogLevel(t *testing.T) {
	skipIfNoFFmpeg(t)

	prev := LogLevel()
	defer SetLogLevel(prev)

	if err := SetLogLevel(16); err != nil {
		t.Fatalf("SetLogLevel failed: %v", err)
	}
	if got := LogLevel(); got != 16 {
		t.Errorf("LogLevel: expected 16, got %d", got)
	}
}

func TestNewError(t *testing.T) {
	if err := NewError(0, "noop"); err != nil {
		t.Errorf("NewError(0) should be nil, got %v", err)
	}

	err := NewError(AVERROR_ENOMEM, "sws_scale")
	if err == nil {
		t.Fatal("NewError with negative code returned nil")
	}
	var ffErr *Error
	if !errors.As(err, &ffErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ffErr.Op != "sws_scale" {
		t.Errorf("Op: expected sws_scale, got %q", ffErr.Op)
	}
	if !IsNoMemory(err) {
		t.Error("IsNoMemory should report ENOMEM")
	}
	if Code(err) != AVERROR_ENOMEM {
		t.Errorf("Code: expected %d, got %d", AVERROR_ENOMEM, Code(err))
	}
	if Code(errors.New("plain")) != 0 {
		t.Error("Code of a non-FFmpeg error should be 0")
	}
}

func TestErrorString(t *testing.T) {
	skipIfNoFFmpeg(t)
	msg := ErrorString(AVERROR_EINVAL)
	if msg == "" {
		t.Error("ErrorString should return non-empty string for AVERROR_EINVAL")
	}
	t.Logf("AVERROR_EINVAL message: %s", msg)

	// Invalid error should still return something
	if ErrorString(-999999) == "" {
		t.Error("ErrorString should return non-empty string for unknown error")
	}
}
