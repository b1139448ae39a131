//go:build !ios && !android && (amd64 || arm64)

// Command pixconv converts a file of raw frames into one of the canonical
// output formats.
//
// Usage:
//
//	pixconv -in frames.yuv -layout yuv420p -width 1920 -height 1080 -format nv12 -out frames.nv12
//
// Input and output files ending in .zst are zstd-compressed.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pion/logging"

	"github.com/obinnaokechukwu/pixconv"
	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

type options struct {
	in, out     string
	layout      string
	format      string
	width       int
	height      int
	stride      int
	engine      string
	hq          bool
	colorspace  string
	colorRange  string
	loglevel    string
	alloc       string
	maxScratch  int64
	verbose     bool
	listFormats bool
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "input file of raw frames (.zst for zstd)")
	flag.StringVar(&o.out, "out", "", "output file (.zst for zstd)")
	flag.StringVar(&o.layout, "layout", "yuv420p", "input pixel layout")
	flag.StringVar(&o.format, "format", "NV12", "output format")
	flag.IntVar(&o.width, "width", 0, "frame width")
	flag.IntVar(&o.height, "height", 0, "frame height")
	flag.IntVar(&o.stride, "stride", 0, "output stride in pixels (default width)")
	flag.StringVar(&o.engine, "engine", "auto", "rescaling engine: auto, swscale or native")
	flag.BoolVar(&o.hq, "hq", false, "full chroma interpolation and accurate rounding")
	flag.StringVar(&o.colorspace, "colorspace", "", "source matrix: bt601, bt709, fcc, smpte240m, bt2020")
	flag.StringVar(&o.colorRange, "range", "", "source range: limited or full")
	flag.StringVar(&o.loglevel, "loglevel", "", "FFmpeg log level (quiet ... trace)")
	flag.StringVar(&o.alloc, "alloc", "heap", "scratch allocator: heap or avmalloc")
	flag.Int64Var(&o.maxScratch, "max-scratch", 0, "scratch byte limit for the heap allocator")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.BoolVar(&o.listFormats, "list", false, "list layouts and output formats")
	flag.Parse()

	if o.listFormats {
		list(os.Stdout)
		return
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "pixconv: %v\n", err)
		os.Exit(1)
	}
}

func list(w io.Writer) {
	fmt.Fprintln(w, "Input layouts:")
	for _, l := range pixfmt.InputLayouts() {
		fmt.Fprintf(w, "  %s\n", l)
	}
	fmt.Fprintln(w, "Output formats:")
	for _, f := range pixfmt.OutputFormats() {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

func run(o options) error {
	if o.in == "" || o.out == "" || o.width <= 0 || o.height <= 0 {
		flag.Usage()
		return errors.New("-in, -out, -width and -height are required")
	}
	if o.stride == 0 {
		o.stride = o.width
	}

	layout, err := pixfmt.ParseLayout(o.layout)
	if err != nil {
		return err
	}
	format, err := pixfmt.ParseOutputFormat(o.format)
	if err != nil {
		return err
	}

	if o.loglevel != "" {
		level, ok := pixconv.ParseLogLevel(o.loglevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", o.loglevel)
		}
		// The FFmpeg log level only matters when the libraries are loaded.
		if pixconv.Init() == nil {
			if err := pixconv.SetLogLevel(level); err != nil {
				return err
			}
		}
	}

	cfg, err := buildConfig(o)
	if err != nil {
		return err
	}
	conv, err := pixconv.NewConverter(layout, format, cfg)
	if err != nil {
		return err
	}
	defer conv.Close()

	r, closeIn, err := openInput(o.in)
	if err != nil {
		return err
	}
	defer closeIn()

	w, closeOut, err := createOutput(o.out)
	if err != nil {
		return err
	}

	frames, err := convertAll(conv, r, w, layout, format, o)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	s := conv.Stats()
	fmt.Printf("%d frames %v -> %v with %s\n", frames, layout, format, cfg.Engine.Name())
	fmt.Printf("conversions=%d failures=%d rebuilds=%d direct=%d scratch=%d peak_scratch=%dB\n",
		s.Conversions, s.Failures, s.Rebuilds, s.Direct, s.Scratch, s.Buffers.PeakBytes)
	return nil
}

func buildConfig(o options) (pixconv.Config, error) {
	cfg := pixconv.DefaultConfig()
	cfg.HighQuality = o.hq
	cfg.MaxScratchBytes = o.maxScratch

	eng, err := engine.ByName(o.engine)
	if err != nil {
		return cfg, err
	}
	cfg.Engine = eng

	switch o.alloc {
	case "heap":
	case "avmalloc":
		if !scratch.AVMallocAvailable() {
			return cfg, errors.New("avmalloc allocator needs FFmpeg")
		}
		cfg.Allocator = scratch.AVMalloc{}
	default:
		return cfg, fmt.Errorf("unknown allocator %q", o.alloc)
	}

	if cfg.ColorSpace, err = parseColorSpace(o.colorspace); err != nil {
		return cfg, err
	}
	switch strings.ToLower(o.colorRange) {
	case "":
	case "limited", "mpeg", "tv":
		cfg.ColorRange = pixconv.ColorRangeMPEG
	case "full", "jpeg", "pc":
		cfg.ColorRange = pixconv.ColorRangeJPEG
	default:
		return cfg, fmt.Errorf("unknown range %q", o.colorRange)
	}

	if o.verbose {
		f := logging.NewDefaultLoggerFactory()
		f.DefaultLogLevel = logging.LogLevelDebug
		cfg.LoggerFactory = f
	}
	return cfg, nil
}

func parseColorSpace(name string) (pixconv.ColorSpace, error) {
	switch strings.ToLower(name) {
	case "", "unspecified":
		return pixconv.ColorSpaceUnspecified, nil
	case "bt601", "smpte170m":
		return pixconv.ColorSpaceBT601, nil
	case "bt470bg":
		return engine.ColorSpaceBT470BG, nil
	case "bt709":
		return pixconv.ColorSpaceBT709, nil
	case "fcc":
		return engine.ColorSpaceFCC, nil
	case "smpte240m":
		return engine.ColorSpaceSMPTE240M, nil
	case "bt2020":
		return engine.ColorSpaceBT2020, nil
	}
	return 0, fmt.Errorf("unknown colorspace %q", name)
}

func openInput(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return bufio.NewReader(f), func() { f.Close() }, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return dec, func() {
		dec.Close()
		f.Close()
	}, nil
}

func createOutput(path string) (io.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		bw := bufio.NewWriter(f)
		return bw, func() error {
			if err := bw.Flush(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}, nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return enc, func() error {
		if err := enc.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}

// convertAll reads tightly packed frames until EOF and writes one converted
// frame per input frame.
func convertAll(conv *pixconv.Converter, r io.Reader, w io.Writer, l pixfmt.Layout, f pixfmt.OutputFormat, o options) (int, error) {
	src := pixconv.Frame{Width: o.width, Height: o.height}
	var sizes [4]int
	for i := 0; i < engine.NumPlanes(l); i++ {
		rowBytes, rows := engine.PlaneExtent(l, i, o.width, o.height)
		sizes[i] = rowBytes * rows
		src.Planes[i] = make([]byte, sizes[i])
		src.Strides[i] = rowBytes
	}
	dst := make([]byte, pixconv.FrameSize(f, o.stride, o.height))

	frames := 0
	for {
		for i, n := range sizes {
			if n == 0 {
				continue
			}
			if _, err := io.ReadFull(r, src.Planes[i]); err != nil {
				if errors.Is(err, io.EOF) && i == 0 {
					return frames, nil
				}
				return frames, fmt.Errorf("frame %d: truncated input: %w", frames, err)
			}
		}
		if err := conv.Convert(src, dst, o.stride); err != nil {
			return frames, fmt.Errorf("frame %d: %w", frames, err)
		}
		if _, err := w.Write(dst); err != nil {
			return frames, err
		}
		frames++
	}
}
