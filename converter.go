//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pion/logging"

	"github.com/obinnaokechukwu/pixconv/engine"
	plog "github.com/obinnaokechukwu/pixconv/internal/logging"
	"github.com/obinnaokechukwu/pixconv/internal/scratch"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// Converter converts frames of one input layout into one output format.
//
// A Converter is not safe for concurrent use; Stats may be read from any
// goroutine.
type Converter struct {
	id     string
	log    logging.LeveledLogger
	input  pixfmt.Layout
	output pixfmt.OutputFormat
	cache  contextCache
	pool   *scratch.Pool
	stats  counters
	closed bool
}

// NewConverter creates a converter from in to out. Zero Config fields take
// their DefaultConfig values.
func NewConverter(in Layout, out OutputFormat, cfg Config) (*Converter, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if err := checkOutput(out); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var log logging.LeveledLogger
	if cfg.LoggerFactory != nil {
		log = cfg.LoggerFactory.NewLogger("pixconv")
	} else {
		log = plog.NewLogger("pixconv")
	}

	c := &Converter{
		id:     uuid.NewString(),
		log:    log,
		input:  in,
		output: out,
		pool:   scratch.NewPool(cfg.Allocator, cfg.MaxScratchBuffers),
	}
	c.cache = contextCache{
		engine:      cfg.Engine,
		highQuality: cfg.HighQuality,
		colorSpace:  cfg.ColorSpace,
		colorRange:  cfg.ColorRange,
		log:         log,
		id:          c.id,
		stats:       &c.stats,
	}
	c.log.Debugf("%s: %v -> %v using %s", c.id, in, out, cfg.Engine.Name())
	return c, nil
}

func checkInput(l Layout) error {
	if !l.Valid() || l.Info().RGB {
		return fmt.Errorf("%w: input layout %v", ErrUnsupportedFormat, l)
	}
	return nil
}

func checkOutput(f OutputFormat) error {
	if !f.Valid() {
		return fmt.Errorf("%w: output format %v", ErrUnsupportedFormat, f)
	}
	return nil
}

// ID returns the converter instance ID used in log lines.
func (c *Converter) ID() string { return c.id }

// InputLayout returns the current input layout.
func (c *Converter) InputLayout() Layout { return c.input }

// OutputFormat returns the current output format.
func (c *Converter) OutputFormat() OutputFormat { return c.output }

// SetInputLayout changes the layout of subsequent source frames.
func (c *Converter) SetInputLayout(l Layout) error {
	if err := checkInput(l); err != nil {
		return err
	}
	c.input = l
	return nil
}

// SetOutputFormat changes the format subsequent conversions produce.
func (c *Converter) SetOutputFormat(f OutputFormat) error {
	if err := checkOutput(f); err != nil {
		return err
	}
	c.output = f
	return nil
}

// SetColorProperties sets the colorspace and range of the source frames.
// They take effect on the next conversion, which rebuilds the engine context.
func (c *Converter) SetColorProperties(cs ColorSpace, r ColorRange) {
	if cs == 0 {
		cs = ColorSpaceUnspecified
	}
	c.cache.colorSpace = cs
	c.cache.colorRange = r
	c.cache.invalidate()
}

// Convert converts src into dst. dstStride is the destination stride in
// pixels; dst must hold at least FrameSize(OutputFormat(), dstStride,
// src.Height) bytes. On error the contents of dst are unspecified.
func (c *Converter) Convert(src Frame, dst []byte, dstStride int) (err error) {
	if c.closed {
		return ErrClosed
	}
	defer func() {
		if err != nil {
			c.stats.failures.Add(1)
			return
		}
		c.stats.conversions.Add(1)
	}()

	if err := src.validate(c.input); err != nil {
		return err
	}
	if dstStride < src.Width {
		return fmt.Errorf("%w: stride %d narrower than width %d", ErrInvalidFrame, dstStride, src.Width)
	}
	if need := pixfmt.FrameSize(c.output, dstStride, src.Height); len(dst) < need {
		return fmt.Errorf("%w: destination has %d bytes, %v needs %d", ErrInvalidFrame, len(dst), c.output, need)
	}

	switch c.output {
	case pixfmt.FormatYV12:
		return c.convertEngine(src, dst, dstStride, pixfmt.YUV420P, true)
	case pixfmt.FormatNV12:
		return c.convertEngine(src, dst, dstStride, pixfmt.NV12, false)
	case pixfmt.FormatRGB32:
		return c.convertEngine(src, dst, dstStride, pixfmt.BGRA, false)
	case pixfmt.FormatRGB24:
		return c.convertEngine(src, dst, dstStride, pixfmt.BGR24, false)
	case pixfmt.FormatYUY2:
		return c.convertTo422Packed(src, dst, dstStride, false)
	case pixfmt.FormatUYVY:
		return c.convertTo422Packed(src, dst, dstStride, true)
	case pixfmt.FormatAYUV:
		return c.convertToAYUV(src, dst, dstStride)
	case pixfmt.FormatP010, pixfmt.FormatP016:
		return c.convertToPX1X(src, dst, dstStride, 2)
	case pixfmt.FormatP210, pixfmt.FormatP216:
		return c.convertToPX1X(src, dst, dstStride, 1)
	case pixfmt.FormatY410:
		return c.convertToY410(src, dst, dstStride)
	case pixfmt.FormatY416:
		return c.convertToY416(src, dst, dstStride)
	default:
		return fmt.Errorf("%w: output format %v", ErrUnsupportedFormat, c.output)
	}
}

// scale runs the engine from the source frame into planes of layout l.
func (c *Converter) scale(src Frame, l pixfmt.Layout, flags engine.Flags, dst engine.Planes) error {
	ctx, err := c.cache.ensure(src.Width, src.Height, c.input, l, flags)
	if err != nil {
		return engineError("context", err)
	}
	if err := ctx.Scale(src.planes(), src.Height, dst); err != nil {
		return engineError("scale", err)
	}
	return nil
}

// acquireScratch gets a scratch frame of layout l. The caller must defer
// Release on the returned buffer.
func (c *Converter) acquireScratch(l pixfmt.Layout, lumaStride, height int) (*scratch.Buffer, engine.Planes, error) {
	size := scratch.Size(l, lumaStride, height)
	buf, err := c.pool.Get(size)
	if err != nil {
		return nil, engine.Planes{}, fmt.Errorf("pixconv: scratch %v: %w", l, err)
	}
	c.log.Tracef("%s: scratch %v stride %d, %d bytes", c.id, l, lumaStride, size)
	return buf, scratch.Carve(buf.Bytes(), l, lumaStride, height), nil
}

// Stats returns a snapshot of the converter counters.
func (c *Converter) Stats() Stats {
	s := c.stats.snapshot()
	s.Buffers = c.pool.Usage()
	return s
}

// Close releases the engine context. Further Convert calls return ErrClosed.
func (c *Converter) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	_ = c.pool.Close()
	return c.cache.close()
}
