//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"errors"

	"github.com/pion/logging"

	"github.com/obinnaokechukwu/pixconv/engine"
	"github.com/obinnaokechukwu/pixconv/pixfmt"
)

// contextCache owns the engine context of one converter and rebuilds it when
// the requested conversion changes.
type contextCache struct {
	engine engine.Engine
	ctx    engine.Context
	stale  bool

	highQuality bool
	colorSpace  ColorSpace
	colorRange  ColorRange

	log   logging.LeveledLogger
	id    string
	stats *counters
}

// needsRebuild reports whether cur cannot serve req.
func needsRebuild(cur engine.Context, req engine.Params) bool {
	if cur == nil {
		return true
	}
	p := cur.Params()
	return p.Width != req.Width || p.Height != req.Height ||
		p.Src != req.Src || p.Dst != req.Dst || p.Flags != req.Flags
}

// request builds the engine parameters for a conversion. Full-range layouts
// are passed as their limited counterparts unless the target is RGB; the range
// is carried by the colorspace details instead.
func (c *contextCache) request(width, height int, src, dst pixfmt.Layout, flags engine.Flags) engine.Params {
	if !dst.Info().RGB {
		src = src.LimitedRange()
	}
	if c.highQuality {
		flags |= engine.FullChromaHInt | engine.AccurateRounding
	}
	flags |= engine.PrintInfo
	return engine.Params{Width: width, Height: height, Src: src, Dst: dst, Flags: flags}
}

// ensure returns a context converting src to dst at the given size.
func (c *contextCache) ensure(width, height int, src, dst pixfmt.Layout, flags engine.Flags) (engine.Context, error) {
	req := c.request(width, height, src, dst, flags)
	if !c.stale && !needsRebuild(c.ctx, req) {
		return c.ctx, nil
	}

	// The engine releases the previous context on every path it does not reuse.
	ctx, err := c.engine.GetCachedContext(c.ctx, req)
	c.ctx = nil
	if err != nil {
		return nil, err
	}
	if err := c.commitColorspace(ctx, req); err != nil {
		_ = ctx.Close()
		return nil, err
	}
	c.ctx = ctx
	c.stale = false
	c.stats.rebuilds.Add(1)

	if c.highQuality {
		c.log.Debugf("%s: using high quality conversion", c.id)
	}
	c.log.Debugf("%s: %s context %v", c.id, c.engine.Name(), req)
	return ctx, nil
}

// commitColorspace writes the matrix and ranges once per rebuild. Without a
// range tag the source range is whatever the engine detected from the layout
// it was given, so remapped YUVJ sources pass through uncompressed.
func (c *contextCache) commitColorspace(ctx engine.Context, req engine.Params) error {
	d, err := ctx.ColorspaceDetails()
	if errors.Is(err, engine.ErrUnsupported) {
		c.log.Warnf("%s: colorspace details unavailable, using engine defaults", c.id)
		return nil
	}
	if err != nil {
		return err
	}

	d.InvTable = engine.MatrixForFrame(c.engine, c.colorSpace, req.Width, req.Height)
	if c.colorRange != ColorRangeUnspecified {
		d.SrcFullRange = c.colorRange.Full()
		d.DstFullRange = c.colorRange.Full()
	}
	if !req.Dst.Info().RGB {
		d.DstFullRange = false
	}
	return ctx.SetColorspaceDetails(d)
}

// invalidate forces the next ensure to rebuild.
func (c *contextCache) invalidate() {
	c.stale = true
}

func (c *contextCache) close() error {
	if c.ctx == nil {
		return nil
	}
	err := c.ctx.Close()
	c.ctx = nil
	return err
}
