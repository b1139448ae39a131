//go:build !ios && !android && (amd64 || arm64)

package pixconv

import (
	"sync/atomic"

	"github.com/obinnaokechukwu/pixconv/internal/scratch"
)

// Stats is a snapshot of converter counters.
type Stats struct {
	Conversions uint64 // successful Convert calls
	Failures    uint64 // Convert calls that returned an error
	Rebuilds    uint64 // engine contexts built or recommitted
	Direct      uint64 // packed outputs read straight from the source planes
	Scratch     uint64 // packed outputs that went through a scratch frame
	Buffers     scratch.Usage
}

type counters struct {
	conversions atomic.Uint64
	failures    atomic.Uint64
	rebuilds    atomic.Uint64
	direct      atomic.Uint64
	scratch     atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Conversions: c.conversions.Load(),
		Failures:    c.failures.Load(),
		Rebuilds:    c.rebuilds.Load(),
		Direct:      c.direct.Load(),
		Scratch:     c.scratch.Load(),
	}
}
