package timex

import (
	"sync/atomic"
	"time"
)

// Since returns now-then on a wrapping 32-bit millisecond counter.
// The result is correct across a single wrap as long as the real interval
// is shorter than 2^32 ms.
func Since(now, then uint32) uint32 { return now - then }

// Elapsed reports whether at least d ms separate then and now.
func Elapsed(now, then, d uint32) bool { return Since(now, then) >= d }

// MonoClock is a millisecond tick source backed by the runtime monotonic
// clock. Its counter starts at zero when the clock is created and wraps
// every 2^32 ms (~49.7 days).
type MonoClock struct {
	start time.Time
}

func NewMonoClock() *MonoClock { return &MonoClock{start: time.Now()} }

func (c *MonoClock) NowMs() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// ManualClock is a settable millisecond clock for simulations and tests.
type ManualClock struct {
	ms atomic.Uint32
}

// NewManualClock returns a clock reading start.
func NewManualClock(start uint32) *ManualClock {
	c := &ManualClock{}
	c.ms.Store(start)
	return c
}

func (c *ManualClock) NowMs() uint32 { return c.ms.Load() }

// Advance moves the clock forward by d ms (wrapping) and returns the new reading.
func (c *ManualClock) Advance(d uint32) uint32 { return c.ms.Add(d) }
