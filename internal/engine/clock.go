package engine

import "sync/atomic"

// Clock allocates boolean-operation ids.
//
// Every script-mode boolean operation is named with a strictly
// increasing counter from this clock (the Nth operation's output is
// bo<N>). Ids are never reused, and allocation order is call order.
//
// Thread-safety: atomic, although the owning model is single-threaded.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next boolean id and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last allocated id without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
