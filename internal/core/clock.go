package core

import "time"

// Clock is a monotonic time source. Deadlines in the game world are
// durations measured from the clock's origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock measures time since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the elapsed time since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Used for deterministic simulations.
type ManualClock struct {
	now time.Duration
}

// NewManualClock returns a manual clock positioned at start.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now += d
}

// Set positions the clock at t.
func (c *ManualClock) Set(t time.Duration) {
	c.now = t
}
