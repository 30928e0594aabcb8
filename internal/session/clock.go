package session

import "time"

// Clock yields the time in seconds since the previous tick. Never negative.
type Clock interface {
	Tick() float64
}

// FixedClock returns the same dt on every tick. Used for headless and reproducible runs.
type FixedClock struct {
	Dt float64
}

func (c FixedClock) Tick() float64 { return c.Dt }

// WallClock measures real elapsed time. The first tick returns 0.
type WallClock struct {
	now  func() time.Time
	last time.Time
	// MaxDt caps a single tick (e.g. after the process was suspended). Zero means no cap.
	MaxDt float64
}

// NewWallClock returns a clock backed by time.Now.
func NewWallClock(maxDt float64) *WallClock {
	return &WallClock{now: time.Now, MaxDt: maxDt}
}

func (c *WallClock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxDt > 0 && dt > c.MaxDt {
		return c.MaxDt
	}
	return dt
}
