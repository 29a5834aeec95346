package testdoubles

import (
	"sync"
	"time"
)

// FixedClock is a settable clock for tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Set moves the clock to now.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// AdvanceDays moves the clock forward by whole days.
func (c *FixedClock) AdvanceDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.AddDate(0, 0, days)
}
