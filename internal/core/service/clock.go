package service

import (
	"sync"
	"time"
)

// monotonicClock returns UTC wall-clock instants that never go backwards, even
// if the system clock is stepped. Creation timestamps come from here.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newMonotonicClock(now func() time.Time) *monotonicClock {
	if now == nil {
		now = time.Now
	}
	return &monotonicClock{now: now}
}

func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Round(0)
	if t.Before(c.last) {
		t = c.last
	}
	c.last = t
	return t
}
