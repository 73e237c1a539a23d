// Package clock provides the frame clock driving the water animation.
package clock

import (
	"sync"
	"time"
)

// Clock reports seconds elapsed since Start. Readings never decrease.
type Clock struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	last  float64
}

// New creates a clock started now.
func New() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns seconds since the clock started. A reading earlier than
// the previous one returns the previous one.
func (c *Clock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.now().Sub(c.start).Seconds()
	if e < c.last {
		return c.last
	}
	c.last = e
	return e
}

// Delta returns seconds since the previous Elapsed call and advances the clock.
func (c *Clock) Delta() float64 {
	c.mu.Lock()
	prev := c.last
	c.mu.Unlock()
	return c.Elapsed() - prev
}

// Reset restarts the clock at zero.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.last = 0
}
