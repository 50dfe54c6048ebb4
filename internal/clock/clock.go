// Package clock abstracts time so that plan execution timings are testable.
package clock

import "time"

// Clock reports the current time to the executor.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the wall time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// FakeClock is a manually driven Clock for tests. Each call to Now advances
// the clock by Step, so consecutive backend calls get distinct timestamps.
type FakeClock struct {
	current time.Time
	Step    time.Duration
}

// NewFakeClock creates a FakeClock starting at t that never advances on its own.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the fake time and then advances it by Step.
func (c *FakeClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.Step)
	return now
}

// Since returns the distance between t and the fake time.
func (c *FakeClock) Since(t time.Time) time.Duration {
	return c.current.Sub(t)
}

// Set moves the fake time to t.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the fake time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
