// Package fake provides scripted, host-side peripherals for tests and the
// simulator. Everything runs on a virtual clock; nothing sleeps.
package fake

import "time"

// Epoch is the virtual clock's starting instant.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Clock is virtual time. It implements the hal Delay interface by
// advancing instead of blocking.
type Clock struct {
	now time.Time

	// Sleeps records every millisecond delay in call order.
	Sleeps []time.Duration
}

func NewClock() *Clock { return &Clock{now: Epoch} }

func (c *Clock) Now() time.Time { return c.now }

// Elapsed is the virtual time since Epoch.
func (c *Clock) Elapsed() time.Duration { return c.now.Sub(Epoch) }

func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *Clock) Millis(ms uint32) {
	d := time.Duration(ms) * time.Millisecond
	c.Sleeps = append(c.Sleeps, d)
	c.Advance(d)
}

func (c *Clock) Micros(us uint32) { c.Advance(time.Duration(us) * time.Microsecond) }
