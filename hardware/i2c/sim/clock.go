// This file is part of PowerMeter.
//
// PowerMeter is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PowerMeter is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PowerMeter.  If not, see <https://www.gnu.org/licenses/>.

package sim

// Clock is a virtual time source. Time advances only when the code under
// test delays or samples the clock, so tests run instantly and
// deterministically regardless of the configured bus speed.
//
// Reading the clock is not free. Every Nanoseconds() call advances time
// by SampleCost, mirroring the real cost of a timer read and, more
// importantly, guaranteeing that a loop polling the clock always makes
// progress.
type Clock struct {
	now uint64

	// virtual cost of one Nanoseconds() call
	SampleCost uint32

	events []clockEvent
}

type clockEvent struct {
	due uint64
	fn  func()
}

// NewClock is the preferred method of initialisation for the Clock type.
func NewClock() *Clock {
	return &Clock{SampleCost: 25}
}

// Nanoseconds implements the clock.TimeSource interface. The full 64-bit
// counter is deliberately truncated so that wraparound of the 32-bit
// value is exercised the same way it is on the target hardware.
func (c *Clock) Nanoseconds() uint32 {
	c.advance(uint64(c.SampleCost))
	return uint32(c.now)
}

// Delay implements the clock.TimeSource interface.
func (c *Clock) Delay(ns uint32) {
	c.advance(uint64(ns))
}

// After schedules fn to run once the clock has advanced ns nanoseconds
// from now. fn runs synchronously from inside the Delay or Nanoseconds
// call that crosses the deadline.
func (c *Clock) After(ns uint32, fn func()) {
	c.events = append(c.events, clockEvent{due: c.now + uint64(ns), fn: fn})
}

// Now is the current virtual time without the sampling cost. Useful in
// tests that want to measure elapsed time precisely.
func (c *Clock) Now() uint64 {
	return c.now
}

func (c *Clock) advance(d uint64) {
	target := c.now + d

	// run due events in order. an event may schedule further events
	// inside the same advance window
	for {
		best := -1
		for i, e := range c.events {
			if e.due <= target && (best == -1 || e.due < c.events[best].due) {
				best = i
			}
		}
		if best == -1 {
			break
		}

		e := c.events[best]
		c.events = append(c.events[:best], c.events[best+1:]...)

		if e.due > c.now {
			c.now = e.due
		}
		e.fn()
	}

	c.now = target
}
