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

package sim_test

import (
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c/sim"
	"github.com/ololoshka2871/elbike-power-meter/test"
)

func TestWireResolution(t *testing.T) {
	w := sim.NewWire("test")
	a := w.Driver()
	b := w.Driver()

	test.Equate(t, w.Level(), true)

	// any driver pulling low wins
	a.SetLow()
	test.Equate(t, w.Level(), false)
	b.SetLow()
	test.Equate(t, w.Level(), false)

	// the wire only rises once every driver has released it
	a.SetHigh()
	test.Equate(t, w.Level(), false)
	b.SetHigh()
	test.Equate(t, w.Level(), true)

	// drivers read the wire, not their own output
	a.SetLow()
	test.Equate(t, b.IsHigh(), false)
}

func TestWireObservers(t *testing.T) {
	w := sim.NewWire("test")
	d := w.Driver()

	ct := 0
	w.OnChange(func() { ct++ })

	d.SetLow()
	test.Equate(t, ct, 1)

	// a repeated transition to the same level is not a change
	d.SetLow()
	test.Equate(t, ct, 1)

	d.SetHigh()
	test.Equate(t, ct, 2)
}

func TestClockAdvance(t *testing.T) {
	c := sim.NewClock()
	c.SampleCost = 10

	a := c.Nanoseconds()
	b := c.Nanoseconds()
	test.Equate(t, b-a, 10)

	c.Delay(500)
	test.Equate(t, c.Nanoseconds()-b, 510)
}

func TestClockAfter(t *testing.T) {
	c := sim.NewClock()

	fired := false
	c.After(1000, func() { fired = true })

	c.Delay(500)
	test.Equate(t, fired, false)

	// the deadline is crossed inside this delay
	c.Delay(1000)
	test.Equate(t, fired, true)
}

func TestClockAfterOrdering(t *testing.T) {
	c := sim.NewClock()

	var order []int
	c.After(2000, func() { order = append(order, 2) })
	c.After(1000, func() { order = append(order, 1) })

	c.Delay(5000)
	test.Equate(t, len(order), 2)
	test.Equate(t, order[0], 1)
	test.Equate(t, order[1], 2)
}

func TestTrace(t *testing.T) {
	tr := sim.NewTrace()
	test.Equate(t, tr.Hi(), true)
	test.Equate(t, tr.Rising(), false)

	tr.Tick(false)
	test.Equate(t, tr.Falling(), true)
	test.Equate(t, tr.Lo(), true)

	tr.Tick(false)
	test.Equate(t, tr.Falling(), false)

	tr.Tick(true)
	test.Equate(t, tr.Rising(), true)
}
