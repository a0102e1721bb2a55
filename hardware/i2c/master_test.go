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

package i2c_test

import (
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/curated"
	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c"
	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c/sim"
	"github.com/ololoshka2871/elbike-power-meter/test"
)

type rig struct {
	sda    *sim.Wire
	scl    *sim.Wire
	tick   *sim.Clock
	master *i2c.Master
}

func newRig() *rig {
	r := &rig{
		sda:  sim.NewWire("sda"),
		scl:  sim.NewWire("scl"),
		tick: sim.NewClock(),
	}
	r.master = i2c.NewMaster(r.sda.Driver(), r.scl.Driver(), r.tick).SetSpeed(i2c.Fast)
	return r
}

func TestNoDevice(t *testing.T) {
	r := newRig()

	err := r.master.Begin(0x50, true)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, i2c.NoAck) {
		t.Errorf("unexpected error: %v", err)
	}

	// the failed transaction must leave the bus idle
	test.Equate(t, r.master.Phase().String(), "idle")
	test.Equate(t, r.sda.Level(), true)
	test.Equate(t, r.scl.Level(), true)
}

func TestAddressFrame(t *testing.T) {
	r := newRig()
	sim.NewEEPROM(r.sda, r.scl, r.tick, 0x50, 256, 8, 1)

	test.ExpectedSuccess(t, r.master.Begin(0x50, true))
	test.Equate(t, r.master.Phase().String(), "data")
	r.master.End()
	test.Equate(t, r.master.Phase().String(), "idle")

	// nobody is listening at the neighbouring address
	test.ExpectedFailure(t, r.master.Begin(0x51, true))
}

func TestWriteThenRead(t *testing.T) {
	r := newRig()
	ee := sim.NewEEPROM(r.sda, r.scl, r.tick, 0x50, 256, 8, 1)

	// write three bytes starting at word address 0x10
	test.ExpectedSuccess(t, r.master.Begin(0x50, true))
	test.ExpectedSuccess(t, r.master.Write([]byte{0x10, 0xde, 0xad, 0xbe}))
	r.master.End()

	test.Equate(t, ee.Peek(0x10), 0xde)
	test.Equate(t, ee.Peek(0x11), 0xad)
	test.Equate(t, ee.Peek(0x12), 0xbe)

	// reposition and read the bytes back, acknowledging all but the last
	test.ExpectedSuccess(t, r.master.Begin(0x50, true))
	test.ExpectedSuccess(t, r.master.Write([]byte{0x10}))
	r.master.End()

	test.ExpectedSuccess(t, r.master.Begin(0x50, false))
	test.Equate(t, r.master.Read(true), 0xde)
	test.Equate(t, r.master.Read(true), 0xad)
	test.Equate(t, r.master.Read(false), 0xbe)
	r.master.End()
}

func TestCurrentAddressRead(t *testing.T) {
	r := newRig()
	ee := sim.NewEEPROM(r.sda, r.scl, r.tick, 0x50, 256, 8, 1)
	ee.Poke(0x20, 0x55)
	ee.Poke(0x21, 0xaa)

	// a write transaction carrying only the word address moves the
	// device's address pointer without changing memory
	test.ExpectedSuccess(t, r.master.Begin(0x50, true))
	test.ExpectedSuccess(t, r.master.Write([]byte{0x20}))
	r.master.End()

	test.ExpectedSuccess(t, r.master.Begin(0x50, false))
	test.Equate(t, r.master.Read(true), 0x55)
	test.Equate(t, r.master.Read(false), 0xaa)
	r.master.End()

	test.Equate(t, ee.Peek(0x20), 0x55)
}

func TestClockStretch(t *testing.T) {
	r := newRig()
	ee := sim.NewEEPROM(r.sda, r.scl, r.tick, 0x50, 256, 8, 1)
	ee.Poke(0x00, 0x3c)
	ee.Poke(0x01, 0xc3)

	// hold the clock for 8us before every transmitted byte. well inside
	// the 20us stretch tolerance at fast speed
	ee.StretchNs = 8000

	test.ExpectedSuccess(t, r.master.Begin(0x50, true))
	test.ExpectedSuccess(t, r.master.Write([]byte{0x00}))
	r.master.End()

	test.ExpectedSuccess(t, r.master.Begin(0x50, false))
	test.Equate(t, r.master.Read(true), 0x3c)
	test.Equate(t, r.master.Read(false), 0xc3)
	r.master.End()
}

func TestClockStretchBeyondTimeout(t *testing.T) {
	r := newRig()
	ee := sim.NewEEPROM(r.sda, r.scl, r.tick, 0x50, 256, 8, 1)

	// stretch past the master's tolerance. the master must give up on
	// the bit rather than spin forever, and an abandoned read of erased
	// memory comes back as the idle-line default
	ee.StretchNs = 30000

	test.ExpectedSuccess(t, r.master.Begin(0x50, true))
	test.ExpectedSuccess(t, r.master.Write([]byte{0x00}))
	r.master.End()

	test.ExpectedSuccess(t, r.master.Begin(0x50, false))
	test.Equate(t, r.master.Read(false), 0xff)
	r.master.End()
	test.Equate(t, r.master.Phase().String(), "idle")
}

func TestSharedBus(t *testing.T) {
	r := newRig()
	ee := sim.NewEEPROM(r.sda, r.scl, r.tick, 0x50, 256, 8, 1)
	sim.NewEEPROM(r.sda, r.scl, r.tick, 0x3d, 256, 8, 1)

	bus := i2c.NewSharedBus(r.master)
	a := bus.Accessor()
	b := bus.Accessor()

	// the two accessors address different devices over the same wires
	test.ExpectedSuccess(t, a.Write(0x50, []byte{0x00, 0x11}))
	test.ExpectedSuccess(t, b.Write(0x3d, []byte{0x00, 0x22}))
	test.Equate(t, ee.Peek(0x00), 0x11)

	// write the word address then read back in a single call
	in := make([]byte, 1)
	test.ExpectedSuccess(t, a.WriteRead(0x50, []byte{0x00}, in))
	test.Equate(t, in[0], 0x11)

	// a missing device reports through either accessor
	test.ExpectedFailure(t, a.Write(0x23, []byte{0x00}))
}
