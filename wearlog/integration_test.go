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

package wearlog_test

import (
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/hardware/eeprom"
	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c"
	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c/sim"
	"github.com/ololoshka2871/elbike-power-meter/test"
	"github.com/ololoshka2871/elbike-power-meter/wearlog"
)

// the log driving a simulated part through the whole stack: record
// encoding, page writes, the bus protocol bit by bit, and the device
// state machine on the far side.
func TestOverBus(t *testing.T) {
	sda := sim.NewWire("sda")
	scl := sim.NewWire("scl")
	tick := sim.NewClock()

	sim.NewEEPROM(sda, scl, tick, 0x50, 256, 8, 1)

	master := i2c.NewMaster(sda.Driver(), scl.Driver(), tick).SetSpeed(i2c.Fast)
	bus := i2c.NewSharedBus(master)
	store := eeprom.New24C02(bus.Accessor(), 0x50)

	l, err := wearlog.New[float32](store, wearlog.Float32Codec{})
	test.ExpectedSuccess(t, err)
	test.Equate(t, l.WriteOffset(), 0)

	for i := 0; i < 40; i++ {
		test.ExpectedSuccess(t, l.Append(float32(i)*0.5))
	}

	test.Equate(t, l.WriteOffset(), 8)
	test.Equate(t, l.Sequence(), 40)

	// power cycle: a fresh stack over the same device memory
	master = i2c.NewMaster(sda.Driver(), scl.Driver(), tick).SetSpeed(i2c.Fast)
	bus = i2c.NewSharedBus(master)
	store = eeprom.New24C02(bus.Accessor(), 0x50)

	l, err = wearlog.New[float32](store, wearlog.Float32Codec{})
	test.ExpectedSuccess(t, err)

	test.Equate(t, l.WriteOffset(), 8)
	test.Equate(t, l.Sequence(), 40)

	v, ok := l.Last()
	test.Equate(t, ok, true)
	test.Equate(t, v, float32(19.5))
}
