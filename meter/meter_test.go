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

package meter_test

import (
	"math"
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/hardware/eeprom"
	"github.com/ololoshka2871/elbike-power-meter/meter"
	"github.com/ololoshka2871/elbike-power-meter/telemetry"
	"github.com/ololoshka2871/elbike-power-meter/test"
	"github.com/ololoshka2871/elbike-power-meter/wearlog"
)

func newMeter(t *testing.T, store *eeprom.Memory) *meter.Meter {
	t.Helper()
	l, err := wearlog.New[float32](store, wearlog.Float32Codec{})
	test.ExpectedSuccess(t, err)
	return meter.New(l)
}

func approx(t *testing.T, got float32, want float64) {
	t.Helper()
	if math.Abs(float64(got)-want) > 1e-4 {
		t.Errorf("got %f, wanted about %f", got, want)
	}
}

func TestIntegration(t *testing.T) {
	m := newMeter(t, eeprom.NewMemory(256, 8))

	// the first message only establishes the time base
	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 100, Timestamp: 0}))
	test.Equate(t, m.TotalWh(), float32(0))

	// 100 watts over 3.6 virtual seconds is 0.1 watt-hours
	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 100, Timestamp: 3_600_000_000}))
	approx(t, m.TotalWh(), 0.1)
}

func TestTimestampWraparound(t *testing.T) {
	m := newMeter(t, eeprom.NewMemory(256, 8))

	// the counter wraps between the two messages. the delta is still
	// one virtual second
	start := ^uint32(0) - 500_000_000
	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 3600, Timestamp: start}))
	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 3600, Timestamp: start + 1_000_000_000}))

	approx(t, m.TotalWh(), 1.0)
}

func TestPersistCadence(t *testing.T) {
	store := eeprom.NewMemory(256, 8)
	m := newMeter(t, store)

	for i := 0; i < 9; i++ {
		test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 13, Timestamp: uint32(i) * 1_000_000}))
	}

	// nothing persisted yet: a fresh meter over the same store starts
	// from zero
	test.Equate(t, newMeter(t, store).TotalWh(), float32(0))

	// the tenth message writes the running total through
	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 13, Timestamp: 10_000_000}))

	m2 := newMeter(t, store)
	test.Equate(t, m2.TotalWh(), m.TotalWh())
}

func TestPersistOnDemand(t *testing.T) {
	store := eeprom.NewMemory(256, 8)
	m := newMeter(t, store)

	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 650, Timestamp: 0}))
	test.ExpectedSuccess(t, m.Update(telemetry.Message{Power: 650, Timestamp: 2_000_000_000}))
	test.ExpectedSuccess(t, m.Persist())

	m2 := newMeter(t, store)
	test.Equate(t, m2.TotalWh(), m.TotalWh())
}
