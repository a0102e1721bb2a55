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

// Package meter accumulates the work the motor has done. Instantaneous
// power readings from the controller are integrated over the time
// between messages, and the running total is persisted through the wear
// log so it survives power cycles.
package meter

import (
	"github.com/ololoshka2871/elbike-power-meter/hardware/clock"
	"github.com/ololoshka2871/elbike-power-meter/logger"
	"github.com/ololoshka2871/elbike-power-meter/telemetry"
	"github.com/ololoshka2871/elbike-power-meter/wearlog"
)

// persist the running total every this many controller messages. often
// enough that an abrupt power loss costs little, rarely enough that the
// EEPROM wears slowly
const persistEvery = 10

// Meter integrates controller messages into a total energy figure. It is
// not safe for concurrent use.
type Meter struct {
	log *wearlog.Log[float32]

	totalWh float32

	prevTimestamp uint32
	hasPrev       bool

	// messages handled since the last persist
	updates uint32
}

// New seeds the meter from the last total the log recorded, if any.
func New(log *wearlog.Log[float32]) *Meter {
	m := &Meter{log: log}

	if v, ok := log.Last(); ok {
		m.totalWh = v
		logger.Logf(logger.Allow, "meter", "resuming from %f watt-hours", v)
	}

	return m
}

// TotalWh is the accumulated work in watt-hours.
func (m *Meter) TotalWh() float32 {
	return m.totalWh
}

// Update integrates one controller message. The time base is the
// message timestamps, which wrap; the delta is taken wrap-safe. Every
// few messages the total also goes to the log; a log write failure is
// returned but the in-memory total is unaffected by it.
func (m *Meter) Update(msg telemetry.Message) error {
	if m.hasPrev {
		dt := clock.Elapsed(msg.Timestamp, m.prevTimestamp)
		m.totalWh += float32(msg.Power) * (float32(dt) * 1e-9) / 3600
	}
	m.prevTimestamp = msg.Timestamp
	m.hasPrev = true

	m.updates++
	if m.updates%persistEvery == 0 {
		return m.Persist()
	}
	return nil
}

// Persist writes the running total to the log now, regardless of the
// message cadence.
func (m *Meter) Persist() error {
	return m.log.Append(m.totalWh)
}
