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

package i2c

import (
	"fmt"

	"github.com/ololoshka2871/elbike-power-meter/curated"
	"github.com/ololoshka2871/elbike-power-meter/hardware/clock"
	"github.com/ololoshka2871/elbike-power-meter/hardware/gpio"
)

// NoAck is returned when a device fails to acknowledge its address or a
// data byte. It is a recoverable condition: the transaction has been
// terminated with a stop condition and the bus is idle; the caller decides
// whether to retry.
const NoAck = "i2c: no ack from device %#02x"

// Phase records how far through a transaction the master is. A transaction
// is ephemeral: it exists only between Begin() and End().
type Phase int

// List of valid Phase values.
const (
	PhaseIdle Phase = iota
	PhaseAddressing
	PhaseAckWait
	PhaseData
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAddressing:
		return "addressing"
	case PhaseAckWait:
		return "ack wait"
	case PhaseData:
		return "data"
	}
	return "unknown"
}

// Master drives the two bus lines. It is not safe for concurrent use; see
// the package documentation.
type Master struct {
	// the line carrying the data signal (SDA)
	sda gpio.Line

	// the line carrying the clock signal (SCL)
	scl gpio.Line

	// the time source the bit timing is derived from
	tick clock.TimeSource

	// the speed at which to drive the clock signal
	speed Speed

	// state of the current transaction. addr and reading are only
	// meaningful when phase is not PhaseIdle
	phase   Phase
	addr    uint8
	reading bool
}

// NewMaster is the preferred method of initialisation for the Master type.
// Both lines are released, leaving the bus in the idle state.
func NewMaster(sda gpio.Line, scl gpio.Line, tick clock.TimeSource) *Master {
	m := &Master{
		sda:   sda,
		scl:   scl,
		tick:  tick,
		speed: Standard,
	}

	// settle the lines into the released/idle state
	m.End()

	return m
}

// SetSpeed changes the clocking class. By default the bus is clocked at
// 100kHz.
func (m *Master) SetSpeed(speed Speed) *Master {
	m.speed = speed
	return m
}

// Phase the master is currently in. Useful for inspection; the protocol
// functions maintain it themselves.
func (m *Master) Phase() Phase {
	return m.phase
}

func (m *Master) String() string {
	if m.phase == PhaseIdle {
		return fmt.Sprintf("i2c: %s: idle", m.speed)
	}

	dir := "write"
	if m.reading {
		dir = "read"
	}
	return fmt.Sprintf("i2c: %s: %s %#02x (%s)", m.speed, dir, m.addr, m.phase)
}

// Begin a new transaction: issue the start condition, shift out the
// seven address bits MSB first followed by the direction bit, and sample
// the acknowledgment.
//
// The direction bit is 0 for a write transaction, per the standard
// protocol. (Historical variants of this code disagreed in their comments
// about the encoding; the convention here has been validated against the
// actual devices.)
//
// If the device does not acknowledge, a stop condition is issued before
// the NoAck error is returned.
func (m *Master) Begin(address uint8, write bool) error {
	m.addr = address
	m.reading = !write

	m.start()

	// address frame
	m.phase = PhaseAddressing
	for mask := uint8(0x40); mask != 0; mask >>= 1 {
		m.writeBit(address&mask != 0)
	}

	// direction bit. 0 = write
	m.writeBit(!write)

	// ack bit is active low
	m.phase = PhaseAckWait
	if m.readBit() {
		m.End()
		return curated.Errorf(NoAck, address)
	}

	m.phase = PhaseData
	return nil
}

// End the current transaction by issuing the stop condition. Releasing the
// data line while the clock is high is the stop signal; the order of the
// two releases matters.
func (m *Master) End() {
	m.clockRelease()
	m.dataRelease()
	m.phase = PhaseIdle
}

// Write a series of bytes to the addressed device, MSB first, sampling the
// acknowledgment after each byte. A negative acknowledgment terminates the
// transaction with a stop condition and returns a NoAck error; bytes
// already shifted out stay written.
//
// Begin() must have succeeded before calling Write().
func (m *Master) Write(data []byte) error {
	for _, b := range data {
		for mask := uint8(0x80); mask != 0; mask >>= 1 {
			m.writeBit(b&mask != 0)
		}

		m.phase = PhaseAckWait
		if m.readBit() {
			m.End()
			return curated.Errorf(NoAck, m.addr)
		}
		m.phase = PhaseData
	}

	return nil
}

// Read a single byte from the addressed device, MSB first. If ack is true
// an acknowledging bit is driven after the byte, telling the device that
// another byte will be read. The final byte of a read transaction should
// not be acknowledged.
//
// Begin() must have succeeded before calling Read().
func (m *Master) Read(ack bool) uint8 {
	var b uint8

	for mask := uint8(0x80); mask != 0; mask >>= 1 {
		if m.readBit() {
			b |= mask
		}
	}

	if ack {
		m.writeBit(false)
	}

	return b
}

// start condition: data low while the clock is high, then clock low.
func (m *Master) start() {
	m.dataLow()
	m.clockLow()
}

// writeBit drives the data line to the bit value, holds it for one timing
// unit, releases the clock for two units (the receiver's sampling window)
// and pulls the clock low again for one unit.
func (m *Master) writeBit(v bool) {
	if v {
		m.dataHigh()
	} else {
		m.dataLow()
	}
	m.tick.Delay(uint32(m.speed) * dataSetup)

	// pulse the clock
	m.clockRelease()
	m.tick.Delay(uint32(m.speed) * sampleWindow)

	m.clockLow()
	m.tick.Delay(uint32(m.speed) * clockRecovery)
}

// readBit releases the data line, pulses the clock and polls the lines
// until the bit timeout expires. A peer holding the clock low is tolerated
// for up to the stretch timeout. The bit is false if the data line is
// observed low at any point during the active window, true otherwise -
// "true" being what the pull-up gives on an idle line.
//
// All timer comparisons go through clock.Elapsed(); the counter is free
// running and wraps.
func (m *Master) readBit() bool {
	m.clockLow()
	m.dataRelease()

	// pulse the clock
	m.clockRelease()

	start := m.tick.Nanoseconds()
	res := true

	for {
		elapsed := clock.Elapsed(m.tick.Nanoseconds(), start)

		clockLine := m.scl.IsHigh()
		dataLine := m.sda.IsHigh()

		if !clockLine && elapsed < uint32(m.speed)*stretchTimeout {
			// the peer is stretching the clock
			continue
		} else if !dataLine {
			res = false
		}

		if elapsed > uint32(m.speed)*bitTimeout {
			break
		}

		m.tick.Delay(lineSettle)
	}

	// leave both lines driven low, ready for the next bit
	m.clockLow()
	m.dataLow()

	return res
}

// the line helpers pair every transition with a settle delay. dataRelease
// and dataHigh (similarly clockRelease and clockHigh) are electrically the
// same operation on an open-drain line; the two names keep the intent of
// the protocol functions readable.

func (m *Master) dataLow() {
	m.sda.SetLow()
	m.tick.Delay(lineSettle)
}

func (m *Master) dataHigh() {
	m.sda.SetHigh()
	m.tick.Delay(lineSettle)
}

func (m *Master) dataRelease() {
	m.sda.SetHigh()
	m.tick.Delay(lineSettle)
}

func (m *Master) clockLow() {
	m.scl.SetLow()
	m.tick.Delay(lineSettle)
}

func (m *Master) clockRelease() {
	m.scl.SetHigh()
	m.tick.Delay(lineSettle)
}
