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

import (
	"github.com/ololoshka2871/elbike-power-meter/logger"
)

// DeviceState describes what part of a bus transaction the device is
// currently decoding.
type DeviceState int

// List of valid DeviceState values.
const (
	DeviceStopped DeviceState = iota
	DeviceAddressing
	DeviceWordAddress
	DeviceWriting
	DeviceReading
)

func (s DeviceState) String() string {
	switch s {
	case DeviceStopped:
		return "stopped"
	case DeviceAddressing:
		return "addressing"
	case DeviceWordAddress:
		return "word address"
	case DeviceWriting:
		return "writing"
	case DeviceReading:
		return "reading"
	}
	return "unknown"
}

// EEPROM emulates a 24-series serial EEPROM hanging off a pair of bus
// wires. It decodes the protocol edge by edge: start and stop conditions,
// the address frame, the word address, and data bytes in either
// direction, acknowledging each received byte the way the real part does.
//
// Writes wrap inside the current page. The read address pointer rolls
// over the whole array. Both behaviours match the 24-series datasheets.
type EEPROM struct {
	sdaWire *Wire
	sclWire *Wire
	sda     *Driver
	scl     *Driver
	tick    *Clock

	sdaTrace Trace
	sclTrace Trace

	busAddress uint8
	mem        []uint8
	pageSize   int
	addrBytes  int

	state DeviceState

	// incoming bits accumulate here, msb first
	bits   uint8
	bitsCt int

	// memory address register. writes advance it within the current
	// page, reads advance it across the whole array
	mar        int
	wordAddrCt int

	// acknowledge handling for received bytes. ackPending is set when a
	// byte has been accepted and the data line must be pulled low on the
	// next falling clock edge. ackDriven marks the line as held until
	// the falling edge after the master has sampled it
	ackPending bool
	ackDriven  bool

	// outgoing byte during a read
	sendBits uint8
	sendCt   int

	// after eight transmitted bits the device releases the data line and
	// waits for the master's acknowledge on the next rising edge
	masterAckWait bool
	continueRead  bool

	// StretchNs holds the clock low for this long before each
	// transmitted byte. Zero disables stretching.
	StretchNs uint32
}

// NewEEPROM attaches a new device to the given wires. capacity must be a
// multiple of pageSize. tick is used only for clock stretching and may be
// nil when StretchNs is never set.
func NewEEPROM(sdaWire, sclWire *Wire, tick *Clock, busAddress uint8, capacity, pageSize, addrBytes int) *EEPROM {
	ee := &EEPROM{
		sdaWire:    sdaWire,
		sclWire:    sclWire,
		sda:        sdaWire.Driver(),
		scl:        sclWire.Driver(),
		tick:       tick,
		sdaTrace:   NewTrace(),
		sclTrace:   NewTrace(),
		busAddress: busAddress,
		mem:        make([]uint8, capacity),
		pageSize:   pageSize,
		addrBytes:  addrBytes,
		state:      DeviceStopped,
	}

	// erased cells read back as all ones
	for i := range ee.mem {
		ee.mem[i] = 0xff
	}

	sdaWire.OnChange(ee.step)
	sclWire.OnChange(ee.step)

	return ee
}

// Peek reads a memory cell directly, without going through the bus.
func (ee *EEPROM) Peek(address int) uint8 {
	return ee.mem[address%len(ee.mem)]
}

// Poke writes a memory cell directly, without going through the bus.
func (ee *EEPROM) Poke(address int, data uint8) {
	ee.mem[address%len(ee.mem)] = data
}

// Fill sets every memory cell to the same value.
func (ee *EEPROM) Fill(data uint8) {
	for i := range ee.mem {
		ee.mem[i] = data
	}
}

// State is the current protocol state of the device.
func (ee *EEPROM) State() DeviceState {
	return ee.state
}

// step runs on every change of either wire. Only one wire can have
// changed per invocation, so an edge on one trace implies a steady level
// on the other.
func (ee *EEPROM) step() {
	ee.sdaTrace.Tick(ee.sdaWire.Level())
	ee.sclTrace.Tick(ee.sclWire.Level())

	// start and stop conditions are data edges while the clock is high
	if ee.sclTrace.Hi() && ee.sdaTrace.Falling() {
		ee.state = DeviceAddressing
		ee.bits = 0
		ee.bitsCt = 0
		ee.ackPending = false
		ee.masterAckWait = false
		ee.continueRead = false
		logger.Log(logger.Allow, "sim", "message started")
		return
	}
	if ee.sclTrace.Hi() && ee.sdaTrace.Rising() {
		if ee.state != DeviceStopped {
			logger.Log(logger.Allow, "sim", "message stopped")
		}
		ee.state = DeviceStopped
		ee.ackPending = false
		ee.ackDriven = false
		ee.masterAckWait = false
		ee.sda.SetHigh()
		return
	}

	if ee.state == DeviceStopped {
		return
	}

	if ee.sclTrace.Rising() {
		ee.clockRise()
	} else if ee.sclTrace.Falling() {
		ee.clockFall()
	}
}

func (ee *EEPROM) clockRise() {
	// the master is sampling our acknowledge. nothing to decode
	if ee.ackDriven {
		return
	}

	// the master is acknowledging (or not) a byte we transmitted
	if ee.masterAckWait {
		ee.continueRead = ee.sdaTrace.Lo()
		return
	}

	if ee.state == DeviceReading {
		// the master is sampling a data bit we are driving
		return
	}

	ee.recvBit(ee.sdaTrace.Hi())
}

func (ee *EEPROM) clockFall() {
	if ee.ackPending {
		ee.ackPending = false
		ee.ackDriven = true
		ee.sda.SetLow()
		return
	}

	if ee.ackDriven {
		ee.ackDriven = false
		if ee.state == DeviceReading {
			ee.beginByte()
			return
		}
		ee.sda.SetHigh()
		return
	}

	if ee.state == DeviceReading {
		if ee.masterAckWait {
			ee.masterAckWait = false
			if ee.continueRead {
				ee.beginByte()
			}
			return
		}

		if ee.sendCt < 8 {
			ee.driveBit()
			return
		}

		// byte transmitted. release the line and wait for the
		// master's verdict
		ee.sda.SetHigh()
		ee.mar = (ee.mar + 1) % len(ee.mem)
		ee.masterAckWait = true
	}
}

// beginByte loads the next byte to transmit and puts its first bit on the
// line, stretching the clock first if configured.
func (ee *EEPROM) beginByte() {
	ee.sendBits = ee.mem[ee.mar]
	ee.sendCt = 0
	logger.Logf(logger.Allow, "sim", "reading byte %#02x from %#04x", ee.sendBits, ee.mar)

	if ee.StretchNs > 0 && ee.tick != nil {
		ee.scl.SetLow()
		ee.tick.After(ee.StretchNs, ee.scl.SetHigh)
	}

	ee.driveBit()
}

func (ee *EEPROM) driveBit() {
	if ee.sendBits&(0x80>>ee.sendCt) != 0 {
		ee.sda.SetHigh()
	} else {
		ee.sda.SetLow()
	}
	ee.sendCt++
}

func (ee *EEPROM) recvBit(v bool) {
	ee.bits <<= 1
	if v {
		ee.bits |= 0x01
	}
	ee.bitsCt++

	if ee.bitsCt < 8 {
		return
	}

	b := ee.bits
	ee.bits = 0
	ee.bitsCt = 0

	switch ee.state {
	case DeviceAddressing:
		if b>>1 != ee.busAddress {
			// not for us. stay silent until the next start
			ee.state = DeviceStopped
			return
		}
		ee.ackPending = true
		if b&0x01 == 0x01 {
			ee.state = DeviceReading
		} else {
			ee.state = DeviceWordAddress
			ee.wordAddrCt = 0
		}

	case DeviceWordAddress:
		if ee.wordAddrCt == 0 {
			ee.mar = 0
		}
		ee.mar = (ee.mar<<8 | int(b)) % len(ee.mem)
		ee.wordAddrCt++
		ee.ackPending = true
		if ee.wordAddrCt == ee.addrBytes {
			ee.state = DeviceWriting
		}

	case DeviceWriting:
		logger.Logf(logger.Allow, "sim", "writing byte %#02x to %#04x", b, ee.mar)
		ee.mem[ee.mar] = b

		// writes wrap within the current page
		page := ee.mar &^ (ee.pageSize - 1)
		ee.mar = page | ((ee.mar + 1) & (ee.pageSize - 1))

		ee.ackPending = true
	}
}
