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

package telemetry

import (
	"encoding/binary"

	"github.com/ololoshka2871/elbike-power-meter/hardware/clock"
)

// FrameSize is the length of one controller frame on the wire.
const FrameSize = 12

// Parser accumulates serial bytes into frames. It is not safe for
// concurrent use; see Guard.
type Parser struct {
	tick clock.TimeSource

	raw [FrameSize]uint8
	wp  int

	// reading of the time source when the final byte of the current
	// frame arrived
	endTimestamp uint32
}

// NewParser is the preferred method of initialisation for the Parser
// type.
func NewParser(tick clock.TimeSource) *Parser {
	return &Parser{tick: tick}
}

// Feed one byte into the parser. Bytes that cannot occupy the next frame
// position are dropped.
func (p *Parser) Feed(data uint8) {
	var ok bool

	switch p.wp {
	case 0:
		ok = data == 0x41
	case 2:
		ok = data == 0x30
	case 10:
		ok = data == 0
	case 11:
		ok = data == 0
		if ok {
			p.endTimestamp = p.tick.Nanoseconds()
		}
	default:
		ok = p.wp < FrameSize
	}

	if ok {
		p.raw[p.wp] = data
		p.wp++
	}
}

// Pending is the number of bytes accumulated towards the current frame.
func (p *Parser) Pending() int {
	return p.wp
}

// Message returns the decoded frame, if a complete one has been fed, and
// resets the parser for the next frame.
func (p *Parser) Message() (Message, bool) {
	if p.wp < FrameSize {
		return Message{}, false
	}
	p.wp = 0

	return Message{
		Battery:             decodeBatteryLevel(p.raw[1]),
		WheelRotationPeriod: binary.BigEndian.Uint16(p.raw[3:5]),
		Error:               decodeErrorCode(p.raw[5]),
		CRC:                 p.raw[6],
		Mode:                decodeMovingMode(p.raw[7]),
		Power:               uint32(p.raw[8]) * wattsPerUnit,
		Temperature:         int8(p.raw[9]),
		Timestamp:           p.endTimestamp,
	}, true
}

// EncodeFrame builds the wire form of a message. The inverse of the
// parser, for synthesising controller traffic on the test bench.
// Power is quantised to the controller's 13 watt units.
func EncodeFrame(m Message) [FrameSize]uint8 {
	var f [FrameSize]uint8

	f[0] = 0x41
	f[1] = uint8(m.Battery)
	f[2] = 0x30
	binary.BigEndian.PutUint16(f[3:5], m.WheelRotationPeriod)
	f[5] = uint8(m.Error)
	f[6] = m.CRC
	f[7] = uint8(m.Mode)
	f[8] = uint8(m.Power / wattsPerUnit)
	f[9] = uint8(m.Temperature)

	return f
}
