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

package gpio

import (
	periphgpio "periph.io/x/periph/conn/gpio"
)

// PeriphLine adapts a periph.io pin to the Line interface, for hosted
// boards (Raspberry Pi and the like) where the GPIO header is reached
// through the periph host drivers.
//
// Open-drain is emulated in the conventional way for pins that have no
// native open-drain mode: driving low configures the pin as a low output;
// releasing configures the pin as an input with the pull-up enabled.
type PeriphLine struct {
	pin periphgpio.PinIO
}

// NewPeriphLine is the preferred method of initialisation for the
// PeriphLine type. The line starts off released.
func NewPeriphLine(pin periphgpio.PinIO) *PeriphLine {
	l := &PeriphLine{pin: pin}
	l.SetHigh()
	return l
}

// SetHigh implements the Line interface.
func (l *PeriphLine) SetHigh() {
	// errors from the pin driver indicate a host configuration problem.
	// there is nothing the bit timing code can do about them so they are
	// not propagated. a line that cannot be driven shows up as a NoAck at
	// the protocol level
	_ = l.pin.In(periphgpio.PullUp, periphgpio.NoEdge)
}

// SetLow implements the Line interface.
func (l *PeriphLine) SetLow() {
	_ = l.pin.Out(periphgpio.Low)
}

// IsHigh implements the Line interface.
func (l *PeriphLine) IsHigh() bool {
	return l.pin.Read() == periphgpio.High
}
