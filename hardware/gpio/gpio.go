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

// Package gpio defines the digital line capability required by the
// bit-banged bus in the i2c package.
//
// Lines are assumed to be wired open-drain with an external pull-up
// resistor. Driving a line low wins over every other device on the wire;
// "driving high" is really a release, letting the pull-up (or another
// device) decide the level. For this reason IsHigh() does not necessarily
// return what was last set: it reads the wire, not the driver.
package gpio

// Line is a single digital line driver.
type Line interface {
	// SetHigh releases the line, letting the pull-up raise it unless
	// another device on the wire is holding it low.
	SetHigh()

	// SetLow actively drives the line low.
	SetLow()

	// IsHigh reads the current resolved state of the wire.
	IsHigh() bool
}
