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

// Package sim emulates the peer side of the two-wire bus: an open-drain
// wire with any number of drivers, a virtual time source with schedulable
// actions, and an EEPROM device that decodes the wire protocol edge by
// edge.
//
// Everything in the package is synchronous. A driver changing a line
// resolves the wire immediately and notifies observers before the call
// returns, so a whole bus transaction - master bit timing, device state
// machine, clock stretching - runs deterministically inside a test without
// goroutines or real sleeps.
package sim
