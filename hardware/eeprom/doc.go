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

// Package eeprom drives 24-series serial EEPROM parts over the two-wire
// bus. The driver presents the part as a flat byte-addressable store with
// page-sized writes, and reports out-of-range access with a distinct
// error pattern so callers can treat it as a signal rather than a fault.
//
// The package also provides Memory, a pure in-memory store with the same
// surface, for tests that do not need the bus at all.
package eeprom
