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

// Package telemetry decodes the 12 byte status frames the motor
// controller streams over its serial line.
//
// The frame format, reverse engineered from the controller:
//
//	byte  0      always 0x41
//	byte  1      battery gauge state
//	byte  2      always 0x30
//	bytes 3-4    wheel rotation period, big endian milliseconds
//	byte  5      error/info code
//	byte  6      checksum (recorded, not verified)
//	byte  7      moving mode bits
//	byte  8      power, in units of 13 watts
//	byte  9      motor temperature, signed celsius
//	bytes 10-11  always zero
//
// Parsing is byte at a time. A byte that does not fit the position it
// would occupy is dropped and the parser waits at the same position, so
// the parser slides back into alignment on a noisy line rather than
// failing.
package telemetry
