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

// Package i2c implements a two-wire serial bus master bit-banged over two
// plain digital lines. There is no transport hardware underneath: every
// start condition, address bit, acknowledgment and stop condition is
// produced by driving the data and clock lines directly, with the timing
// derived from the configured speed class.
//
// The instrument hangs two devices off the one bus, an EEPROM and a
// display controller. The SharedBus type exposes the single Master to both
// through separate Accessor handles. Accessors perform no locking: the
// instrument is single-threaded by construction and the never-concurrent
// contract is the caller's to keep.
//
// Both lines must be wired open-drain with pull-up resistors. The master
// tolerates a peer stretching the clock during reads, up to the stretch
// timeout; a peer that stretches longer is treated as idle.
package i2c
