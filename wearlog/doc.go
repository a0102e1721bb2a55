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

// Package wearlog persists a single evolving value by appending
// sequence-numbered records around a page-addressable store, so that
// write wear spreads over the whole part instead of hammering one cell.
//
// Every record carries a 32-bit sequence number followed by the encoded
// value. An erased slot reads as the sentinel sequence (all ones), which
// is why the sentinel itself is never used as a live sequence number.
//
// The log does not store any index. On startup it rediscovers the write
// position by walking the records from the start of the store for as
// long as the sequence numbers run contiguously; the first break in the
// chain is where the next append belongs. The log never asks the store
// for its size: running off the end, signalled by the store, is what
// wraps the scan and the writes back to the start.
package wearlog
