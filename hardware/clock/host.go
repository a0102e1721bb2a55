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

package clock

import (
	"time"
)

// Host is a TimeSource backed by the operating system clock. Used when the
// firmware core runs on a hosted board rather than a bare microcontroller.
//
// The counter truncates to uint32 so it wraps roughly every 4.3 seconds,
// the same order of rollover as the cycle counter on the real instrument.
// Consumers that follow the Elapsed() discipline never notice.
type Host struct {
	origin time.Time
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost() *Host {
	return &Host{origin: time.Now()}
}

// Nanoseconds implements the TimeSource interface.
func (h *Host) Nanoseconds() uint32 {
	return uint32(time.Since(h.origin).Nanoseconds())
}

// Delay implements the TimeSource interface.
//
// Sub-microsecond sleeps are at the mercy of the host scheduler. The only
// guarantee is "at least ns", which is all the bus timing requires; the
// bus simply runs slower than its nominal speed class on a busy host.
func (h *Host) Delay(ns uint32) {
	time.Sleep(time.Duration(ns) * time.Nanosecond)
}
