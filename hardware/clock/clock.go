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

// Package clock defines the time capability required by the bit timing in
// the i2c package and by anything else that measures short intervals.
//
// The counter offered by a TimeSource is deliberately narrow. On the
// instrument it is derived from the CPU cycle counter which rolls over
// every few seconds; consumers must never compare two counter readings
// directly. The Elapsed() function performs the comparison safely.
package clock

// TimeSource is a monotonic, wrap-prone nanosecond counter with an
// accompanying busy-wait.
type TimeSource interface {
	// Nanoseconds returns the current value of the free-running counter.
	// The value wraps at the uint32 boundary.
	Nanoseconds() uint32

	// Delay busy-waits for at least ns nanoseconds.
	Delay(ns uint32)
}

// Elapsed returns the number of nanoseconds between a counter reading taken
// at the start of an interval and one taken now.
//
// The subtraction is performed in uint32 and therefore remains correct when
// the counter has wrapped between the two readings, provided the true
// interval is shorter than the counter period. Never test a reading against
// an absolute deadline; always compare Elapsed() against a budget.
func Elapsed(now uint32, start uint32) uint32 {
	return now - start
}
