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

package sim

// Trace records the last two levels seen on a wire so a device can
// distinguish an edge from a steady level.
type Trace struct {
	from bool
	to   bool
}

// NewTrace is the preferred method of initialisation for the Trace type.
// A new trace reads as a steadily high line.
func NewTrace() Trace {
	return Trace{from: true, to: true}
}

// Tick shifts the current level into history and records the new level.
func (tr *Trace) Tick(v bool) {
	tr.from = tr.to
	tr.to = v
}

// Hi is true if the line is currently high.
func (tr Trace) Hi() bool {
	return tr.to
}

// Lo is true if the line is currently low.
func (tr Trace) Lo() bool {
	return !tr.to
}

// Rising is true if the line has just transitioned from low to high.
func (tr Trace) Rising() bool {
	return !tr.from && tr.to
}

// Falling is true if the line has just transitioned from high to low.
func (tr Trace) Falling() bool {
	return tr.from && !tr.to
}
