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

// Wire is an open-drain bus line. The resolved level is high only while
// every attached Driver has released the line; any single driver pulling
// low wins, as on the real bus.
type Wire struct {
	label     string
	drivers   []*Driver
	observers []func()

	// cached resolved level. observers fire only when this changes.
	level bool
}

// NewWire creates a released (high) wire. The label appears in log output
// from devices attached to the wire.
func NewWire(label string) *Wire {
	return &Wire{label: label, level: true}
}

// Driver attaches a new driver to the wire. The driver starts released.
func (w *Wire) Driver() *Driver {
	d := &Driver{wire: w, high: true}
	w.drivers = append(w.drivers, d)
	return d
}

// Level is the resolved level of the wire.
func (w *Wire) Level() bool {
	return w.level
}

// OnChange registers a callback to run whenever the resolved level
// changes. Callbacks run synchronously from the driver that caused the
// change and may themselves drive wires.
func (w *Wire) OnChange(f func()) {
	w.observers = append(w.observers, f)
}

func (w *Wire) resolve() {
	nl := true
	for _, d := range w.drivers {
		if !d.high {
			nl = false
			break
		}
	}
	if nl == w.level {
		return
	}
	w.level = nl
	for _, f := range w.observers {
		f()
	}
}

// Driver is one participant's connection to a Wire. It satisfies the
// gpio.Line interface so a bus master can be wired directly to it.
type Driver struct {
	wire *Wire
	high bool
}

// SetHigh releases the driver's hold on the wire.
func (d *Driver) SetHigh() {
	d.high = true
	d.wire.resolve()
}

// SetLow pulls the wire low.
func (d *Driver) SetLow() {
	d.high = false
	d.wire.resolve()
}

// IsHigh reads the resolved level of the wire, not the driver's own
// output.
func (d *Driver) IsHigh() bool {
	return d.wire.Level()
}
