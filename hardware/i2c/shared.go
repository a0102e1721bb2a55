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

package i2c

// SharedBus exposes one physical bus to more than one logical client. Each
// client receives its own Accessor handle from the Accessor() function.
//
// There is deliberately no locking anywhere in this type. The instrument
// runs a single foreground task and accesses from different handles never
// overlap in time; a scheduler-less microcontroller pays for a mutex with
// nothing to buy. The contract is therefore documented rather than
// enforced: accessors derived from one SharedBus are safe only if used
// strictly sequentially.
type SharedBus struct {
	master *Master
}

// NewSharedBus is the preferred method of initialisation for the SharedBus
// type. The SharedBus takes ownership of the Master; clients should only
// touch the bus through Accessor handles from this point on.
func NewSharedBus(master *Master) *SharedBus {
	return &SharedBus{master: master}
}

// Accessor returns a new handle onto the shared bus.
func (b *SharedBus) Accessor() *Accessor {
	return &Accessor{bus: b}
}

// Accessor is one logical client's handle onto a SharedBus. The zero value
// is not useful; get an Accessor from SharedBus.Accessor().
//
// Each operation brackets a complete begin/end transaction, so from the
// caller's perspective the operation is atomic - provided the
// never-concurrent contract described in the SharedBus documentation is
// kept.
type Accessor struct {
	bus *SharedBus
}

// Write a series of bytes to the device at the given address, as one
// transaction.
func (a *Accessor) Write(address uint8, data []byte) error {
	m := a.bus.master

	// Begin and Write issue the stop condition themselves when the device
	// does not acknowledge
	if err := m.Begin(address, true); err != nil {
		return err
	}
	if err := m.Write(data); err != nil {
		return err
	}
	m.End()

	return nil
}

// WriteRead writes a series of bytes to the device at the given address and
// then reads len(in) bytes back from it.
//
// The write and the read are separate transactions on the wire: the write
// sets state in the device (typically an address register), the read is a
// read-mode transaction that collects from that state. If the write phase
// fails to acknowledge the read phase is skipped, but the stop condition
// has been issued and the bus is left idle.
//
// Every read byte except the last is acknowledged; the last is not, which
// tells the device to stop driving the data line.
func (a *Accessor) WriteRead(address uint8, out []byte, in []byte) error {
	if err := a.Write(address, out); err != nil {
		return err
	}

	m := a.bus.master

	if err := m.Begin(address, false); err != nil {
		return err
	}
	for i := range in {
		in[i] = m.Read(i < len(in)-1)
	}
	m.End()

	return nil
}
