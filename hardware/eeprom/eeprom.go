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

package eeprom

import (
	"github.com/ololoshka2871/elbike-power-meter/curated"
)

// Error patterns returned by the driver. InvalidAddress is deliberately
// distinct from the others: it is the driver's way of saying the access
// ran off the end of the part, which callers may treat as an expected
// signal rather than a fault.
const (
	InvalidAddress = "eeprom: invalid address %#06x"
	TooMuchData    = "eeprom: %d bytes will not fit in a %d byte page"
	PageOverflow   = "eeprom: write of %d bytes at %#06x crosses a page boundary"
)

// Bus is the transaction surface the driver requires. *i2c.Accessor
// satisfies the interface.
type Bus interface {
	Write(address uint8, data []byte) error
	WriteRead(address uint8, out []byte, in []byte) error
}

// EEPROM is a driver for one 24-series part on the bus.
type EEPROM struct {
	bus        Bus
	busAddress uint8

	capacity  int
	pageSize  int
	addrBytes int
}

// New is the preferred method of initialisation for the EEPROM type.
// capacity must be a multiple of pageSize; addrBytes is the number of
// word-address bytes the part expects, one for small parts and two from
// the 24C32 up.
func New(bus Bus, busAddress uint8, capacity int, pageSize int, addrBytes int) *EEPROM {
	return &EEPROM{
		bus:        bus,
		busAddress: busAddress,
		capacity:   capacity,
		pageSize:   pageSize,
		addrBytes:  addrBytes,
	}
}

// New24C02 creates a driver for the 256 byte part with 8 byte pages.
func New24C02(bus Bus, busAddress uint8) *EEPROM {
	return New(bus, busAddress, 256, 8, 1)
}

// New24C256 creates a driver for the 32KiB part with 64 byte pages.
func New24C256(bus Bus, busAddress uint8) *EEPROM {
	return New(bus, busAddress, 32768, 64, 2)
}

// Size of the part in bytes.
func (e *EEPROM) Size() int {
	return e.capacity
}

// PageSize of the part in bytes.
func (e *EEPROM) PageSize() int {
	return e.pageSize
}

// wordAddress encodes offset as the part's word address, high byte first.
func (e *EEPROM) wordAddress(offset int) []byte {
	if e.addrBytes == 1 {
		return []byte{uint8(offset)}
	}
	return []byte{uint8(offset >> 8), uint8(offset)}
}

// Read fills data from the part starting at offset. A read that runs past
// the end of the part fails with InvalidAddress before touching the bus.
func (e *EEPROM) Read(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > e.capacity {
		return curated.Errorf(InvalidAddress, offset)
	}
	if len(data) == 0 {
		return nil
	}

	return e.bus.WriteRead(e.busAddress, e.wordAddress(offset), data)
}

// PageWrite writes data to the part starting at offset. The write must
// fit inside a single page: the part itself would otherwise wrap around
// within the page and silently corrupt it.
func (e *EEPROM) PageWrite(offset int, data []byte) error {
	if len(data) > e.pageSize {
		return curated.Errorf(TooMuchData, len(data), e.pageSize)
	}
	if offset < 0 || offset+len(data) > e.capacity {
		return curated.Errorf(InvalidAddress, offset)
	}
	if len(data) > 0 && offset/e.pageSize != (offset+len(data)-1)/e.pageSize {
		return curated.Errorf(PageOverflow, len(data), offset)
	}

	out := make([]byte, 0, e.addrBytes+len(data))
	out = append(out, e.wordAddress(offset)...)
	out = append(out, data...)

	return e.bus.Write(e.busAddress, out)
}
