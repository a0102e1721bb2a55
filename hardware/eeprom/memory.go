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

// Memory is an in-memory store with the same surface and the same error
// patterns as the bus-backed driver. It starts erased, every cell reading
// 0xff.
type Memory struct {
	mem      []uint8
	pageSize int
}

// NewMemory is the preferred method of initialisation for the Memory
// type. capacity must be a multiple of pageSize.
func NewMemory(capacity int, pageSize int) *Memory {
	m := &Memory{
		mem:      make([]uint8, capacity),
		pageSize: pageSize,
	}
	for i := range m.mem {
		m.mem[i] = 0xff
	}
	return m
}

// Size of the store in bytes.
func (m *Memory) Size() int {
	return len(m.mem)
}

// PageSize of the store in bytes.
func (m *Memory) PageSize() int {
	return m.pageSize
}

// Read fills data from the store starting at offset.
func (m *Memory) Read(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > len(m.mem) {
		return curated.Errorf(InvalidAddress, offset)
	}
	copy(data, m.mem[offset:])
	return nil
}

// PageWrite writes data to the store starting at offset, with the same
// page restrictions as the real part.
func (m *Memory) PageWrite(offset int, data []byte) error {
	if len(data) > m.pageSize {
		return curated.Errorf(TooMuchData, len(data), m.pageSize)
	}
	if offset < 0 || offset+len(data) > len(m.mem) {
		return curated.Errorf(InvalidAddress, offset)
	}
	if len(data) > 0 && offset/m.pageSize != (offset+len(data)-1)/m.pageSize {
		return curated.Errorf(PageOverflow, len(data), offset)
	}
	copy(m.mem[offset:], data)
	return nil
}

// Poke writes a cell directly, without range checking beyond the slice
// bounds. Useful for arranging test fixtures.
func (m *Memory) Poke(offset int, data uint8) {
	m.mem[offset] = data
}

// Peek reads a cell directly.
func (m *Memory) Peek(offset int) uint8 {
	return m.mem[offset]
}
