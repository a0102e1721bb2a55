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

package wearlog

import (
	"encoding/binary"
	"math"
)

// Codec translates the logged value to and from its stored form. Size
// must be constant: every record in the log is the same length.
type Codec[T any] interface {
	Size() int
	Encode(buf []byte, v T)
	Decode(buf []byte) T
}

// Float32Codec stores a float32 as its four IEEE 754 bytes, little
// endian.
type Float32Codec struct{}

// Size implements the Codec interface.
func (Float32Codec) Size() int {
	return 4
}

// Encode implements the Codec interface.
func (Float32Codec) Encode(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

// Decode implements the Codec interface.
func (Float32Codec) Decode(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

// Uint32Codec stores a uint32 little endian.
type Uint32Codec struct{}

// Size implements the Codec interface.
func (Uint32Codec) Size() int {
	return 4
}

// Encode implements the Codec interface.
func (Uint32Codec) Encode(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// Decode implements the Codec interface.
func (Uint32Codec) Decode(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}
