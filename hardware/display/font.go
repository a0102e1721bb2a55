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

package display

// a 3x5 numeric font, one row per byte, three low bits per row. enough
// glyphs for the readouts the meter draws
var font = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b010, 0b010, 0b010},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'>': {0b100, 0b010, 0b001, 0b010, 0b100},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// Text draws s into the framebuffer at (x, y), each glyph scaled up by
// scale. Unknown runes draw as blanks. Returns the x coordinate after
// the last glyph.
func (d *SSD1306) Text(x int, y int, s string, scale int, on bool) int {
	for _, r := range s {
		g := font[r]
		for row := 0; row < 5; row++ {
			for col := 0; col < 3; col++ {
				if g[row]&(0b100>>col) != 0 {
					d.FillRect(x+col*scale, y+row*scale, scale, scale, on)
				}
			}
		}
		x += 4 * scale
	}
	return x
}
