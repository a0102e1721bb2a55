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

// Package display drives an SSD1306 OLED over the shared bus. The driver
// keeps a local framebuffer; drawing happens in memory and Flush sends
// the whole buffer to the panel in one data transaction.
package display

// Bus is the transaction surface the driver requires. The panel is write
// only. *i2c.Accessor satisfies the interface.
type Bus interface {
	Write(address uint8, data []byte) error
}

// The panel's bus addresses. The board this project targets straps the
// panel to the alternate address, leaving the default free.
const (
	DefaultAddress   = 0x3c
	AlternateAddress = 0x3d
)

// panel dimensions
const (
	Width  = 128
	Height = 64
)

// control bytes. every transaction opens with one, marking the rest of
// the transaction as commands or framebuffer data
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// SSD1306 is a driver for the 128x64 monochrome panel.
type SSD1306 struct {
	bus        Bus
	busAddress uint8

	// one bit per pixel, page major: byte n holds column n%128 of page
	// n/128, lsb at the top of the page
	buf [Width * Height / 8]uint8
}

// New is the preferred method of initialisation for the SSD1306 type.
// The panel is not touched until Init is called.
func New(bus Bus, busAddress uint8) *SSD1306 {
	return &SSD1306{bus: bus, busAddress: busAddress}
}

// Init configures and switches on the panel. The sequence is the
// manufacturer's reference initialisation for a 128x64 panel with the
// charge pump generating the panel voltage.
func (d *SSD1306) Init() error {
	return d.command(
		0xae,       // display off
		0xd5, 0x80, // clock divide ratio
		0xa8, 0x3f, // multiplex ratio: 64 rows
		0xd3, 0x00, // no display offset
		0x40,       // start line 0
		0x8d, 0x14, // charge pump on
		0x20, 0x00, // horizontal addressing mode
		0xa1,       // segment remap, column 127 first
		0xc8,       // com scan direction, bottom up
		0xda, 0x12, // com pins configuration
		0x81, 0xcf, // contrast
		0xd9, 0xf1, // precharge periods
		0xdb, 0x40, // vcom deselect level
		0xa4, // resume from ram contents
		0xa6, // normal, not inverted
		0xaf, // display on
	)
}

// SetContrast adjusts the panel brightness.
func (d *SSD1306) SetContrast(v uint8) error {
	return d.command(0x81, v)
}

// Clear blanks the framebuffer. The panel does not change until Flush.
func (d *SSD1306) Clear() {
	for i := range d.buf {
		d.buf[i] = 0x00
	}
}

// SetPixel sets or clears one framebuffer pixel. Out of bounds
// coordinates are ignored.
func (d *SSD1306) SetPixel(x int, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}

	idx := (y/8)*Width + x
	bit := uint8(1) << (y % 8)
	if on {
		d.buf[idx] |= bit
	} else {
		d.buf[idx] &^= bit
	}
}

// FillRect fills a rectangle in the framebuffer. The rectangle is
// clipped to the panel.
func (d *SSD1306) FillRect(x int, y int, w int, h int, on bool) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			d.SetPixel(i, j, on)
		}
	}
}

// HLine draws a horizontal line in the framebuffer.
func (d *SSD1306) HLine(x int, y int, w int, on bool) {
	d.FillRect(x, y, w, 1, on)
}

// Flush sends the framebuffer to the panel: reset the addressing window
// to the full panel, then the pixel data in a single transaction.
func (d *SSD1306) Flush() error {
	err := d.command(
		0x21, 0x00, Width - 1, // column address range
		0x22, 0x00, Height/8 - 1, // page address range
	)
	if err != nil {
		return err
	}

	out := make([]byte, 1, 1+len(d.buf))
	out[0] = ctrlData
	out = append(out, d.buf[:]...)

	return d.bus.Write(d.busAddress, out)
}

func (d *SSD1306) command(cmds ...uint8) error {
	out := make([]byte, 1, 1+len(cmds))
	out[0] = ctrlCommand
	out = append(out, cmds...)

	return d.bus.Write(d.busAddress, out)
}
