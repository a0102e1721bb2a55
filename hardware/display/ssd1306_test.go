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

package display_test

import (
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/hardware/display"
	"github.com/ololoshka2871/elbike-power-meter/test"
)

// recorder captures bus transactions instead of driving wires.
type recorder struct {
	addresses []uint8
	writes    [][]byte
}

func (r *recorder) Write(address uint8, data []byte) error {
	r.addresses = append(r.addresses, address)
	r.writes = append(r.writes, append([]byte(nil), data...))
	return nil
}

func TestInit(t *testing.T) {
	rec := &recorder{}
	d := display.New(rec, display.AlternateAddress)

	test.ExpectedSuccess(t, d.Init())

	test.Equate(t, len(rec.writes), 1)
	test.Equate(t, rec.addresses[0], display.AlternateAddress)

	// a command transaction opens with the command control byte and
	// ends by switching the panel on
	w := rec.writes[0]
	test.Equate(t, w[0], 0x00)
	test.Equate(t, w[len(w)-1], 0xaf)
}

func TestFlush(t *testing.T) {
	rec := &recorder{}
	d := display.New(rec, display.AlternateAddress)

	d.SetPixel(0, 0, true)
	d.SetPixel(127, 63, true)
	test.ExpectedSuccess(t, d.Flush())

	// one command transaction for the addressing window, one data
	// transaction carrying the whole framebuffer
	test.Equate(t, len(rec.writes), 2)
	test.Equate(t, rec.writes[1][0], 0x40)
	test.Equate(t, len(rec.writes[1]), 1+display.Width*display.Height/8)

	// (0,0) is the lsb of the first framebuffer byte; (127,63) the msb
	// of the last
	test.Equate(t, rec.writes[1][1], 0x01)
	test.Equate(t, rec.writes[1][len(rec.writes[1])-1], 0x80)
}

func TestPixelBounds(t *testing.T) {
	rec := &recorder{}
	d := display.New(rec, display.DefaultAddress)

	// out of bounds coordinates must not panic or wrap
	d.SetPixel(-1, 0, true)
	d.SetPixel(128, 0, true)
	d.SetPixel(0, 64, true)

	test.ExpectedSuccess(t, d.Flush())
	for _, b := range rec.writes[1][1:] {
		test.Equate(t, b, 0x00)
	}
}

func TestPanel(t *testing.T) {
	rec := &recorder{}
	d := display.New(rec, display.AlternateAddress)
	p := display.NewPanel(d)

	test.ExpectedSuccess(t, p.Draw(600, 12.5))

	// the bar at half of full scale fills half the top row of pages
	fb := rec.writes[1][1:]
	test.Equate(t, fb[0], 0xff)
	test.Equate(t, fb[display.Width-1], 0x00)

	test.ExpectedSuccess(t, p.Repeat(12.5))
}
