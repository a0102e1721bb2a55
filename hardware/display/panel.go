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

import "fmt"

// layout constants. the bar occupies the yellow strip at the top of the
// two-colour panels this project uses
const (
	barHeight      = 16
	separatorY     = 35
	graphTop       = separatorY + 2
	defaultFullBar = 1200
)

// Panel renders the meter's screen on an SSD1306: the instantaneous
// power as a bar across the top, the accumulated work below it, and the
// recent power history as a graph along the bottom.
type Panel struct {
	d *SSD1306

	// power that draws a full-width bar, in watts
	fullScale uint32

	// one power sample per column
	history [Width]uint32
	wp      int
}

// NewPanel is the preferred method of initialisation for the Panel type.
func NewPanel(d *SSD1306) *Panel {
	return &Panel{d: d, fullScale: defaultFullBar}
}

// SetFullScale changes the power that draws a full-width bar.
func (p *Panel) SetFullScale(watts uint32) {
	if watts > 0 {
		p.fullScale = watts
	}
}

// Draw renders one screen: power in watts, accumulated work in watt
// hours. The power sample also enters the history graph.
func (p *Panel) Draw(power uint32, totalWh float32) error {
	p.history[p.wp] = power
	p.wp = (p.wp + 1) % len(p.history)

	p.d.Clear()

	// power bar with the wattage over it
	w := int(uint64(Width) * uint64(power) / uint64(p.fullScale))
	if w > Width {
		w = Width
	}
	p.d.FillRect(0, 0, w, barHeight, true)
	p.d.Text(4, 3, fmt.Sprintf("%d", power), 2, power < p.fullScale/4)

	// accumulated work readout
	p.d.Text(0, 19, fmt.Sprintf("> %06.2f", totalWh), 2, true)
	p.d.HLine(0, separatorY, Width, true)

	// history graph, newest sample at the right edge
	graphH := Height - graphTop
	for i := 0; i < len(p.history); i++ {
		s := p.history[(p.wp+i)%len(p.history)]
		h := int(uint64(graphH) * uint64(s) / uint64(p.fullScale))
		if h > graphH {
			h = graphH
		}
		if h > 0 {
			p.d.FillRect(i, Height-h, 1, h, true)
		}
	}

	return p.d.Flush()
}

// Repeat renders the screen again with the previous power sample. Used
// when no fresh message has arrived in time: the graph keeps scrolling
// at a steady rate.
func (p *Panel) Repeat(totalWh float32) error {
	prev := p.wp - 1
	if prev < 0 {
		prev = len(p.history) - 1
	}
	return p.Draw(p.history[prev], totalWh)
}
