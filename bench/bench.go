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

// Package bench exercises a meter board from the host side of its serial
// link: synthetic controller frames go out, whatever the board prints
// comes back. Useful when bringing up a board without a bicycle attached
// to it.
package bench

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/pkg/term"

	"github.com/ololoshka2871/elbike-power-meter/telemetry"
)

// the amplitude of the synthetic waveform, in the controller's raw 13
// watt units
const waveformAmplitude = 92

// steps in one waveform cycle
const waveformSteps = 128

// OpenPort opens the serial device in raw mode at the given baud rate.
func OpenPort(device string, baud int) (io.ReadWriteCloser, error) {
	return term.Open(device, term.Speed(baud), term.RawMode)
}

// Session drives one board over a serial port. Any io.ReadWriter will
// do; tests use an in-memory pipe.
type Session struct {
	port io.ReadWriter

	// pause between frames of a waveform. the board expects roughly the
	// cadence the real controller transmits at
	interval time.Duration

	// frames sent over the lifetime of the session
	sent int
}

// NewSession is the preferred method of initialisation for the Session
// type.
func NewSession(port io.ReadWriter) *Session {
	return &Session{port: port, interval: 85 * time.Millisecond}
}

// SetInterval changes the pause between waveform frames.
func (s *Session) SetInterval(d time.Duration) {
	s.interval = d
}

// Sent is the number of frames sent so far.
func (s *Session) Sent() int {
	return s.sent
}

// Send one message to the board, encoded as a controller frame.
func (s *Session) Send(m telemetry.Message) error {
	f := telemetry.EncodeFrame(m)
	if _, err := s.port.Write(f[:]); err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	s.sent++
	return nil
}

// Sinus sends cycles of a rectified sine power waveform, one frame per
// step. The board should show the bar sweeping up and down and the work
// total creeping upwards.
func (s *Session) Sinus(cycles int) error {
	for c := 0; c < cycles; c++ {
		for i := 0; i < waveformSteps; i++ {
			raw := waveformAmplitude * math.Abs(math.Sin(2*math.Pi*float64(i)/waveformSteps))

			err := s.Send(telemetry.Message{
				Battery: telemetry.BatteryLvl13,
				Power:   uint32(raw) * 13,
			})
			if err != nil {
				return err
			}

			if s.interval > 0 {
				time.Sleep(s.interval)
			}
		}
	}
	return nil
}

// Monitor copies everything the board prints to w. It blocks until the
// port reaches EOF or fails, so it usually runs in its own goroutine.
func (s *Session) Monitor(w io.Writer) error {
	_, err := io.Copy(w, s.port)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	return nil
}

// WriteMemviz dumps the session state as a graphviz graph. Attached to a
// command line flag for inspection during long bench runs.
func (s *Session) WriteMemviz(w io.Writer) {
	memviz.Map(w, s)
}
