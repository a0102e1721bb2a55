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

package bench_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/bench"
	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c/sim"
	"github.com/ololoshka2871/elbike-power-meter/telemetry"
	"github.com/ololoshka2871/elbike-power-meter/test"
)

// duplex joins two pipes into the two ends of a serial link.
type duplex struct {
	io.Reader
	io.Writer
}

func newLink() (host *duplex, board *duplex) {
	hr, bw := io.Pipe()
	br, hw := io.Pipe()
	return &duplex{Reader: hr, Writer: hw}, &duplex{Reader: br, Writer: bw}
}

func TestSend(t *testing.T) {
	host, board := newLink()
	s := bench.NewSession(host)

	done := make(chan struct{})
	go func() {
		defer close(done)
		test.ExpectedSuccess(t, s.Send(telemetry.Message{Power: 130}))
	}()

	buf := make([]byte, telemetry.FrameSize)
	_, err := io.ReadFull(board, buf)
	test.ExpectedSuccess(t, err)

	// the frame parses back to the message we sent
	p := telemetry.NewParser(sim.NewClock())
	for _, b := range buf {
		p.Feed(b)
	}
	m, ok := p.Message()
	test.Equate(t, ok, true)
	test.Equate(t, m.Power, 130)
	<-done
	test.Equate(t, s.Sent(), 1)
}

func TestSinus(t *testing.T) {
	host, board := newLink()
	s := bench.NewSession(host)
	s.SetInterval(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		test.ExpectedSuccess(t, s.Sinus(1))
	}()

	p := telemetry.NewParser(sim.NewClock())
	peak := uint32(0)
	for i := 0; i < 128; i++ {
		buf := make([]byte, telemetry.FrameSize)
		_, err := io.ReadFull(board, buf)
		test.ExpectedSuccess(t, err)

		for _, b := range buf {
			p.Feed(b)
		}
		m, ok := p.Message()
		test.Equate(t, ok, true)
		if m.Power > peak {
			peak = m.Power
		}
	}

	// the waveform peaks at the configured amplitude
	<-done
	test.Equate(t, peak, 92*13)
}

func TestMonitor(t *testing.T) {
	host, board := newLink()
	s := bench.NewSession(host)

	var out bytes.Buffer
	done := make(chan error)
	go func() {
		done <- s.Monitor(&out)
	}()

	_, err := board.Writer.(*io.PipeWriter).Write([]byte("hello from the board\n"))
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, board.Writer.(*io.PipeWriter).Close())

	test.ExpectedSuccess(t, <-done)
	test.Equate(t, strings.Contains(out.String(), "hello from the board"), true)
}

func TestMemviz(t *testing.T) {
	host, _ := newLink()
	s := bench.NewSession(host)

	var out bytes.Buffer
	s.WriteMemviz(&out)
	test.Equate(t, strings.Contains(out.String(), "digraph"), true)
}
