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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ololoshka2871/elbike-power-meter/bench"
	"github.com/ololoshka2871/elbike-power-meter/modalflag"
	"github.com/ololoshka2871/elbike-power-meter/telemetry"
)

func benchMode(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	port := md.AddString("port", "/dev/ttyUSB0", "serial device the board is attached to")
	baud := md.AddInt("baud", 115200, "baud rate of the board's console")
	cycles := md.AddInt("cycles", 1, "number of waveform cycles to send")
	interval := md.AddInt("interval", 85, "milliseconds between frames")
	memviz := md.AddString("memviz", "", "write a graphviz dump of the session to this file")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	echoLogs(true)

	serial, err := bench.OpenPort(*port, *baud)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	defer serial.Close()

	session := bench.NewSession(serial)
	session.SetInterval(time.Duration(*interval) * time.Millisecond)

	// everything the board prints appears on our stdout
	go func() {
		_ = session.Monitor(os.Stdout)
	}()

	// a single plain frame first, to confirm the link is up
	err = session.Send(telemetry.Message{
		Battery: telemetry.BatteryLvl13,
		Power:   42 * 13,
	})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Sinus(*cycles)
	}()

	select {
	case <-ctx.Done():
	case err = <-done:
		if err != nil {
			return err
		}
	}

	fmt.Printf("sent %d frames\n", session.Sent())

	if *memviz != "" {
		f, err := os.Create(*memviz)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}
		defer f.Close()
		session.WriteMemviz(f)
	}

	return nil
}
