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
	"time"

	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"github.com/ololoshka2871/elbike-power-meter/bench"
	"github.com/ololoshka2871/elbike-power-meter/hardware/clock"
	"github.com/ololoshka2871/elbike-power-meter/hardware/display"
	"github.com/ololoshka2871/elbike-power-meter/hardware/eeprom"
	"github.com/ololoshka2871/elbike-power-meter/hardware/gpio"
	"github.com/ololoshka2871/elbike-power-meter/hardware/i2c"
	"github.com/ololoshka2871/elbike-power-meter/meter"
	"github.com/ololoshka2871/elbike-power-meter/modalflag"
	"github.com/ololoshka2871/elbike-power-meter/statsview"
	"github.com/ololoshka2871/elbike-power-meter/telemetry"
	"github.com/ololoshka2871/elbike-power-meter/wearlog"
)

// the controller transmits roughly every 85ms. redraw on that cadence
// whether or not a message arrived, so the history graph scrolls evenly
const redrawInterval = 85 * time.Millisecond

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	sdaName := md.AddString("sda", "GPIO5", "gpio pin carrying the data line")
	sclName := md.AddString("scl", "GPIO4", "gpio pin carrying the clock line")
	port := md.AddString("port", "/dev/ttyAMA0", "serial device the controller is attached to")
	baud := md.AddInt("baud", 9600, "baud rate of the controller's serial line")
	fast := md.AddBool("fast", true, "clock the bus at 400kHz rather than 100kHz")
	eepromAddr := md.AddUint("eeprom", 0x50, "bus address of the EEPROM")
	displayAddr := md.AddUint("display", display.AlternateAddress, "bus address of the OLED panel")
	log := md.AddBool("log", false, "echo log entries to stderr")
	stats := md.AddString("stats", "", "serve runtime statistics on this address (requires the statsview build tag)")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	echoLogs(*log)

	if *stats != "" && statsview.Available {
		go statsview.Launch(*stats)
	}

	// gpio through the host's memory mapped pins
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	sdaPin := gpioreg.ByName(*sdaName)
	if sdaPin == nil {
		return fmt.Errorf("run: no such pin: %s", *sdaName)
	}
	sclPin := gpioreg.ByName(*sclName)
	if sclPin == nil {
		return fmt.Errorf("run: no such pin: %s", *sclName)
	}

	// the shared bus and both of its clients
	master := i2c.NewMaster(gpio.NewPeriphLine(sdaPin), gpio.NewPeriphLine(sclPin), clock.NewHost())
	if *fast {
		master.SetSpeed(i2c.Fast)
	}
	bus := i2c.NewSharedBus(master)

	oled := display.New(bus.Accessor(), uint8(*displayAddr))
	if err := oled.Init(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	panel := display.NewPanel(oled)

	log24 := eeprom.New24C02(bus.Accessor(), uint8(*eepromAddr))
	wl, err := wearlog.New[float32](log24, wearlog.Float32Codec{})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	m := meter.New(wl)

	if err := panel.Draw(0, m.TotalWh()); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	// controller messages arrive over the serial line in their own
	// goroutine; the parser is shared through the guard
	serial, err := bench.OpenPort(*port, *baud)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer serial.Close()

	guard := telemetry.NewGuard(telemetry.NewParser(clock.NewHost()))

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := serial.Read(buf)
			if err != nil {
				return
			}
			guard.With(func(p *telemetry.Parser) {
				for _, b := range buf[:n] {
					p.Feed(b)
				}
			})
		}
	}()

	tck := time.NewTicker(redrawInterval)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			// the total in memory is ahead of the log. catch up before
			// going down
			return m.Persist()

		case <-tck.C:
			var msg telemetry.Message
			var ok bool
			guard.With(func(p *telemetry.Parser) {
				msg, ok = p.Message()
			})

			if !ok {
				if err := panel.Repeat(m.TotalWh()); err != nil {
					return fmt.Errorf("run: %w", err)
				}
				continue
			}

			if err := m.Update(msg); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			if err := panel.Draw(msg.Power, m.TotalWh()); err != nil {
				return fmt.Errorf("run: %w", err)
			}
		}
	}
}
