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
	"os/signal"

	"github.com/ololoshka2871/elbike-power-meter/logger"
	"github.com/ololoshka2871/elbike-power-meter/modalflag"
	"github.com/ololoshka2871/elbike-power-meter/version"
)

func main() {
	// #ctrlc. modes receive the cancellation through the context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "BENCH", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)

	case "BENCH":
		err = benchMode(ctx, md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	v := md.AddBool("v", false, "display version details")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	vers, revision, release := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, vers)
	if *v {
		fmt.Printf("  revision: %s\n", revision)
		fmt.Printf("  release: %v\n", release)
	}

	return nil
}

// echoLogs redirects the central logger to stderr when asked for on the
// command line.
func echoLogs(enable bool) {
	if enable {
		logger.SetEcho(os.Stderr)
	}
}
