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

package logger_test

import (
	"testing"

	"github.com/ololoshka2871/elbike-power-meter/logger"
	"github.com/ololoshka2871/elbike-power-meter/test"
)

func TestAllow(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare("test: this is a test\n"))
}

func TestRepeats(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare("test: this is a test (repeat x2)\n"))
}

func TestTail(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "test", "a")
	logger.Log(logger.Allow, "test", "b")
	logger.Log(logger.Allow, "test", "c")

	logger.Tail(tw, 2)
	test.ExpectedSuccess(t, tw.Compare("test: b\ntest: c\n"))
}

type deny struct{}

func (_ deny) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log(deny{}, "test", "this should not be logged")
	logger.Write(tw)
	test.ExpectedSuccess(t, tw.Compare(""))
}
