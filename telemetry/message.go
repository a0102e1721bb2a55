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

package telemetry

import "fmt"

// one raw power unit from the controller is 13 watts
const wattsPerUnit = 13

// BatteryLevel is the state of the battery gauge on the controller's own
// display.
type BatteryLevel uint8

// List of valid BatteryLevel values.
const (
	BatteryEmptyBox BatteryLevel = iota
	BatteryBorderFlashing
	BatteryCharging
	BatteryEmpty
	BatteryLvl1
	BatteryLvl2
	BatteryLvl3
	BatteryLvl4
	BatteryLvl5
	BatteryLvl6
	BatteryLvl7
	BatteryLvl8
	BatteryLvl9
	BatteryLvl10
	BatteryLvl11
	BatteryLvl12
	BatteryLvl13
)

// decodeBatteryLevel falls back to the empty box for values off the end
// of the gauge.
func decodeBatteryLevel(v uint8) BatteryLevel {
	if v > uint8(BatteryLvl13) {
		return BatteryEmptyBox
	}
	return BatteryLevel(v)
}

func (b BatteryLevel) String() string {
	switch b {
	case BatteryEmptyBox:
		return "empty box"
	case BatteryBorderFlashing:
		return "border flashing"
	case BatteryCharging:
		return "charging"
	case BatteryEmpty:
		return "empty"
	}
	return fmt.Sprintf("level %d", uint8(b)-uint8(BatteryEmpty))
}

// MovingMode is how the controller is currently producing motion.
type MovingMode uint8

// List of valid MovingMode values. These are bit positions, not an
// enumeration; the controller reports one at a time.
const (
	ModeIdle            MovingMode = 0
	ModeAnimateThrottle MovingMode = 1 << 0
	ModeCruise          MovingMode = 1 << 3
	ModeAssist          MovingMode = 1 << 4
)

// decodeMovingMode falls back to idle for unknown bit patterns.
func decodeMovingMode(v uint8) MovingMode {
	switch MovingMode(v) {
	case ModeAnimateThrottle, ModeCruise, ModeAssist:
		return MovingMode(v)
	}
	return ModeIdle
}

func (m MovingMode) String() string {
	switch m {
	case ModeAnimateThrottle:
		return "throttle"
	case ModeCruise:
		return "cruise"
	case ModeAssist:
		return "assist"
	}
	return "idle"
}

// ErrorCode is the info/error indicator the controller wants shown.
type ErrorCode uint8

// List of valid ErrorCode values, as the controller encodes them.
const (
	ErrInfo0  ErrorCode = 0x20
	ErrInfo6  ErrorCode = 0x21
	ErrInfo1  ErrorCode = 0x22
	ErrInfo2  ErrorCode = 0x23
	ErrInfo3  ErrorCode = 0x24
	ErrInfo01 ErrorCode = 0x25
	ErrInfo4  ErrorCode = 0x26
	ErrInfo02 ErrorCode = 0x28
)

// decodeErrorCode falls back to the benign ErrInfo0 for unknown codes.
func decodeErrorCode(v uint8) ErrorCode {
	switch ErrorCode(v) {
	case ErrInfo0, ErrInfo6, ErrInfo1, ErrInfo2, ErrInfo3, ErrInfo01, ErrInfo4, ErrInfo02:
		return ErrorCode(v)
	}
	return ErrInfo0
}

func (e ErrorCode) String() string {
	return fmt.Sprintf("info %#02x", uint8(e))
}

// Message is one decoded controller frame.
type Message struct {
	Battery BatteryLevel

	// time for one wheel revolution, in milliseconds
	WheelRotationPeriod uint16

	Error ErrorCode
	CRC   uint8
	Mode  MovingMode

	// instantaneous power draw in watts
	Power uint32

	// motor temperature in celsius
	Temperature int8

	// the time source reading taken as the final frame byte arrived.
	// wrap-safe deltas between messages come from clock.Elapsed()
	Timestamp uint32
}

func (m Message) String() string {
	return fmt.Sprintf("battery: %s, wheel: %dms, error: %s, mode: %s, power: %dW, temperature: %d'C",
		m.Battery, m.WheelRotationPeriod, m.Error, m.Mode, m.Power, m.Temperature)
}
