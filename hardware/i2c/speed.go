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

package i2c

// Speed is the clocking class of the bus. The value of a Speed is the bit
// timing unit in nanoseconds: a written bit occupies four units (one of
// data setup, two of clock high, one of clock low recovery).
type Speed uint32

// The two supported speed classes.
const (
	Standard Speed = 2500 // 100kHz
	Fast     Speed = 1250 // 400kHz
)

func (s Speed) String() string {
	switch s {
	case Standard:
		return "100kHz"
	case Fast:
		return "400kHz"
	}
	return "unknown"
}

// multiples of the timing unit used by the bit functions.
const (
	dataSetup      = 1  // data line settled before clock release
	sampleWindow   = 2  // clock held high for the receiver to sample
	clockRecovery  = 1  // clock held low after the bit
	bitTimeout     = 4  // overall budget for one read bit
	stretchTimeout = 16 // tolerated peer clock stretching within a read bit
)

// settle time after any single line transition, in nanoseconds. this is
// independent of the speed class.
const lineSettle = 500
