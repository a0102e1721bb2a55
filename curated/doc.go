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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and can be used wherever a
// plain error is expected.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values. Unlike the fmt package, the pattern is retained and can be tested
// for later.
//
// The Is() function says whether an error was created from a specific
// pattern:
//
//	e := curated.Errorf("eeprom: invalid address %#06x", 0x100)
//
//	if curated.Is(e, "eeprom: invalid address %#06x") {
//		// handle out of range condition
//	}
//
// The Has() function is similar but walks the chain of wrapped curated
// errors, so a pattern can be found even when the error has been annotated
// by an intermediate caller:
//
//	f := curated.Errorf("wearlog: %v", e)
//	curated.Has(f, "eeprom: invalid address %#06x")	// true
//
// The IsAny() function says whether an error is curated at all. In this
// project an uncurated error reaching a hardware package is taken to mean a
// fault in the underlying bus or host and is treated as fatal.
//
// Packages that raise recoverable conditions store their patterns as
// exported string constants (i2c.NoAck, eeprom.InvalidAddress, etc) so that
// callers can test for them without importing anything other than the
// package that owns the condition.
//
// Error messages are normalised when printed: adjacent duplicate parts of
// the message chain (parts being separated by the string ": ") are removed.
// This means intermediate functions can annotate freely without the final
// message stuttering.
package curated
