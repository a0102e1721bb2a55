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

//go:build !statsview

// Package statsview optionally serves live runtime statistics over HTTP.
// This is the stub compiled in when the statsview build tag is absent.
package statsview

// Available reports whether the build includes the statistics viewer.
const Available = false

// Launch does nothing in this build.
func Launch(addr string) {
}
