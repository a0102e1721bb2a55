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

import "sync"

// Guard serialises access to a Parser that is fed from one goroutine and
// drained from another. All access goes through With; the Parser itself
// is never reachable outside a critical section.
type Guard struct {
	crit   sync.Mutex
	parser *Parser
}

// NewGuard is the preferred method of initialisation for the Guard type.
func NewGuard(parser *Parser) *Guard {
	return &Guard{parser: parser}
}

// With runs f inside the critical section.
func (g *Guard) With(f func(*Parser)) {
	g.crit.Lock()
	defer g.crit.Unlock()
	f(g.parser)
}
