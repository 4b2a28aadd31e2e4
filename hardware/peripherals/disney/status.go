// This file is part of Dosaudio.
//
// Dosaudio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dosaudio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dosaudio.  If not, see <https://www.gnu.org/licenses/>.

package disney

import "fmt"

// Status is the value read from the status port.
type Status uint8

const (
	powerMask    = 0b0000_1111
	fifoFullMask = 0b0100_0000
)

// Power returns the value of the power bits.
func (s Status) Power() uint8 {
	return uint8(s) & powerMask
}

// SetPower sets or clears all the power bits.
func (s *Status) SetPower(on bool) {
	if on {
		*s |= powerMask
	} else {
		*s &^= powerMask
	}
}

// FifoFull returns true if the FIFO full bit is set.
func (s Status) FifoFull() bool {
	return s&fifoFullMask == fifoFullMask
}

// SetFifoFull sets or clears the FIFO full bit.
func (s *Status) SetFifoFull(full bool) {
	if full {
		*s |= fifoFullMask
	} else {
		*s &^= fifoFullMask
	}
}

func (s Status) String() string {
	var full string
	if s.FifoFull() {
		full = " full"
	}
	return fmt.Sprintf("power=%04b%s", s.Power(), full)
}
