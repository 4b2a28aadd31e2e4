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

package disney_test

import (
	"testing"

	"github.com/jetsetilly/dosaudio/hardware/peripherals/disney"
	"github.com/jetsetilly/dosaudio/test"
)

func TestStatus(t *testing.T) {
	var st disney.Status
	test.ExpectEquality(t, st.Power(), uint8(0))
	test.ExpectFailure(t, st.FifoFull())

	st.SetPower(true)
	st.SetFifoFull(true)
	test.ExpectEquality(t, uint8(st), uint8(0b0100_1111))
	test.ExpectEquality(t, st.String(), "power=1111 full")

	st.SetPower(false)
	test.ExpectEquality(t, uint8(st), uint8(0b0100_0000))

	st.SetFifoFull(false)
	test.ExpectEquality(t, uint8(st), uint8(0))
	test.ExpectEquality(t, st.String(), "power=0000")
}
