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

package sdlaudio_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/dosaudio/gui/sdlaudio"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/test"
)

func TestEncode(t *testing.T) {
	frames := []mixer.Frame{{0, 0}, {1, -1}, {32767, -32768}}
	p := make([]uint8, len(frames)*4)
	sdlaudio.Encode(p, frames)

	expected := []uint8{
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0xff, 0xff,
		0xff, 0x7f, 0x00, 0x80,
	}
	test.ExpectEquality(t, bytes.Equal(p, expected), true)
}
