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

package test_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/dosaudio/test"
)

func TestCappedWriter(t *testing.T) {
	c, err := test.NewCappedWriter(8)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, c.Full())

	n, _ := c.Write([]byte("mt32"))
	test.ExpectEquality(t, n, 4)
	n, _ = c.Write([]byte(":\n  none"))
	test.ExpectEquality(t, n, 4)
	test.ExpectEquality(t, c.String(), "mt32:\n  ")
	test.ExpectSuccess(t, c.Full())
	test.ExpectEquality(t, c.Dropped(), 4)

	n, err = c.Write([]byte("more"))
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c.Dropped(), 8)

	c.Reset()
	test.ExpectEquality(t, c.String(), "")
	test.ExpectEquality(t, c.Dropped(), 0)
	test.ExpectFailure(t, c.Full())

	_, err = test.NewCappedWriter(0)
	test.ExpectFailure(t, err)
	_, err = test.NewCappedWriter(-1)
	test.ExpectFailure(t, err)
}

func TestCappedWriterFprintf(t *testing.T) {
	c, err := test.NewCappedWriter(16)
	test.DemandSuccess(t, err)

	for i := 0; i < 10; i++ {
		fmt.Fprintf(c, "%06d\n", i)
	}
	test.ExpectEquality(t, c.String(), "000000\n000001\n00")
	test.ExpectEquality(t, c.Dropped(), 70-16)
}
