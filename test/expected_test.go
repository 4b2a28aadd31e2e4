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
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/dosaudio/test"
)

func TestSuccessAndFailure(t *testing.T) {
	var err error
	var nilErr error

	test.ExpectEquality(t, test.ExpectSuccess(t, true), true)
	test.ExpectEquality(t, test.ExpectSuccess(t, err), true)
	test.ExpectEquality(t, test.ExpectSuccess(t, nil), true)

	err = fmt.Errorf("open: %w", errors.New("no device"))
	test.ExpectEquality(t, test.ExpectFailure(t, err), true)
	test.ExpectEquality(t, test.ExpectFailure(t, false), true)
	test.ExpectEquality(t, test.ExpectFailure(t, errors.Unwrap(err)), true)
	test.ExpectEquality(t, test.ExpectSuccess(t, errors.Unwrap(nilErr)), true)

	test.DemandSuccess(t, true)
	test.DemandFailure(t, err)
}

type frame [2]float32

func TestEquality(t *testing.T) {
	test.ExpectEquality(t, test.ExpectEquality(t, uint8(0x4f), 0x40|0x0f), true)
	test.ExpectEquality(t, frame{1, -1}, frame{1.0, -1.0})
	test.ExpectEquality(t, test.ExpectInequality(t, frame{0, 0}, frame{0, 1}), true)
	test.ExpectInequality(t, "gomidi", "serial", "tagged")
	test.DemandEquality(t, len("0x378"), 5)
}

func TestApproximate(t *testing.T) {
	// tolerance is a fraction of the expected value
	test.ExpectEquality(t, test.ExpectApproximate(t, 960, 1000, 0.05), true)
	test.ExpectEquality(t, test.ExpectApproximate(t, int64(31250), 31250, 0), true)
	test.ExpectEquality(t, test.ExpectApproximate(t, float32(-0.99), -1.0, 0.02), true)
	test.ExpectEquality(t, test.ExpectApproximate(t, 0.5000001, 0.5, 0.001), true)

	// a negative expected value uses the magnitude of the tolerance
	test.ExpectApproximate(t, -105.0, -100.0, 0.05)
}
