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

//go:build !windows && !(linux && !ppc && !ppc64 && !ppc64le)

package serial

import (
	"fmt"

	"github.com/pkg/term"
)

// only the standard rates are available. SetSpeed() doesn't report a rate it
// can't set so the rate is read back.
func setSpeed(t *term.Term, _ string, baud int) error {
	_ = t.SetSpeed(baud)

	actual, err := t.GetSpeed()
	if err != nil {
		return err
	}
	if actual != baud {
		return fmt.Errorf("requested %d baud but device is at %d", baud, actual)
	}

	return nil
}
