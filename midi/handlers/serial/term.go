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

//go:build !windows

package serial

import (
	"fmt"
	"io"

	"github.com/pkg/term"
)

// open the device in raw mode and set the baud rate. the device is closed
// and an error returned if the rate can't be set.
func openTerm(device string, baud int) (io.WriteCloser, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, err
	}

	err = setSpeed(t, device, baud)
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("%s: %w", device, err)
	}

	return t, nil
}
