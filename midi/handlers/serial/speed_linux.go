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

//go:build linux && !ppc && !ppc64 && !ppc64le

package serial

import (
	"fmt"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// MIDI runs at 31250 baud, which isn't one of the standard Bxxx rates. the
// rate is set with the termios2 interface so that any rate can be used.
//
// the termios settings belong to the device and not the file descriptor, so
// a second descriptor is used for the ioctl.
func setSpeed(_ *term.Term, device string, baud int) error {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS2)
	if err != nil {
		return err
	}

	tio.Cflag &^= unix.CBAUD
	tio.Cflag |= unix.BOTHER
	tio.Ispeed = uint32(baud)
	tio.Ospeed = uint32(baud)

	err = unix.IoctlSetTermios(fd, unix.TCSETS2, tio)
	if err != nil {
		return err
	}

	tio, err = unix.IoctlGetTermios(fd, unix.TCGETS2)
	if err != nil {
		return err
	}
	if tio.Ospeed != uint32(baud) {
		return fmt.Errorf("requested %d baud but device is at %d", baud, tio.Ospeed)
	}

	return nil
}
