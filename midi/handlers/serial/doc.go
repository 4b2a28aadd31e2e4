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

// Package serial is a MIDI handler that writes MIDI bytes directly to a serial
// port. This is useful for hardware synthesisers that are connected with a
// serial-to-MIDI adaptor or that have a serial "to host" input.
//
// The configuration string is the device path optionally followed by a comma
// and the baud rate. For example:
//
//	/dev/ttyUSB0,38400
//
// The default device is /dev/ttyS0 and the default baud rate is the MIDI baud
// rate of 31250.
package serial
