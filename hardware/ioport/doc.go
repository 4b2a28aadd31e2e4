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

// Package ioport is the port I/O dispatch for the emulated machine. Devices
// install read and write handlers on a range of port addresses and the
// emulated CPU accesses them through the Read() and Write() functions of the
// Dispatch type.
//
// Ports that have no handler installed read as 0xff and discard writes. This
// is how an unconnected ISA bus behaves.
package ioport
