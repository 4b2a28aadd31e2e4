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

// Package disney emulates the Disney Sound Source. The Disney Sound Source is
// an 8-bit DAC plugged into the parallel port. It has a 16 byte FIFO that is
// played back at a fixed rate of 7kHz.
//
// Programs write samples to the data port and poll the status port to see if
// the FIFO is full. The control port is used to strobe the device but the
// strobe has no effect on the audio in this emulation.
//
// The device keeps its own cursor in emulated time. Every port access renders
// frames up to the current emulated time and queues them for the mixer. When
// the mixer asks for more frames than have been queued the remainder are
// rendered immediately and the cursor is moved to the current time.
package disney
