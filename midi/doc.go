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

// Package midi routes a stream of raw MIDI bytes from the emulated machine to
// a MIDI handler. A handler is an output device such as a hardware port, a
// serial interface or a file.
//
// The Session type reassembles the byte stream into complete messages. There
// are four independent slots, one for each source of MIDI bytes in the
// emulated machine. Each slot has its own running status and its own sysex
// buffer. Realtime bytes are forwarded immediately and do not disturb a
// message that is being assembled.
//
// Some MIDI devices, the original Roland MT-32 in particular, are unable to
// keep up with sysex messages sent at full speed. If the MIDI configuration
// contains the delaysysex token then a delay is calculated for every sysex
// message and the next byte on that slot waits for the delay to expire.
//
// Handlers are kept in a Registry. The "none" handler is always the last
// handler in the registry and always opens successfully.
package midi
