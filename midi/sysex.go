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

package midi

import "math"

// the rate at which a MIDI cable transfers data, in bytes per millisecond.
const baudBytesPerMs = 3.125

// SysexDelay returns the number of milliseconds to wait after sending the
// sysex message before sending anything else on the same slot. The buffer
// includes the leading 0xf0 and the trailing 0xf7.
//
// The baseline delay is the transfer time of the message with some headroom.
// Some messages addressed to the Roland MT-32 take much longer for the device
// to process and have a fixed delay.
func SysexDelay(buf []byte) int64 {
	if len(buf) > 5 && buf[5] == 0x7f {
		// all parameters reset
		return 290
	}
	if len(buf) > 7 && buf[5] == 0x10 && buf[6] == 0x00 {
		switch buf[7] {
		case 0x04:
			return 145
		case 0x01:
			return 30
		}
	}
	return int64(math.Ceil(float64(len(buf))*1.25/baudBytesPerMs)) + 2
}

// isShortMT32Sysex returns true if the sysex message is addressed to an MT-32
// but is too short to contain a checksum. Sending these messages to a real
// device can hang it.
func isShortMT32Sysex(buf []byte) bool {
	return len(buf) >= 4 && len(buf) <= 9 && buf[1] == 0x41 && buf[3] == 0x16
}

// pacingWait returns how long the slot must wait before the next byte can be
// sent. must be called with the lock held.
func (s *Session) pacingWait(slot int) int64 {
	sx := &s.slots[slot].sysex
	if !sx.armed {
		return 0
	}
	passed := s.ticker.Ticks() - sx.start
	if passed < sx.delay {
		return sx.delay - passed
	}
	return 0
}
