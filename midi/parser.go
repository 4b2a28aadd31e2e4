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

import (
	"github.com/jetsetilly/dosaudio/logger"
)

// RawOut sends a byte on slot zero.
func (s *Session) RawOut(data uint8) {
	s.RawOutByte(data, 0)
}

// RawOutByte sends a byte on the specified slot. Complete messages are sent
// to the handler as soon as the last byte has been received.
//
// If sysex pacing is armed and the previous sysex message on the slot was
// sent recently then the function blocks until the delay has expired.
func (s *Session) RawOutByte(data uint8, slot int) {
	if slot < 0 || slot >= NumSlots {
		logger.Logf(s.env, "midi", "slot %d out of range", slot)
		return
	}

	s.crit.Lock()
	wait := s.pacingWait(slot)
	s.crit.Unlock()

	// the wait happens without the lock so that other slots are not held up
	if wait > 0 {
		s.ticker.Delay(wait)
	}

	s.crit.Lock()
	defer s.crit.Unlock()

	// realtime messages are sent immediately and do not affect the state of
	// the slot
	if data >= realtimeBase {
		s.playMsg([]byte{data})
		return
	}

	sl := &s.slots[slot]

	if sl.status == sysexStart {
		if data&0x80 == 0 {
			if sl.sysex.used < SysexSize-1 {
				sl.sysex.buf[sl.sysex.used] = data
				sl.sysex.used++
			}
			return
		}

		// any status byte ends the sysex message
		sl.sysex.buf[sl.sysex.used] = sysexEnd
		sl.sysex.used++
		s.endSysex(slot)
	}

	if data&0x80 == 0x80 {
		sl.status = data
		sl.cmd.pos = 0
		sl.cmd.len = int(EventLength[data])
		if data == sysexStart {
			sl.sysex.buf[0] = sysexStart
			sl.sysex.used = 1
		}
	}

	if sl.cmd.len > 0 {
		sl.cmd.buf[sl.cmd.pos] = data
		sl.cmd.pos++
		if sl.cmd.pos >= sl.cmd.len {
			msg := sl.cmd.buf[:sl.cmd.len]
			s.captureMsg(false, msg)
			s.playMsg(msg)

			// running status
			sl.cmd.pos = 1
		}
	}
}

// endSysex sends a complete sysex message. must be called with the lock
// held.
func (s *Session) endSysex(slot int) {
	sx := &s.slots[slot].sysex
	buf := sx.buf[:sx.used]

	if isShortMT32Sysex(buf) {
		logger.Log(s.env, "midi", "skipping invalid MT-32 sysex message (too short to contain a checksum)")
	} else {
		if s.available {
			s.handler.PlaySysex(buf)
		}
		if sx.armed {
			sx.delay = SysexDelay(buf)
			sx.start = s.ticker.Ticks()
		}
	}

	logger.Logf(s.env, "midi", "Sysex message size %d", sx.used)

	// the capture gets the message without the leading 0xf0
	s.captureMsg(true, buf[1:])
}

// playMsg sends a message to the handler. must be called with the lock held.
func (s *Session) playMsg(msg []byte) {
	if s.available {
		s.handler.PlayMsg(msg)
	}
}

// captureMsg sends a copy of the message to the capture. must be called with
// the lock held.
func (s *Session) captureMsg(sysex bool, msg []byte) {
	if s.capture == nil {
		return
	}
	data := make([]byte, len(msg))
	copy(data, msg)
	s.capture.AddMidi(sysex, data)
}

// ClearBuffer resets the state of the slot. Any partial message is
// discarded.
func (s *Session) ClearBuffer(slot int) {
	if slot < 0 || slot >= NumSlots {
		return
	}
	s.crit.Lock()
	defer s.crit.Unlock()
	s.clearSlot(slot)
}

// must be called with the lock held.
func (s *Session) clearSlot(slot int) {
	sl := &s.slots[slot]
	sl.sysex.used = 0
	sl.status = 0x00
	sl.cmd.pos = 0
	sl.cmd.len = 0
}
