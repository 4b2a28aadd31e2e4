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

// RawOutRTByte sends a realtime byte directly to the handler. Nothing is sent
// if realtime output is disabled. The timing clock (0xf8) is only sent if
// clock output is enabled.
func (s *Session) RawOutRTByte(data uint8) {
	s.crit.Lock()
	defer s.crit.Unlock()

	if !s.realtime {
		return
	}
	if !s.clockOut && data == timingClock {
		return
	}
	s.playMsg([]byte{data})
}

// RawOutThruRTByte sends a realtime byte if thru is enabled.
func (s *Session) RawOutThruRTByte(data uint8) {
	s.crit.Lock()
	thru := s.thru
	s.crit.Unlock()

	if thru {
		s.RawOutRTByte(data)
	}
}

// SetRealtime enables or disables realtime output.
func (s *Session) SetRealtime(on bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.realtime = on
}

// SetThru enables or disables thru.
func (s *Session) SetThru(on bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.thru = on
}

// SetClockOut enables or disables output of the timing clock.
func (s *Session) SetClockOut(on bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.clockOut = on
}
