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
	"sync"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/notifications"
)

// Sentinal errors.
const (
	DeviceNotFound  = "midi: can't find device (%s)"
	NoHandler       = "midi: no handler available"
	NotInputCapable = "midi: %s does not support input"
)

type command struct {
	len int
	pos int
	buf [8]byte
}

type sysex struct {
	buf  [SysexSize]byte
	used int

	// pacing. delay and start are in wall time milliseconds
	armed bool
	delay int64
	start int64
}

type slot struct {
	status uint8
	cmd    command
	sysex  sysex
}

// Session is a connection between the emulated machine and a MIDI handler.
type Session struct {
	env      *environment.Environment
	registry *Registry
	ticker   clocks.Ticker

	// crit covers every field below it. the lock is held while a message is
	// sent to the handler so messages from different slots never interleave
	crit sync.Mutex

	capture Capture

	slots [NumSlots]slot

	handler   Handler
	available bool

	inHandler   Handler
	inAvailable bool

	realtime  bool
	autoInput bool
	thru      bool
	clockOut  bool

	inputDev  Device
	receivers map[Device]InputReceiver
}

// NewSession is the preferred method of initialisation for the Session type.
// No handler is open until Open() is called.
func NewSession(env *environment.Environment, registry *Registry, ticker clocks.Ticker) *Session {
	return &Session{
		env:       env,
		registry:  registry,
		ticker:    ticker,
		inputDev:  DeviceNone,
		receivers: make(map[Device]InputReceiver),
	}
}

// SetCapture attaches a capture to the session. A nil value detaches the
// current capture.
func (s *Session) SetCapture(c Capture) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.capture = c
}

// Available returns true if a handler is open.
func (s *Session) Available() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.available
}

// HandlerName returns the name of the open handler. Returns the empty string
// if no handler is open.
func (s *Session) HandlerName() string {
	s.crit.Lock()
	defer s.crit.Unlock()
	if !s.available {
		return ""
	}
	return s.handler.Name()
}

// Close the session. The input handler is closed first if it is not also the
// output handler.
func (s *Session) Close() {
	s.crit.Lock()
	in, out := s.inHandler, s.handler
	inAvailable, available := s.inAvailable, s.available
	s.inHandler = nil
	s.inAvailable = false
	s.handler = nil
	s.available = false
	s.crit.Unlock()

	if inAvailable && in != out {
		in.Close()
	}
	if available {
		out.Close()
		logger.Logf(s.env, "midi", "closed device: %s", out.Name())
		s.env.Notify(notifications.NotifyMIDIClosed)
	}
}
