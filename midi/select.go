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
	"strings"

	"github.com/jetsetilly/dosaudio/curated"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/notifications"
)

// the token in the configuration string that arms sysex pacing.
const delaySysexToken = "delaysysex"

// parseConfig removes the delaysysex token from the configuration string.
// The returned string is what is passed to the handler.
func parseConfig(conf string) (string, bool) {
	idx := strings.Index(conf, delaySysexToken)
	if idx == -1 {
		return strings.TrimSpace(conf), false
	}
	conf = conf[:idx] + conf[idx+len(delaySysexToken):]
	return strings.TrimSpace(conf), true
}

// Open a handler. The device "auto" (or "default") chooses the first handler
// in the registry that opens, skipping handlers that are opt-in. If a named
// device is not found or fails to open then the automatic choice is used
// instead.
//
// A delaysysex token in conf arms sysex pacing on all four slots. Text either
// side of the token is kept and passed to the handler. This differs from
// DOSBox, which arms slot zero only and drops everything after the token.
//
// The only error returned is NoHandler, which means that not even the None
// handler could be opened.
func (s *Session) Open(device string, conf string) error {
	s.Close()

	device = strings.ToLower(strings.TrimSpace(device))

	conf, delaySysex := parseConfig(conf)

	s.crit.Lock()
	start := s.ticker.Ticks()
	for i := range s.slots {
		s.clearSlot(i)
		s.slots[i].sysex.armed = delaySysex
		s.slots[i].sysex.delay = 0
		s.slots[i].sysex.start = start
	}
	s.crit.Unlock()

	if delaySysex {
		logger.Log(s.env, "midi", "using delayed sysex processing")
	}

	if device != "auto" && device != "default" {
		if s.openNamed(device, conf) {
			s.env.Notify(notifications.NotifyMIDIOpened)
			return nil
		}
	}

	if err := s.openDefault(conf); err != nil {
		return err
	}

	s.env.Notify(notifications.NotifyMIDIOpened)
	return nil
}

// openNamed returns true if the named handler has been opened.
func (s *Session) openNamed(device string, conf string) bool {
	h := s.registry.Find(device)
	if h == nil {
		logger.Logf(s.env, "midi", "Can't find device: %s, using default handler", device)
		return false
	}

	if err := h.Open(conf); err != nil {
		logger.Logf(s.env, "midi", "Can't open device: %s with config: '%s': %v", device, conf, err)
		return false
	}

	s.activate(h, true)
	logger.Logf(s.env, "midi", "Opened device: %s", h.Name())

	return true
}

// openDefault tries every handler in order. The None handler is last and
// always opens so an error here is an invariant violation.
func (s *Session) openDefault(conf string) error {
	for _, h := range s.registry.Handlers() {
		if s.registry.IsOptIn(h.Name()) {
			continue
		}

		if err := h.Open(conf); err != nil {
			logger.Logf(s.env, "midi", "%s: %v", h.Name(), err)
			continue
		}

		s.activate(h, false)
		logger.Logf(s.env, "midi", "Opened device: %s", h.Name())
		return nil
	}

	return curated.Errorf(NoHandler)
}

func (s *Session) activate(h Handler, autoInput bool) {
	s.crit.Lock()
	defer s.crit.Unlock()

	s.handler = h
	s.available = true
	s.realtime = true
	s.inputDev = DeviceSBUART
	s.autoInput = autoInput
	s.thru = false
	s.clockOut = false
}
