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
	"fmt"

	"github.com/jetsetilly/dosaudio/curated"
	"github.com/jetsetilly/dosaudio/logger"
)

// Device is a device in the emulated machine that can receive MIDI input.
type Device int

// List of valid Device values.
const (
	DeviceMPU Device = iota
	DeviceSBUART
	DeviceGUS
	DeviceSB16
	DeviceNone
)

func (d Device) String() string {
	switch d {
	case DeviceMPU:
		return "MPU-401"
	case DeviceSBUART:
		return "SB UART"
	case DeviceGUS:
		return "GUS"
	case DeviceSB16:
		return "SB16"
	case DeviceNone:
		return "none"
	}
	return fmt.Sprintf("device(%d)", int(d))
}

// InputReceiver is implemented by an emulated device that accepts MIDI input.
type InputReceiver interface {
	InputMsg(msg []byte)
	InputSysex(buf []byte, abort bool) int
}

// RegisterInputReceiver sets the receiver for the emulated device. A nil
// receiver removes the current receiver.
func (s *Session) RegisterInputReceiver(dev Device, r InputReceiver) {
	s.crit.Lock()
	defer s.crit.Unlock()
	if r == nil {
		delete(s.receivers, dev)
		return
	}
	s.receivers[dev] = r
}

// InputDevice returns the emulated device currently receiving input.
func (s *Session) InputDevice() Device {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inputDev
}

// ToggleInputDevice allows an emulated device to claim MIDI input when the
// handler was opened by name. Return values are:
//
//	-1 input devices can't be toggled because the handler was chosen automatically
//	 0 the device has claimed the input
//	 1 the device already has the input
//	 2 the device has released the input
func (s *Session) ToggleInputDevice(dev Device, on bool) int32 {
	s.crit.Lock()
	defer s.crit.Unlock()

	if !s.autoInput {
		return -1
	}
	if s.inputDev == dev {
		if !on {
			s.inputDev = DeviceNone
			return 2
		}
		return 1
	}
	s.inputDev = dev
	return 0
}

// InputMsg implements the Input interface. The message is forwarded to the
// receiver for the current input device.
func (s *Session) InputMsg(msg []byte) {
	s.crit.Lock()
	r := s.receivers[s.inputDev]
	s.crit.Unlock()

	if r != nil {
		r.InputMsg(msg)
	}
}

// InputSysex implements the Input interface. The sysex data is forwarded to
// the receiver for the current input device. Returns zero if there is no
// receiver.
func (s *Session) InputSysex(buf []byte, abort bool) int {
	s.crit.Lock()
	r := s.receivers[s.inputDev]
	s.crit.Unlock()

	if r != nil {
		return r.InputSysex(buf, abort)
	}
	return 0
}

// OpenInput opens the named handler for input. Input is delivered through
// InputMsg() and InputSysex(). An existing input handler is closed first
// unless it is also the output handler.
func (s *Session) OpenInput(name string, conf string) error {
	h := s.registry.Find(name)
	if h == nil {
		return curated.Errorf(DeviceNotFound, name)
	}

	ih, ok := h.(InputHandler)
	if !ok {
		return curated.Errorf(NotInputCapable, name)
	}

	s.crit.Lock()
	prev, prevAvailable, out := s.inHandler, s.inAvailable, s.handler
	s.inHandler = nil
	s.inAvailable = false
	s.crit.Unlock()

	if prevAvailable && prev != out {
		prev.Close()
	}

	conf, _ = parseConfig(conf)
	if err := ih.OpenInput(conf, s); err != nil {
		return curated.Errorf("midi: %v", err)
	}

	s.crit.Lock()
	s.inHandler = h
	s.inAvailable = true
	s.crit.Unlock()

	logger.Logf(s.env, "midi", "Opened input device: %s", name)

	return nil
}
