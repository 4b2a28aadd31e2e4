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

import "io"

// ListResult is returned by the ListAll() function of a Handler.
type ListResult int

// List of valid ListResult values.
const (
	ListOK ListResult = iota
	ListDeviceNotConfigured
	ListNotSupported
)

func (r ListResult) String() string {
	switch r {
	case ListOK:
		return "ok"
	case ListDeviceNotConfigured:
		return "device not configured"
	case ListNotSupported:
		return "listing not supported"
	}
	return "unknown"
}

// Handler is an output device for MIDI messages.
type Handler interface {
	// the name used to select the handler. names are lower case
	Name() string

	// open the device. the meaning of the conf string is up to the handler
	Open(conf string) error
	Close()

	// play a complete message. the length of the slice is the length of the
	// message. the slice must not be retained after the function returns
	PlayMsg(msg []byte)

	// play a complete sysex message, including the leading 0xf0 and the
	// trailing 0xf7. the slice must not be retained
	PlaySysex(buf []byte)

	// write a list of devices available to the handler
	ListAll(w io.Writer) ListResult
}

// Input receives MIDI data from an input device. It is implemented by
// Session.
type Input interface {
	InputMsg(msg []byte)
	InputSysex(buf []byte, abort bool) int
}

// InputHandler is implemented by handlers that can also receive MIDI.
type InputHandler interface {
	Handler

	// open the input side of the device. incoming data is sent to in
	OpenInput(conf string, in Input) error
}

// Capture is used to record MIDI messages as they are sent to the handler.
// AddMidi() must not block. The data slice belongs to the capture once it has
// been passed.
type Capture interface {
	AddMidi(sysex bool, data []byte)
}
