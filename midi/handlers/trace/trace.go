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

// Package trace is a MIDI handler that writes a readable description of every
// MIDI message to an io.Writer. It does not produce any sound and so it is
// never chosen when the MIDI device is "auto".
//
// An empty configuration string writes to the io.Writer given to NewHandler().
// Any other configuration string is the name of a file to write to.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Name of the handler.
const Name = "trace"

// Handler implements the midi.Handler interface.
type Handler struct {
	env *environment.Environment
	def io.Writer

	crit sync.Mutex
	w    io.Writer
	f    *os.File
	n    int
}

// NewHandler is the preferred method of initialisation for the Handler type.
func NewHandler(env *environment.Environment, w io.Writer) *Handler {
	return &Handler{
		env: env,
		def: w,
	}
}

// Name implements the midi.Handler interface.
func (h *Handler) Name() string {
	return Name
}

// Open implements the midi.Handler interface.
func (h *Handler) Open(conf string) error {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.n = 0

	conf = strings.TrimSpace(conf)
	if conf == "" {
		if h.def == nil {
			return fmt.Errorf("%s: no output", Name)
		}
		h.w = h.def
		return nil
	}

	f, err := os.Create(conf)
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	h.f = f
	h.w = f

	return nil
}

// Close implements the midi.Handler interface.
func (h *Handler) Close() {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.f != nil {
		_ = h.f.Close()
		h.f = nil
	}
	h.w = nil
}

func (h *Handler) trace(data []byte) {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.w == nil {
		return
	}

	h.n++
	fmt.Fprintf(h.w, "%06d % 02x: %s\n", h.n, data, gomidi.Message(data).String())
}

// PlayMsg implements the midi.Handler interface.
func (h *Handler) PlayMsg(msg []byte) {
	h.trace(msg)
}

// PlaySysex implements the midi.Handler interface.
func (h *Handler) PlaySysex(buf []byte) {
	h.trace(buf)
}

// ListAll implements the midi.Handler interface.
func (h *Handler) ListAll(_ io.Writer) midi.ListResult {
	return midi.ListNotSupported
}
