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

// Package rawmidi is a MIDI handler that writes to a raw MIDI device file, as
// provided by the OSS and ALSA raw MIDI interfaces. The configuration string
// is the path of the device file. The default device is /dev/midi.
package rawmidi

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/midi"
)

// Name of the handler.
const Name = "rawmidi"

// DefaultDevice is used when the configuration string is empty.
const DefaultDevice = "/dev/midi"

// Handler implements the midi.Handler interface.
type Handler struct {
	env *environment.Environment

	crit   sync.Mutex
	f      *os.File
	device string
}

// NewHandler is the preferred method of initialisation for the Handler type.
func NewHandler(env *environment.Environment) *Handler {
	return &Handler{
		env: env,
	}
}

// Name implements the midi.Handler interface.
func (h *Handler) Name() string {
	return Name
}

// Open implements the midi.Handler interface.
func (h *Handler) Open(conf string) error {
	device := strings.TrimSpace(conf)
	if device == "" {
		device = DefaultDevice
	}

	f, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	h.crit.Lock()
	h.f = f
	h.device = device
	h.crit.Unlock()

	logger.Logf(h.env, Name, "opened %s", device)

	return nil
}

// Close implements the midi.Handler interface.
func (h *Handler) Close() {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.f == nil {
		return
	}
	if err := h.f.Close(); err != nil {
		logger.Logf(h.env, Name, "%s: %v", h.device, err)
	}
	h.f = nil
}

func (h *Handler) write(data []byte) {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.f == nil {
		return
	}
	if _, err := h.f.Write(data); err != nil {
		logger.Logf(h.env, Name, "%s: %v", h.device, err)
	}
}

// PlayMsg implements the midi.Handler interface.
func (h *Handler) PlayMsg(msg []byte) {
	h.write(msg)
}

// PlaySysex implements the midi.Handler interface.
func (h *Handler) PlaySysex(buf []byte) {
	h.write(buf)
}

// ListAll implements the midi.Handler interface.
func (h *Handler) ListAll(w io.Writer) midi.ListResult {
	var found bool
	for _, p := range []string{"/dev/midi*", "/dev/snd/midiC*"} {
		m, _ := filepath.Glob(p)
		for _, d := range m {
			fmt.Fprintf(w, "  %s\n", d)
			found = true
		}
	}
	if !found {
		return midi.ListDeviceNotConfigured
	}
	return midi.ListOK
}
