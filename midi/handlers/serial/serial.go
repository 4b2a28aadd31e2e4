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

package serial

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/midi"
)

// Name of the handler.
const Name = "serial"

// Default values used when the configuration string doesn't specify them.
const (
	DefaultDevice = "/dev/ttyS0"
	DefaultBaud   = 31250
)

// Opener opens the named device at the specified baud rate.
type Opener func(device string, baud int) (io.WriteCloser, error)

// Handler implements the midi.Handler interface.
type Handler struct {
	env  *environment.Environment
	open Opener

	crit   sync.Mutex
	port   io.WriteCloser
	device string
}

// NewHandler is the preferred method of initialisation for the Handler type.
// If open is nil then the device is opened as a terminal in raw mode.
func NewHandler(env *environment.Environment, open Opener) *Handler {
	if open == nil {
		open = openTerm
	}
	return &Handler{
		env:  env,
		open: open,
	}
}

// Name implements the midi.Handler interface.
func (h *Handler) Name() string {
	return Name
}

// ParseConfig splits the configuration string into the device and baud rate
// components.
func ParseConfig(conf string) (string, int, error) {
	device := DefaultDevice
	baud := DefaultBaud

	conf = strings.TrimSpace(conf)
	if conf == "" {
		return device, baud, nil
	}

	d, b, ok := strings.Cut(conf, ",")
	if d = strings.TrimSpace(d); d != "" {
		device = d
	}

	if ok {
		n, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil || n <= 0 {
			return "", 0, fmt.Errorf("%s: invalid baud rate '%s'", Name, strings.TrimSpace(b))
		}
		baud = n
	}

	return device, baud, nil
}

// Open implements the midi.Handler interface.
func (h *Handler) Open(conf string) error {
	device, baud, err := ParseConfig(conf)
	if err != nil {
		return err
	}

	port, err := h.open(device, baud)
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	h.crit.Lock()
	h.port = port
	h.device = device
	h.crit.Unlock()

	logger.Logf(h.env, Name, "opened %s at %d baud", device, baud)

	return nil
}

// Close implements the midi.Handler interface.
func (h *Handler) Close() {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.port == nil {
		return
	}

	if err := h.port.Close(); err != nil {
		logger.Logf(h.env, Name, "%s: %v", h.device, err)
	}
	h.port = nil
}

func (h *Handler) write(data []byte) {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.port == nil {
		return
	}

	if _, err := h.port.Write(data); err != nil {
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

// the device patterns searched by ListAll()
var listPatterns = []string{"/dev/ttyS*", "/dev/ttyUSB*", "/dev/ttyACM*"}

// ListAll implements the midi.Handler interface.
func (h *Handler) ListAll(w io.Writer) midi.ListResult {
	var found bool
	for _, p := range listPatterns {
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
