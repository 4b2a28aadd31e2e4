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

// Package gomidi is a MIDI handler for the host's MIDI ports. Ports are
// accessed through a gomidi driver, which on most platforms will be the
// rtmidi driver.
//
// The configuration string selects the port. A number selects the port by
// index and any other string selects the first port with a name that
// contains the string, ignoring case. An empty string selects the first
// port.
package gomidi

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Name of the handler.
const Name = "gomidi"

// Handler implements the midi.Handler and midi.InputHandler interfaces.
type Handler struct {
	env *environment.Environment
	drv drivers.Driver

	crit sync.Mutex
	out  drivers.Out
	send func(gomidi.Message) error

	in   drivers.In
	stop func()
}

// NewHandler is the preferred method of initialisation for the Handler type.
// If drv is nil then the driver registered with the gomidi drivers package is
// used.
func NewHandler(env *environment.Environment, drv drivers.Driver) *Handler {
	return &Handler{
		env: env,
		drv: drv,
	}
}

func (h *Handler) driver() (drivers.Driver, error) {
	if h.drv != nil {
		return h.drv, nil
	}
	drv := drivers.Get()
	if drv == nil {
		return nil, fmt.Errorf("%s: no driver registered", Name)
	}
	return drv, nil
}

// Name implements the midi.Handler interface.
func (h *Handler) Name() string {
	return Name
}

// port is implemented by both drivers.In and drivers.Out.
type port interface {
	String() string
}

// choose a port using the rules described in the package documentation.
// returns -1 if there are no ports.
func choose[P port](ports []P, conf string) int {
	if len(ports) == 0 {
		return -1
	}

	conf = strings.TrimSpace(conf)
	if conf == "" {
		return 0
	}

	if n, err := strconv.Atoi(conf); err == nil {
		if n < 0 || n >= len(ports) {
			return 0
		}
		return n
	}

	conf = strings.ToLower(conf)
	for i, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), conf) {
			return i
		}
	}

	return 0
}

// Open implements the midi.Handler interface.
func (h *Handler) Open(conf string) error {
	drv, err := h.driver()
	if err != nil {
		return err
	}

	outs, err := drv.Outs()
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	idx := choose(outs, conf)
	if idx == -1 {
		return fmt.Errorf("%s: no output ports", Name)
	}

	send, err := gomidi.SendTo(outs[idx])
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	h.crit.Lock()
	h.out = outs[idx]
	h.send = send
	h.crit.Unlock()

	logger.Logf(h.env, Name, "output port %d: %s", idx, outs[idx].String())

	return nil
}

// OpenInput implements the midi.InputHandler interface.
func (h *Handler) OpenInput(conf string, in midi.Input) error {
	drv, err := h.driver()
	if err != nil {
		return err
	}

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	idx := choose(ins, conf)
	if idx == -1 {
		return fmt.Errorf("%s: no input ports", Name)
	}

	stop, err := gomidi.ListenTo(ins[idx], func(msg gomidi.Message, _ int32) {
		if len(msg) == 0 {
			return
		}
		if msg[0] == 0xf0 {
			in.InputSysex(msg, false)
		} else {
			in.InputMsg(msg)
		}
	}, gomidi.UseSysEx())
	if err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}

	h.crit.Lock()
	h.stopInput()
	h.in = ins[idx]
	h.stop = stop
	h.crit.Unlock()

	logger.Logf(h.env, Name, "input port %d: %s", idx, ins[idx].String())

	return nil
}

// must be called with the lock held.
func (h *Handler) stopInput() {
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}
	if h.in != nil {
		_ = h.in.Close()
		h.in = nil
	}
}

// Close implements the midi.Handler interface. Both the output and input
// ports are closed.
func (h *Handler) Close() {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.stopInput()

	if h.out != nil {
		if err := h.out.Close(); err != nil {
			logger.Log(h.env, Name, err)
		}
		h.out = nil
		h.send = nil
	}
}

func (h *Handler) play(data []byte) {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.send == nil {
		return
	}

	// the driver may keep the message so it gets its own copy
	msg := make(gomidi.Message, len(data))
	copy(msg, data)

	if err := h.send(msg); err != nil {
		logger.Logf(h.env, Name, "send: %v", err)
	}
}

// PlayMsg implements the midi.Handler interface.
func (h *Handler) PlayMsg(msg []byte) {
	h.play(msg)
}

// PlaySysex implements the midi.Handler interface.
func (h *Handler) PlaySysex(buf []byte) {
	h.play(buf)
}

// ListAll implements the midi.Handler interface.
func (h *Handler) ListAll(w io.Writer) midi.ListResult {
	drv, err := h.driver()
	if err != nil {
		return midi.ListDeviceNotConfigured
	}

	outs, err := drv.Outs()
	if err != nil {
		return midi.ListDeviceNotConfigured
	}

	if len(outs) == 0 {
		fmt.Fprintf(w, "  no output ports\n")
	}
	for i, o := range outs {
		fmt.Fprintf(w, "  %d: %s\n", i, o.String())
	}

	return midi.ListOK
}
