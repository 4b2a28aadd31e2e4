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

package midi_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/midi"
	"github.com/jetsetilly/dosaudio/notifications"
	"github.com/jetsetilly/dosaudio/test"
)

// events is a shared record of handler activity so that the order of
// operations across handlers can be checked.
type events []string

func (e *events) add(format string, args ...any) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

type fakeHandler struct {
	name    string
	openErr error
	list    midi.ListResult
	ev      *events

	conf   string
	open   bool
	msgs   [][]byte
	sysexs [][]byte
}

func (h *fakeHandler) Name() string {
	return h.name
}

func (h *fakeHandler) Open(conf string) error {
	h.ev.add("open %s", h.name)
	if h.openErr != nil {
		return h.openErr
	}
	h.conf = conf
	h.open = true
	return nil
}

func (h *fakeHandler) Close() {
	h.ev.add("close %s", h.name)
	h.open = false
}

func (h *fakeHandler) PlayMsg(msg []byte) {
	h.msgs = append(h.msgs, append([]byte(nil), msg...))
}

func (h *fakeHandler) PlaySysex(buf []byte) {
	h.sysexs = append(h.sysexs, append([]byte(nil), buf...))
}

func (h *fakeHandler) ListAll(w io.Writer) midi.ListResult {
	if h.list == midi.ListOK {
		fmt.Fprintf(w, "  0: %s port\n", h.name)
	}
	return h.list
}

type fakeInputHandler struct {
	fakeHandler
	in midi.Input
}

func (h *fakeInputHandler) OpenInput(conf string, in midi.Input) error {
	h.ev.add("open input %s", h.name)
	h.in = in
	return nil
}

// fakeTicker records calls to Delay() and advances time by the delay.
type fakeTicker struct {
	now    int64
	delays []int64
}

func (t *fakeTicker) Ticks() int64 {
	return t.now
}

func (t *fakeTicker) Delay(ms int64) {
	t.delays = append(t.delays, ms)
	t.now += ms
}

type fakeCapture struct {
	sysex []bool
	data  [][]byte
}

func (c *fakeCapture) AddMidi(sysex bool, data []byte) {
	c.sysex = append(c.sysex, sysex)
	c.data = append(c.data, data)
}

type notices []notifications.Notice

func (n *notices) Notify(notice notifications.Notice) error {
	*n = append(*n, notice)
	return nil
}

type harness struct {
	ev      *events
	out     *fakeHandler
	ticker  *fakeTicker
	seen    *notices
	session *midi.Session
}

// newHarness creates a session with a single handler named "fake", opened
// with the supplied configuration string.
func newHarness(t *testing.T, conf string) *harness {
	t.Helper()

	h := &harness{
		ev:     &events{},
		ticker: &fakeTicker{now: 1},
		seen:   &notices{},
	}
	h.out = &fakeHandler{name: "fake", ev: h.ev}

	env, err := environment.NewEnvironment(h.seen, nil)
	test.DemandSuccess(t, err)

	h.session = midi.NewSession(env, midi.NewRegistry(h.out), h.ticker)
	test.DemandSuccess(t, h.session.Open("fake", conf))
	test.DemandEquality(t, h.session.HandlerName(), "fake")

	return h
}

func (h *harness) send(slot int, data ...uint8) {
	for _, d := range data {
		h.session.RawOutByte(d, slot)
	}
}

// logContains returns true if the central log contains the string.
func logContains(s string) bool {
	w := &strings.Builder{}
	logger.Write(w)
	return strings.Contains(w.String(), s)
}
