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

package gomidi_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/midi"
	"github.com/jetsetilly/dosaudio/midi/handlers/gomidi"
	"github.com/jetsetilly/dosaudio/test"

	"gitlab.com/gomidi/midi/v2/drivers"
)

type fakePort struct {
	name   string
	number int
	open   bool
}

func (p *fakePort) Open() error {
	p.open = true
	return nil
}

func (p *fakePort) Close() error {
	p.open = false
	return nil
}

func (p *fakePort) IsOpen() bool {
	return p.open
}

func (p *fakePort) Number() int {
	return p.number
}

func (p *fakePort) String() string {
	return p.name
}

func (p *fakePort) Underlying() interface{} {
	return p
}

type fakeOut struct {
	fakePort
	sent [][]byte
}

func (o *fakeOut) Send(data []byte) error {
	if !o.open {
		return fmt.Errorf("port not open")
	}
	o.sent = append(o.sent, append([]byte(nil), data...))
	return nil
}

type fakeIn struct {
	fakePort
	recv    func([]byte, int32)
	stopped bool
}

func (i *fakeIn) Listen(recv func([]byte, int32), _ drivers.ListenConfig) (func(), error) {
	i.recv = recv
	return func() { i.stopped = true }, nil
}

type fakeDriver struct {
	outs []*fakeOut
	ins  []*fakeIn
}

func (d *fakeDriver) Ins() ([]drivers.In, error) {
	var r []drivers.In
	for _, i := range d.ins {
		r = append(r, i)
	}
	return r, nil
}

func (d *fakeDriver) Outs() ([]drivers.Out, error) {
	var r []drivers.Out
	for _, o := range d.outs {
		r = append(r, o)
	}
	return r, nil
}

func (d *fakeDriver) String() string {
	return "fake"
}

func (d *fakeDriver) Close() error {
	return nil
}

func newDriver() *fakeDriver {
	return &fakeDriver{
		outs: []*fakeOut{
			{fakePort: fakePort{name: "Midi Through Port-0", number: 0}},
			{fakePort: fakePort{name: "MT-32 Synth", number: 1}},
			{fakePort: fakePort{name: "FluidSynth", number: 2}},
		},
		ins: []*fakeIn{
			{fakePort: fakePort{name: "Keyboard In", number: 0}},
		},
	}
}

type fakeInput struct {
	msgs   [][]byte
	sysexs [][]byte
}

func (f *fakeInput) InputMsg(msg []byte) {
	f.msgs = append(f.msgs, append([]byte(nil), msg...))
}

func (f *fakeInput) InputSysex(buf []byte, abort bool) int {
	f.sysexs = append(f.sysexs, append([]byte(nil), buf...))
	return 0
}

func TestPortSelection(t *testing.T) {
	env := newEnv(t)

	tests := []struct {
		conf string
		port int
	}{
		{"", 0},
		{"1", 1},
		{"2", 2},
		{"7", 0},
		{"-1", 0},
		{"mt-32", 1},
		{"FLUID", 2},
		{"nothing like this", 0},
	}

	for _, tt := range tests {
		drv := newDriver()
		h := gomidi.NewHandler(env, drv)
		test.DemandSuccess(t, h.Open(tt.conf))

		h.PlayMsg([]byte{0x90, 0x3c, 0x7f})
		for i, o := range drv.outs {
			if i == tt.port {
				test.ExpectEquality(t, len(o.sent), 1)
			} else {
				test.ExpectEquality(t, len(o.sent), 0)
			}
		}
		h.Close()
		test.ExpectEquality(t, drv.outs[tt.port].open, false)
	}
}

func TestNoPorts(t *testing.T) {
	env := newEnv(t)
	h := gomidi.NewHandler(env, &fakeDriver{})
	test.ExpectFailure(t, h.Open(""))

	// playing on an unopened handler is ignored
	h.PlayMsg([]byte{0x90, 0x3c, 0x7f})
	h.Close()
}

func TestPlay(t *testing.T) {
	env := newEnv(t)
	drv := newDriver()
	h := gomidi.NewHandler(env, drv)
	test.ExpectEquality(t, h.Name(), gomidi.Name)
	test.DemandSuccess(t, h.Open("0"))

	msg := []byte{0xc0, 0x05}
	h.PlayMsg(msg)
	msg[1] = 0x06

	sysex := []byte{0xf0, 0x41, 0x10, 0x16, 0x12, 0x7f, 0x00, 0x00, 0x00, 0x01, 0xf7}
	h.PlaySysex(sysex)

	o := drv.outs[0]
	test.DemandEquality(t, len(o.sent), 2)
	test.ExpectEquality(t, bytes.Equal(o.sent[0], []byte{0xc0, 0x05}), true)
	test.ExpectEquality(t, bytes.Equal(o.sent[1], sysex), true)
}

func TestInput(t *testing.T) {
	env := newEnv(t)
	drv := newDriver()
	h := gomidi.NewHandler(env, drv)

	var in fakeInput
	test.DemandSuccess(t, h.OpenInput("", &in))
	test.DemandEquality(t, drv.ins[0].recv != nil, true)

	drv.ins[0].recv([]byte{0x90, 0x3c, 0x7f}, 0)
	drv.ins[0].recv([]byte{0xf0, 0x7e, 0x7f, 0x09, 0x01, 0xf7}, 10)
	drv.ins[0].recv([]byte{}, 20)

	test.ExpectEquality(t, len(in.msgs), 1)
	test.ExpectEquality(t, len(in.sysexs), 1)

	h.Close()
	test.ExpectEquality(t, drv.ins[0].stopped, true)
	test.ExpectEquality(t, drv.ins[0].open, false)
}

func TestListAll(t *testing.T) {
	env := newEnv(t)
	h := gomidi.NewHandler(env, newDriver())

	var b bytes.Buffer
	test.ExpectEquality(t, h.ListAll(&b), midi.ListOK)
	test.ExpectEquality(t, b.String(), "  0: Midi Through Port-0\n  1: MT-32 Synth\n  2: FluidSynth\n")

	b.Reset()
	h = gomidi.NewHandler(env, &fakeDriver{})
	test.ExpectEquality(t, h.ListAll(&b), midi.ListOK)
	test.ExpectEquality(t, b.String(), "  no output ports\n")
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)
	return env
}
