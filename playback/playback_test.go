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

package playback_test

import (
	"context"
	"testing"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/hardware/ioport"
	"github.com/jetsetilly/dosaudio/hardware/peripherals/disney"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/notifications"
	"github.com/jetsetilly/dosaudio/playback"
	"github.com/jetsetilly/dosaudio/test"
)

type notices []notifications.Notice

func (n *notices) Notify(notice notifications.Notice) error {
	*n = append(*n, notice)
	return nil
}

type harness struct {
	env   *environment.Environment
	bus   *ioport.Dispatch
	mix   *mixer.Mixer
	clock *clocks.Manual
	dss   *disney.Disney
	seen  *notices
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		bus:   ioport.NewDispatch(),
		mix:   mixer.NewMixer(disney.Rate),
		clock: &clocks.Manual{},
		seen:  &notices{},
	}

	var err error
	h.env, err = environment.NewEnvironment(h.seen, nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, h.env.Prefs.Disney.Filter.Set("off"))

	h.dss, err = disney.NewDisney(h.env, h.bus, h.mix, h.clock)
	test.DemandSuccess(t, err)

	return h
}

func samples(n int) []uint8 {
	s := make([]uint8, n)
	for i := range s {
		s[i] = uint8(i*2 + 1)
	}
	return s
}

func TestStep(t *testing.T) {
	h := newHarness(t)
	prg := playback.NewProgram(h.env, h.bus, h.dss.Port(), samples(100))

	// the FIFO starts with the single silence sample
	test.ExpectEquality(t, prg.Step(), disney.FifoCapacity-1)
	test.ExpectEquality(t, h.dss.FifoLen(), disney.FifoCapacity)
	test.ExpectEquality(t, h.dss.ReadStatus().FifoFull(), true)

	// nothing more can be written until time passes
	test.ExpectEquality(t, prg.Step(), 0)
	test.ExpectEquality(t, prg.Done(), false)

	h.clock.Advance(1)
	h.mix.Mix(7)
	test.ExpectEquality(t, prg.Step(), 7)
	test.ExpectEquality(t, prg.Position(), disney.FifoCapacity-1+7)
}

func TestWrongPort(t *testing.T) {
	h := newHarness(t)

	// the status port of an empty address reads as 0xff, which has the FIFO
	// full bit set
	prg := playback.NewProgram(h.env, h.bus, 0x278, samples(10))
	test.ExpectEquality(t, prg.Step(), 0)
}

func TestRender(t *testing.T) {
	h := newHarness(t)
	s := samples(100)
	prg := playback.NewProgram(h.env, h.bus, h.dss.Port(), s)

	var out []mixer.Frame
	err := prg.Render(h.clock, h.mix, func(f []mixer.Frame) error {
		out = append(out, f...)
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, prg.Done(), true)
	test.ExpectEquality(t, prg.Position(), len(s))

	// the first two frames are the held frame of the mixer channel and the
	// silence sample that primed the FIFO
	test.DemandEquality(t, len(out) > len(s)+2, true)
	test.ExpectEquality(t, out[0], mixer.Frame{})
	test.ExpectEquality(t, out[1], mixer.Frame{})

	for i, v := range s {
		e := float32((int(v) - 0x80) << 8)
		test.ExpectEquality(t, out[i+2], mixer.Frame{e, e}, i)
	}

	test.DemandEquality(t, len(*h.seen) > 0, true)
	test.ExpectEquality(t, (*h.seen)[len(*h.seen)-1], notifications.NotifyPlaybackEnded)
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(t)
	prg := playback.NewProgram(h.env, h.bus, h.dss.Port(), samples(100))

	// the clock never moves so the program can never finish
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := prg.Run(ctx)
	test.ExpectEquality(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	h := newHarness(t)
	prg := playback.NewProgram(h.env, h.bus, h.dss.Port(), nil)
	test.ExpectSuccess(t, prg.Run(context.Background()))
}
