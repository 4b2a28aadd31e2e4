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

package disney_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/hardware/ioport"
	"github.com/jetsetilly/dosaudio/hardware/peripherals/disney"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/notifications"
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

func newHarness(t *testing.T, filter string) *harness {
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
	test.DemandSuccess(t, h.env.Prefs.Disney.Filter.Set(filter))

	h.dss, err = disney.NewDisney(h.env, h.bus, h.mix, h.clock)
	test.DemandSuccess(t, err)

	return h
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, "on")

	test.ExpectEquality(t, h.dss.FifoLen(), 1)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)
	test.ExpectEquality(t, h.dss.Port(), uint16(0x378))

	st := h.dss.ReadStatus()
	test.ExpectEquality(t, st.Power(), uint8(0b1111))
	test.ExpectFailure(t, st.FifoFull())
	test.ExpectEquality(t, uint8(st), uint8(0x0f))

	test.DemandEquality(t, len(*h.seen), 1)
	test.ExpectEquality(t, (*h.seen)[0], notifications.NotifyDisneyAttached)
}

func TestFifoOverflow(t *testing.T) {
	h := newHarness(t, "off")

	// the primed silence value and 15 writes fill the FIFO. the remaining
	// writes are dropped
	for i := 0; i < 17; i++ {
		h.dss.WriteData(uint8(i))
	}
	test.ExpectEquality(t, h.dss.FifoLen(), disney.FifoCapacity)

	// time hasn't moved so nothing has been rendered
	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)

	st := h.dss.ReadStatus()
	test.ExpectSuccess(t, st.FifoFull())
	test.ExpectEquality(t, uint8(st), uint8(0x4f))

	// draining the FIFO clears the flag
	_ = h.dss.PullFrames(1)
	test.ExpectEquality(t, h.dss.FifoLen(), disney.FifoCapacity-1)
	test.ExpectFailure(t, h.dss.ReadStatus().FifoFull())
}

func TestPullFrames(t *testing.T) {
	h := newHarness(t, "off")

	for _, n := range []int{0, 1, 5, 100, 1000} {
		test.ExpectEquality(t, len(h.dss.PullFrames(n)), n, n)
	}

	// the FIFO is never emptied however many frames are pulled
	for i := 0; i < 10; i++ {
		h.dss.WriteData(0xff)
	}
	test.ExpectEquality(t, h.dss.FifoLen(), 11)

	frames := h.dss.PullFrames(20)
	test.ExpectEquality(t, h.dss.FifoLen(), 1)

	// the last sample is held
	test.ExpectEquality(t, frames[0], mixer.Frame{0, 0})
	test.ExpectEquality(t, frames[1], mixer.Frame{32512, 32512})
	test.ExpectEquality(t, frames[19], mixer.Frame{32512, 32512})
}

func TestRenderQueueOrder(t *testing.T) {
	h := newHarness(t, "off")

	h.dss.WriteData(0xff)

	// half a millisecond is between three and four frames. the cursor
	// overshoots so four frames are rendered
	h.clock.Advance(0.5)
	h.dss.WriteData(0x00)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 4)

	frames := h.dss.PullFrames(6)
	test.DemandEquality(t, len(frames), 6)

	// queued frames come first and in order
	test.ExpectEquality(t, frames[0], mixer.Frame{0, 0})
	test.ExpectEquality(t, frames[1], mixer.Frame{32512, 32512})
	test.ExpectEquality(t, frames[2], mixer.Frame{32512, 32512})
	test.ExpectEquality(t, frames[3], mixer.Frame{32512, 32512})

	// remaining frames are rendered from the FIFO
	test.ExpectEquality(t, frames[4], mixer.Frame{32512, 32512})
	test.ExpectEquality(t, frames[5], mixer.Frame{-32768, -32768})

	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)
}

func TestPartialDrain(t *testing.T) {
	h := newHarness(t, "off")

	h.dss.WriteData(0x90)
	h.clock.Advance(0.5)
	h.dss.WriteControl(0)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 4)

	// pulling fewer frames than are queued leaves the rest for later
	frames := h.dss.PullFrames(2)
	test.ExpectEquality(t, frames[1], mixer.Frame{4096, 4096})
	test.ExpectEquality(t, h.dss.QueuedFrames(), 2)

	// the cursor is now current so a write without a time change renders
	// nothing
	h.dss.WriteControl(0)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 2)
}

func TestStatusDoesNotRender(t *testing.T) {
	h := newHarness(t, "off")

	h.clock.Advance(10.05)
	_ = h.dss.ReadStatus()
	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)

	h.dss.WriteControl(0)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 71)
}

func TestWakeUp(t *testing.T) {
	h := newHarness(t, "off")

	ch := h.mix.FindChannel(disney.ChannelName)
	if ch == nil {
		t.Fatalf("no mixer channel named %s", disney.ChannelName)
	}

	// mixing without any port activity puts the channel to sleep
	_ = h.mix.Mix(disney.Rate)
	test.ExpectSuccess(t, ch.IsSleeping())

	// the first write after sleeping resets the cursor without rendering
	h.clock.Advance(1000.0)
	h.dss.WriteData(0x40)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)
	test.ExpectFailure(t, ch.IsSleeping())

	// and normal catch-up resumes afterwards
	h.clock.Advance(0.5)
	h.dss.WriteControl(0)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 4)
}

func TestPorts(t *testing.T) {
	h := newHarness(t, "off")

	h.bus.Write(0x378, 0x12, ioport.Byte)
	test.ExpectEquality(t, h.dss.FifoLen(), 2)

	// status is readable on the two ports following the data port
	test.ExpectEquality(t, h.bus.Read(0x379, ioport.Byte), uint32(0x0f))
	test.ExpectEquality(t, h.bus.Read(0x37a, ioport.Byte), uint32(0x0f))

	// control port renders but doesn't affect the FIFO
	h.clock.Advance(0.5)
	h.bus.Write(0x37a, 0x01, ioport.Byte)
	test.ExpectEquality(t, h.dss.FifoLen(), 1)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 4)

	// only byte access is supported
	h.bus.Write(0x378, 0x12, ioport.Word)
	test.ExpectEquality(t, h.dss.FifoLen(), 1)

	// a second device can't be attached to the same port
	_, err := disney.NewDisney(h.env, h.bus, h.mix, h.clock)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, h.mix.FindChannel(disney.ChannelName) != nil, true)
}

func TestClose(t *testing.T) {
	h := newHarness(t, "off")

	h.dss.WriteData(0xff)
	h.clock.Advance(1.0)
	h.dss.WriteData(0xff)

	h.dss.Close()

	test.ExpectEquality(t, h.dss.FifoLen(), 0)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)
	test.ExpectEquality(t, h.dss.ReadStatus().Power(), uint8(0))

	// ports are no longer mapped
	test.ExpectEquality(t, h.bus.Read(0x379, ioport.Byte), uint32(0xff))

	// pulling after close returns silence
	frames := h.dss.PullFrames(8)
	test.DemandEquality(t, len(frames), 8)
	test.ExpectEquality(t, frames[7], mixer.Frame{0, 0})

	// writing after close is ignored
	h.dss.WriteData(0x10)
	test.ExpectEquality(t, h.dss.FifoLen(), 0)

	test.ExpectEquality(t, h.mix.FindChannel(disney.ChannelName), (*mixer.Channel)(nil))
	test.ExpectEquality(t, (*h.seen)[len(*h.seen)-1], notifications.NotifyDisneyDetached)

	// the port is free for a new device
	_, err := disney.NewDisney(h.env, h.bus, h.mix, h.clock)
	test.ExpectSuccess(t, err)
}

func TestFilterPreference(t *testing.T) {
	h := newHarness(t, "on")
	state, order, cutoff := h.mix.FindChannel(disney.ChannelName).LowPassFilter()
	test.ExpectEquality(t, state, mixer.FilterOn)
	test.ExpectEquality(t, order, 1)
	test.ExpectEquality(t, cutoff, 3150)

	h = newHarness(t, "off")
	state, _, _ = h.mix.FindChannel(disney.ChannelName).LowPassFilter()
	test.ExpectEquality(t, state, mixer.FilterOff)

	// invalid values are logged and treated as off
	logger.Clear()
	h = newHarness(t, "crunchy")
	state, _, _ = h.mix.FindChannel(disney.ChannelName).LowPassFilter()
	test.ExpectEquality(t, state, mixer.FilterOff)

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "invalid filter setting 'crunchy', using off"))
}

func TestPortPreference(t *testing.T) {
	for _, port := range []int{0xffff, -1, 0x10378, disney.MaxPort + 1} {
		env, err := environment.NewEnvironment(nil, nil)
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, env.Prefs.Disney.Port.Set(port))

		logger.Clear()
		bus := ioport.NewDispatch()
		dss, err := disney.NewDisney(env, bus, mixer.NewMixer(disney.Rate), &clocks.Manual{})
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, dss.Port(), uint16(0x378), port)

		// the status register is where it should be and nothing wrapped round
		// to the bottom of the port space
		test.ExpectEquality(t, bus.Read(0x379, ioport.Byte), uint32(0x0f), port)
		test.ExpectEquality(t, bus.Read(0x0000, ioport.Byte), uint32(0xff), port)
		test.ExpectEquality(t, bus.Read(0x0001, ioport.Byte), uint32(0xff), port)

		w := &strings.Builder{}
		logger.Write(w)
		test.ExpectSuccess(t, strings.Contains(w.String(), "invalid port"), port)
		dss.Close()
	}

	// the highest valid port is accepted
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, env.Prefs.Disney.Port.Set(disney.MaxPort))
	bus := ioport.NewDispatch()
	dss, err := disney.NewDisney(env, bus, mixer.NewMixer(disney.Rate), &clocks.Manual{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dss.Port(), uint16(disney.MaxPort))
	test.ExpectEquality(t, bus.Read(0xfffe, ioport.Byte), uint32(0x0f))
	test.ExpectEquality(t, bus.Read(0xffff, ioport.Byte), uint32(0x0f))
}

func TestCloseDuringMix(t *testing.T) {
	h := newHarness(t, "on")

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			h.clock.Advance(0.1)
			h.bus.Write(0x378, uint32(i&0xff), ioport.Byte)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			frames := h.mix.Mix(64)
			test.ExpectEquality(t, len(frames), 64)
			_ = h.dss.PullFrames(16)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			h.clock.Advance(0.1)
			_ = h.dss.PullFrames(8)
		}
		h.dss.Close()
	}()

	wg.Wait()

	test.ExpectEquality(t, h.dss.FifoLen(), 0)
	test.ExpectEquality(t, h.dss.QueuedFrames(), 0)
	test.ExpectEquality(t, h.mix.FindChannel(disney.ChannelName), (*mixer.Channel)(nil))
	for _, f := range h.dss.PullFrames(4) {
		test.ExpectEquality(t, f, mixer.Frame{0, 0})
	}
}

func TestConcurrentAccess(t *testing.T) {
	h := newHarness(t, "on")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			h.clock.Advance(0.1)
			h.bus.Write(0x378, uint32(i&0xff), ioport.Byte)
			_ = h.bus.Read(0x379, ioport.Byte)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			frames := h.mix.Mix(64)
			test.ExpectEquality(t, len(frames), 64)
		}
	}()

	wg.Wait()

	n := h.dss.FifoLen()
	test.ExpectSuccess(t, n >= 1 && n <= disney.FifoCapacity)
}
