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

package disney

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/hardware/ioport"
	"github.com/jetsetilly/dosaudio/hardware/preferences"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/notifications"
)

// Rate is the fixed playback rate of the DAC in Hz.
const Rate = 7000

// FifoCapacity is the number of samples the FIFO can hold.
const FifoCapacity = 16

// ChannelName is the name of the mixer channel.
const ChannelName = "DISNEY"

// the amount of emulated time represented by one frame.
const msPerFrame = 1000.0 / Rate

// MaxPort is the highest base port that leaves room for the status and
// control ports.
const MaxPort = 0xfffd

// the sample the FIFO is primed with.
const silence = 0x80

// the cutoff frequency of the low-pass filter. a gentle filter a little
// below the Nyquist frequency tames the aliasing but keeps the character of
// the DAC.
const (
	filterOrder  = 1
	filterCutoff = int(Rate * 0.45)
)

// Disney is the Disney Sound Source.
type Disney struct {
	env   *environment.Environment
	bus   ioport.Bus
	mix   *mixer.Mixer
	clock clocks.Source

	channel *mixer.Channel
	port    uint16

	// crit covers every field below it
	crit sync.Mutex

	// never empty. primed with the silence value
	fifo []uint8

	// frames rendered ahead of the mixer asking for them
	renderQueue []mixer.Frame

	// the emulated time up to which frames have been rendered
	lastRenderedMs float64

	status Status
	closed bool
}

// NewDisney is the preferred method of initialisation for the Disney type.
// The device is attached to the port bus and the mixer immediately. The base
// port and filter setting are taken from the environment's preferences.
func NewDisney(env *environment.Environment, bus ioport.Bus, mix *mixer.Mixer, clock clocks.Source) (*Disney, error) {
	dss := &Disney{
		env:   env,
		bus:   bus,
		mix:   mix,
		clock: clock,
		port:  basePort(env),
		fifo:  make([]uint8, 1, FifoCapacity),
	}
	dss.fifo[0] = silence
	dss.lastRenderedMs = clock.Now()

	dss.channel = mix.AddChannel(dss.PullFrames, Rate, ChannelName,
		mixer.Sleep, mixer.ReverbSend, mixer.ChorusSend, mixer.DigitalAudio)

	filter := env.Prefs.Disney.Filter.String()
	if filter == "on" {
		dss.channel.ConfigureLowPassFilter(filterOrder, filterCutoff)
		dss.channel.SetLowPassFilter(mixer.FilterOn)
	} else {
		if filter != "off" {
			logger.Logf(env, "disney", "invalid filter setting '%s', using off", filter)
		}
		dss.channel.SetLowPassFilter(mixer.FilterOff)
	}

	err := dss.install()
	if err != nil {
		mix.RemoveChannel(dss.channel)
		return nil, fmt.Errorf("disney: %w", err)
	}

	dss.status.SetPower(true)

	logger.Logf(env, "disney", "Disney Sound Source running at %dkHz on LPT1 port %03xh", Rate/1000, dss.port)
	env.Notify(notifications.NotifyDisneyAttached)

	return dss, nil
}

// the base port from the preferences. out of range values are replaced with
// the default port.
func basePort(env *environment.Environment) uint16 {
	port := env.Prefs.Disney.Port.Get().(int)
	if port < 0 || port > MaxPort {
		logger.Logf(env, "disney", "invalid port %#x, using %03xh", port, preferences.DisneyBasePort)
		return preferences.DisneyBasePort
	}
	return uint16(port)
}

func (dss *Disney) install() error {
	err := dss.bus.InstallWrite(dss.port, dss.writeData, ioport.Byte, 1)
	if err != nil {
		return err
	}

	err = dss.bus.InstallWrite(dss.port+2, dss.writeControl, ioport.Byte, 1)
	if err != nil {
		dss.bus.UninstallWrite(dss.port, 1)
		return err
	}

	err = dss.bus.InstallRead(dss.port+1, dss.readStatus, ioport.Byte, 2)
	if err != nil {
		dss.bus.UninstallWrite(dss.port, 1)
		dss.bus.UninstallWrite(dss.port+2, 1)
		return err
	}

	return nil
}

func (dss *Disney) String() string {
	dss.crit.Lock()
	defer dss.crit.Unlock()
	return fmt.Sprintf("port=%03xh fifo=%d queued=%d %s", dss.port, len(dss.fifo), len(dss.renderQueue), dss.status)
}

// Port returns the base port of the device.
func (dss *Disney) Port() uint16 {
	return dss.port
}

// Close detaches the device from the port bus and from the mixer. A call to
// PullFrames() that happens after Close() returns silence.
func (dss *Disney) Close() {
	logger.Logf(dss.env, "disney", "shutting down on LPT1 port %03xh", dss.port)

	dss.bus.UninstallRead(dss.port+1, 2)
	dss.bus.UninstallWrite(dss.port, 1)
	dss.bus.UninstallWrite(dss.port+2, 1)

	dss.crit.Lock()
	dss.fifo = dss.fifo[:0]
	dss.renderQueue = nil
	dss.status.SetPower(false)
	dss.closed = true
	dss.crit.Unlock()

	dss.channel.Enable(false)
	dss.mix.RemoveChannel(dss.channel)

	dss.env.Notify(notifications.NotifyDisneyDetached)
}

func (dss *Disney) isFull() bool {
	return len(dss.fifo) >= FifoCapacity
}

// render a single frame from the head of the FIFO. the head is only removed
// if it isn't the last sample. must be called with the lock held.
func (dss *Disney) render() mixer.Frame {
	s := lut[dss.fifo[0]]
	if len(dss.fifo) > 1 {
		dss.fifo = append(dss.fifo[:0], dss.fifo[1:]...)
	}
	return mixer.Frame{s, s}
}

// render frames until the cursor has caught up with the current emulated
// time. must be called with the lock held.
func (dss *Disney) renderUpToNow() {
	now := dss.clock.Now()

	// if the channel was sleeping there is nothing to catch up on
	if dss.channel.WakeUp() {
		dss.lastRenderedMs = now
		return
	}

	for dss.lastRenderedMs < now {
		dss.lastRenderedMs += msPerFrame
		dss.renderQueue = append(dss.renderQueue, dss.render())
	}
}

// WriteData writes a sample to the FIFO. The sample is dropped if the FIFO is
// full.
func (dss *Disney) WriteData(value uint8) {
	dss.crit.Lock()
	defer dss.crit.Unlock()

	if dss.closed {
		return
	}

	dss.renderUpToNow()
	if !dss.isFull() {
		dss.fifo = append(dss.fifo, value)
	}
}

// WriteControl strobes the device.
func (dss *Disney) WriteControl(value uint8) {
	dss.crit.Lock()
	defer dss.crit.Unlock()

	if dss.closed {
		return
	}

	dss.renderUpToNow()
}

// ReadStatus returns the value of the status register. Emulated time is not
// advanced.
func (dss *Disney) ReadStatus() Status {
	dss.crit.Lock()
	defer dss.crit.Unlock()

	dss.status.SetFifoFull(dss.isFull())
	return dss.status
}

func (dss *Disney) writeData(_ uint16, value uint32, _ ioport.Width) {
	dss.WriteData(uint8(value))
}

func (dss *Disney) writeControl(_ uint16, value uint32, _ ioport.Width) {
	dss.WriteControl(uint8(value))
}

func (dss *Disney) readStatus(_ uint16, _ ioport.Width) uint32 {
	return uint32(dss.ReadStatus())
}

// PullFrames returns exactly requested frames. Frames that have already been
// rendered are returned first. The remainder are rendered from the FIFO.
//
// It is the mixer.Callback for the device's channel.
func (dss *Disney) PullFrames(requested int) []mixer.Frame {
	frames := make([]mixer.Frame, requested)

	dss.crit.Lock()
	defer dss.crit.Unlock()

	if dss.closed {
		return frames
	}

	n := copy(frames, dss.renderQueue)
	dss.renderQueue = append(dss.renderQueue[:0], dss.renderQueue[n:]...)

	for i := n; i < requested; i++ {
		frames[i] = dss.render()
	}

	dss.lastRenderedMs = dss.clock.Now()

	return frames
}

// FifoLen returns the number of samples in the FIFO.
func (dss *Disney) FifoLen() int {
	dss.crit.Lock()
	defer dss.crit.Unlock()
	return len(dss.fifo)
}

// QueuedFrames returns the number of frames rendered but not yet pulled by
// the mixer.
func (dss *Disney) QueuedFrames() int {
	dss.crit.Lock()
	defer dss.crit.Unlock()
	return len(dss.renderQueue)
}
