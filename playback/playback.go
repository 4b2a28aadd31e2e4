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

// Package playback is a program for the Disney Sound Source that behaves the
// way a DOS program would. It polls the status port and while the FIFO has
// room it writes the next sample to the data port.
//
// The program only talks to the device through the port bus. It has no
// knowledge of the device beyond the port layout and the meaning of the FIFO
// full bit.
package playback

import (
	"context"
	"time"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/hardware/ioport"
	"github.com/jetsetilly/dosaudio/hardware/peripherals/disney"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/notifications"
)

// Program writes samples to the device.
type Program struct {
	env  *environment.Environment
	io   ioport.IO
	base uint16

	samples []uint8
	pos     int
}

// NewProgram is the preferred method of initialisation for the Program type.
// The samples should be unsigned 8 bit values at the rate of the device.
func NewProgram(env *environment.Environment, io ioport.IO, base uint16, samples []uint8) *Program {
	return &Program{
		env:     env,
		io:      io,
		base:    base,
		samples: samples,
	}
}

// Step polls the device and writes samples until the FIFO is full or there
// are no more samples. Returns the number of samples written.
func (prg *Program) Step() int {
	var n int
	for prg.pos < len(prg.samples) {
		status := disney.Status(prg.io.Read(prg.base+1, ioport.Byte))
		if status.FifoFull() {
			break
		}
		prg.io.Write(prg.base, uint32(prg.samples[prg.pos]), ioport.Byte)
		prg.io.Write(prg.base+2, 0x0c, ioport.Byte)
		prg.pos++
		n++
	}
	return n
}

// Done returns true when all samples have been written.
func (prg *Program) Done() bool {
	return prg.pos >= len(prg.samples)
}

// Position returns the number of samples written so far.
func (prg *Program) Position() int {
	return prg.pos
}

// Run the program in real time until it is done or until the context is
// cancelled. The device is polled every millisecond.
func (prg *Program) Run(ctx context.Context) error {
	tck := time.NewTicker(time.Millisecond)
	defer tck.Stop()

	for !prg.Done() {
		prg.Step()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tck.C:
		}
	}

	logger.Logf(prg.env, "playback", "%d samples written", prg.pos)
	prg.env.Notify(notifications.NotifyPlaybackEnded)

	return nil
}

// the period of emulated time between each poll of the device when rendering
const renderPeriodMs = 1.0

// the amount of time rendered after the program has finished so that the
// contents of the FIFO are heard
const renderTailMs = 10.0

// Render runs the program against emulated time rather than real time. The
// mixer is pulled after every step and the frames are passed to the output
// function.
func (prg *Program) Render(clk *clocks.Manual, mix *mixer.Mixer, output func([]mixer.Frame) error) error {
	// frames per step with the fractional part carried forward
	perStep := renderPeriodMs * float64(mix.Rate()) / 1000
	var carry float64

	step := func() error {
		clk.Advance(renderPeriodMs)
		carry += perStep
		n := int(carry)
		carry -= float64(n)
		return output(mix.Mix(n))
	}

	for !prg.Done() {
		prg.Step()
		if err := step(); err != nil {
			return err
		}
	}

	for t := 0.0; t < renderTailMs; t += renderPeriodMs {
		if err := step(); err != nil {
			return err
		}
	}

	logger.Logf(prg.env, "playback", "%d samples rendered", prg.pos)
	prg.env.Notify(notifications.NotifyPlaybackEnded)

	return nil
}
