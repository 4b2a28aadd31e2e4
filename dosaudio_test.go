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

package main

import (
	"strings"
	"testing"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/hardware/ioport"
	"github.com/jetsetilly/dosaudio/hardware/peripherals/disney"
	"github.com/jetsetilly/dosaudio/midi"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/playback"
	"github.com/jetsetilly/dosaudio/test"
)

func TestRegistry(t *testing.T) {
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)

	var w strings.Builder
	r := newRegistry(env, &w)
	test.ExpectEquality(t, r.String(), "gomidi, rawmidi, (serial), (trace), none")
	test.ExpectEquality(t, r.IsOptIn("trace"), true)
	test.ExpectEquality(t, r.IsOptIn("serial"), true)
}

func TestAutoNeverChoosesSerial(t *testing.T) {
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)

	var w strings.Builder
	session := midi.NewSession(env, newRegistry(env, &w), clocks.NewWall())
	defer session.Close()

	for _, device := range []string{"auto", "default", "nosuchdevice"} {
		test.DemandSuccess(t, session.Open(device, ""), device)
		name := session.HandlerName()
		test.ExpectInequality(t, name, "serial", device)
		test.ExpectInequality(t, name, "trace", device)
	}
	test.ExpectEquality(t, w.Len(), 0)
}

func BenchmarkPlayback(b *testing.B) {
	env, err := environment.NewEnvironment(nil, nil)
	if err != nil {
		b.Fatal(err)
	}

	samples := make([]uint8, disney.Rate)
	for i := range samples {
		samples[i] = uint8(i)
	}

	for b.Loop() {
		bus := ioport.NewDispatch()
		mix := mixer.NewMixer(44100)
		clk := &clocks.Manual{}

		dss, err := disney.NewDisney(env, bus, mix, clk)
		if err != nil {
			b.Fatal(err)
		}

		prg := playback.NewProgram(env, bus, dss.Port(), samples)
		err = prg.Render(clk, mix, func([]mixer.Frame) error { return nil })
		if err != nil {
			b.Fatal(err)
		}
		dss.Close()
	}
}
