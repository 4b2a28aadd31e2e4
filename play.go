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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/dosaudio/gui/sdlaudio"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/hardware/ioport"
	"github.com/jetsetilly/dosaudio/hardware/peripherals/disney"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/modalflag"
	"github.com/jetsetilly/dosaudio/otoaudio"
	"github.com/jetsetilly/dosaudio/pcmload"
	"github.com/jetsetilly/dosaudio/performance"
	"github.com/jetsetilly/dosaudio/playback"
	"github.com/jetsetilly/dosaudio/wavwriter"
)

// the amount of time to wait after playback has finished, so that the FIFO
// and the audio buffers have time to drain
const drainTime = 200 * time.Millisecond

func play(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	output := md.AddString("audio", "OTO", "audio output: OTO, SDL")
	wav := md.AddString("wav", "", "render audio to wav file rather than playing it")
	profile := md.AddString("profile", "none", "run through profiler: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var filename string
	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("audio file required for %s mode", md)
	case 1:
		filename = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	return performance.RunProfiler(prf, "play", func() error {
		return playFile(sync, filename, *output, *wav)
	})
}

func playFile(sync *mainSync, filename string, output string, wav string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	if !env.Prefs.Disney.Enabled.Get().(bool) {
		return fmt.Errorf("the Disney Sound Source is disabled in the preferences")
	}

	pcm, err := pcmload.Load(env, filename)
	if err != nil {
		return err
	}
	samples := pcm.Resample(disney.Rate).Unsigned8()

	mix := mixer.NewMixer(env.Prefs.Audio.Rate.Get().(int))
	mix.SetVolume(float32(env.Prefs.Audio.Volume.Get().(float64)))

	bus := ioport.NewDispatch()

	// render to a wav file using emulated time
	if wav != "" {
		clk := &clocks.Manual{}

		dss, err := disney.NewDisney(env, bus, mix, clk)
		if err != nil {
			return err
		}
		defer dss.Close()

		aw, err := wavwriter.New(env, wav, mix.Rate())
		if err != nil {
			return err
		}

		prg := playback.NewProgram(env, bus, dss.Port(), samples)
		err = prg.Render(clk, mix, aw.Write)
		if err != nil {
			return err
		}

		return aw.Close()
	}

	// play in real time
	dss, err := disney.NewDisney(env, bus, mix, clocks.NewRealtime())
	if err != nil {
		return err
	}
	defer dss.Close()

	switch strings.ToUpper(output) {
	case "OTO":
		aud, err := otoaudio.NewAudio(env, mix)
		if err != nil {
			return err
		}
		defer aud.Close()
	case "SDL":
		aud, err := sdlaudio.NewAudio(env, mix)
		if err != nil {
			return err
		}
		defer aud.Close()
	default:
		return fmt.Errorf("unknown audio output: %s", output)
	}

	fmt.Printf("! playing %s (%.02fs)\n", filename, pcm.Duration())

	prg := playback.NewProgram(env, bus, dss.Port(), samples)
	err = prg.Run(sync.ctx)
	if err != nil {
		if errors.Is(err, sync.ctx.Err()) {
			return nil
		}
		return err
	}

	time.Sleep(drainTime)

	return nil
}
