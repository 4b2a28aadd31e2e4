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

// Package otoaudio plays the output of a mixer.Mixer through the host's audio
// device using the oto library. The mixer is pulled by oto's playback
// goroutine whenever the device needs more data.
package otoaudio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/mixer"
)

// bytes per frame. two channels of 32 bit float.
const frameSize = 8

// the buffer size requested from oto. short buffers keep latency low which
// matters for a device that is fed by polling
const bufferSize = 40 * time.Millisecond

// Reader adapts a mixer.Mixer to the io.Reader interface. Frames are written
// as 32 bit little endian floats, left channel first.
type Reader struct {
	mix *mixer.Mixer
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(mix *mixer.Mixer) *Reader {
	return &Reader{mix: mix}
}

// Read implements the io.Reader interface. The length of p is rounded down to
// a whole number of frames. Read never fails.
func (r *Reader) Read(p []byte) (int, error) {
	n := len(p) / frameSize
	if n == 0 {
		return 0, nil
	}

	frames := r.mix.Mix(n)
	for i, f := range frames {
		o := i * frameSize
		binary.LittleEndian.PutUint32(p[o:], math.Float32bits(f[0]/32768))
		binary.LittleEndian.PutUint32(p[o+4:], math.Float32bits(f[1]/32768))
	}

	return n * frameSize, nil
}

// the oto library allows only one context for the lifetime of the program
var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxRate int
	ctxErr  error
)

func sharedContext(rate int) (*oto.Context, error) {
	ctxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		}

		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(op)
		if ctxErr != nil {
			return
		}
		<-ready
		ctxRate = rate
	})

	if ctxErr != nil {
		return nil, ctxErr
	}
	if ctxRate != rate {
		return nil, fmt.Errorf("otoaudio: context already running at %dHz", ctxRate)
	}
	return ctx, nil
}

// Audio outputs sound using oto.
type Audio struct {
	env    *environment.Environment
	player *oto.Player
}

// NewAudio is the preferred method of initialisation for the Audio type.
// Playback starts immediately.
func NewAudio(env *environment.Environment, mix *mixer.Mixer) (*Audio, error) {
	c, err := sharedContext(mix.Rate())
	if err != nil {
		return nil, fmt.Errorf("otoaudio: %w", err)
	}

	aud := &Audio{
		env:    env,
		player: c.NewPlayer(NewReader(mix)),
	}
	aud.player.Play()

	logger.Logf(env, "otoaudio", "playing at %dHz", mix.Rate())

	return aud, nil
}

// Close stops playback.
func (aud *Audio) Close() error {
	err := aud.player.Close()
	if err != nil {
		return fmt.Errorf("otoaudio: %w", err)
	}
	return nil
}
