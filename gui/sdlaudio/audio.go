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

// Package sdlaudio plays the output of a mixer.Mixer using SDL's queued audio
// interface. A background goroutine keeps the SDL queue topped up by pulling
// frames from the mixer.
package sdlaudio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/mixer"

	"github.com/veandco/go-sdl2/sdl"
)

// the buffer length is important to get right. too long and there is lag
// between the emulated device and what is heard. too short and the queue will
// run dry. the value has been discovered through trial and error and the
// precise value is not critical.
const bufferLength = 512

// bytes per frame. two channels of 16 bit signed samples
const frameSize = 4

// Audio outputs sound using SDL
type Audio struct {
	env  *environment.Environment
	mix  *mixer.Mixer
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	buffer []uint8

	quit chan bool
	done sync.WaitGroup
}

// NewAudio is the preferred method of initialisation for the Audio Type
func NewAudio(env *environment.Environment, mix *mixer.Mixer) (*Audio, error) {
	err := sdl.InitSubSystem(sdl.INIT_AUDIO)
	if err != nil {
		return nil, fmt.Errorf("sdlaudio: %w", err)
	}

	aud := &Audio{
		env:    env,
		mix:    mix,
		buffer: make([]uint8, bufferLength*frameSize),
		quit:   make(chan bool),
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(mix.Rate()),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  uint16(bufferLength),
	}

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return nil, fmt.Errorf("sdlaudio: %w", err)
	}

	if aud.spec.Freq != spec.Freq {
		logger.Logf(env, "sdlaudio", "device frequency is %dHz not %dHz", aud.spec.Freq, spec.Freq)
	}

	aud.done.Add(1)
	go aud.service()

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// keep at least two buffers queued at all times
func (aud *Audio) service() {
	defer aud.done.Done()

	period := time.Duration(float64(bufferLength) / float64(aud.mix.Rate()) * float64(time.Second) / 2)
	tck := time.NewTicker(period)
	defer tck.Stop()

	for {
		select {
		case <-aud.quit:
			return
		case <-tck.C:
			for sdl.GetQueuedAudioSize(aud.id) < uint32(len(aud.buffer)*2) {
				err := aud.queue()
				if err != nil {
					logger.Log(aud.env, "sdlaudio", err)
					break
				}
			}
		}
	}
}

func (aud *Audio) queue() error {
	Encode(aud.buffer, aud.mix.Mix(bufferLength))
	return sdl.QueueAudio(aud.id, aud.buffer)
}

// Encode frames into p as 16 bit little endian stereo samples. p must be at
// least four times the length of frames.
func Encode(p []uint8, frames []mixer.Frame) {
	for i, f := range frames {
		binary.LittleEndian.PutUint16(p[i*frameSize:], uint16(int16(f[0])))
		binary.LittleEndian.PutUint16(p[i*frameSize+2:], uint16(int16(f[1])))
	}
}

// Close stops playback and closes the audio device.
func (aud *Audio) Close() {
	close(aud.quit)
	aud.done.Wait()
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
