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

// Package wavwriter allows writing of mixer output to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when Close() is called. It is therefore only suitable for short recordings
// and for testing purposes.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/mixer"
)

// the WAV file is always 16 bit stereo
const (
	bitDepth    = 16
	numChannels = 2
)

// WavWriter collects frames from the mixer.
type WavWriter struct {
	env      *environment.Environment
	filename string
	rate     int
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(env *environment.Environment, filename string, rate int) (*WavWriter, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("wavwriter: bad sample rate (%d)", rate)
	}

	aw := &WavWriter{
		env:      env,
		filename: filename,
		rate:     rate,
		buffer:   make([]int, 0),
	}

	return aw, nil
}

// Write frames to the buffer. Frame values are expected to be in the range of
// a 16 bit sample, as returned by mixer.Mix().
func (aw *WavWriter) Write(frames []mixer.Frame) error {
	for _, f := range frames {
		aw.buffer = append(aw.buffer, int(f[0]), int(f[1]))
	}
	return nil
}

// Len returns the number of frames written.
func (aw *WavWriter) Len() int {
	return len(aw.buffer) / numChannels
}

// Close writes the buffered audio to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.rate, bitDepth, numChannels, 1)
	if enc == nil {
		return fmt.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(aw.env, "wavwriter", "writing audio to %s", aw.filename)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.rate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	err = enc.Write(buf)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	return nil
}
