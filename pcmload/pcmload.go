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

// Package pcmload loads WAV and MP3 files and prepares them for playback
// through an 8-bit DAC. The audio is reduced to a single channel, resampled
// to the requested rate and converted to unsigned 8-bit samples, where 0x80 is
// silence.
package pcmload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/dosaudio/curated"
	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/logger"
)

// Sentinal error returned when the file type is not recognised.
const UnsupportedFormat = "pcmload: unsupported format (%s)"

const logTag = "pcmload"

// PCM is mono audio data.
type PCM struct {
	SampleRate float64

	// data is normalised to the range -1.0 to 1.0. data is taken from the
	// left channel in the case of stereo source files
	Data []float32
}

// Duration of the audio in seconds.
func (p PCM) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(len(p.Data)) / p.SampleRate
}

// Load the named file. The file type is decided by the file extension.
func Load(env *environment.Environment, filename string) (PCM, error) {
	f, err := os.Open(filename)
	if err != nil {
		return PCM{}, fmt.Errorf("pcmload: %w", err)
	}
	defer f.Close()

	return Decode(env, f, filepath.Ext(filename))
}

// Decode audio data of the type indicated by the extension. The extension
// should include the leading period.
func Decode(env *environment.Environment, r io.ReadSeeker, ext string) (PCM, error) {
	var p PCM
	var err error

	switch strings.ToLower(ext) {
	case ".wav":
		p, err = decodeWAV(env, r)
	case ".mp3":
		p, err = decodeMP3(env, r)
	default:
		return PCM{}, curated.Errorf(UnsupportedFormat, ext)
	}
	if err != nil {
		return PCM{}, err
	}

	logger.Logf(env, logTag, "sample rate: %0.2fHz", p.SampleRate)
	logger.Logf(env, logTag, "total time: %.02fs", p.Duration())

	return p, nil
}

func decodeWAV(env *environment.Environment, r io.ReadSeeker) (PCM, error) {
	var p PCM

	dec := wav.NewDecoder(r)
	if dec == nil {
		return p, fmt.Errorf("wav: error decoding")
	}

	if !dec.IsValidFile() {
		return p, fmt.Errorf("wav: not a valid wav file")
	}

	logger.Log(env, logTag, "loading from wav file")

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return p, fmt.Errorf("wav: %w", err)
	}
	if dec.NumChans == 0 {
		return p, fmt.Errorf("wav: no channels")
	}

	// the float buffer from go-audio is not normalised so the range of the
	// source bit depth is used for that
	scale := float32(int(1) << (dec.BitDepth - 1))
	if dec.BitDepth == 8 {
		// 8 bit wav files are unsigned
		for i := range buf.Data {
			buf.Data[i] -= 128
		}
	}

	// copy first channel only of data stream
	p.Data = make([]float32, 0, len(buf.Data)/int(dec.NumChans))
	for i := 0; i < len(buf.Data); i += int(dec.NumChans) {
		p.Data = append(p.Data, float32(buf.Data[i])/scale)
	}

	p.SampleRate = float64(dec.SampleRate)

	return p, nil
}

func decodeMP3(env *environment.Environment, r io.Reader) (PCM, error) {
	var p PCM

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return p, fmt.Errorf("mp3: %w", err)
	}

	logger.Log(env, logTag, "loading from mp3 file")

	chunk := make([]byte, 4096)
	for err != io.EOF {
		var chunkLen int
		chunkLen, err = dec.Read(chunk)
		if err != nil && err != io.EOF {
			return p, fmt.Errorf("mp3: %w", err)
		}

		// the stream is always 16 bit little endian with two channels, even
		// if the source is single channel. the index increment of four skips
		// over the right channel
		for i := 0; i+1 < chunkLen; i += 4 {
			f := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			p.Data = append(p.Data, float32(f)/32768)
		}
	}

	p.SampleRate = float64(dec.SampleRate())

	return p, nil
}

// Resample the PCM data to the specified rate using linear interpolation.
func (p PCM) Resample(rate float64) PCM {
	if rate <= 0 || p.SampleRate <= 0 || len(p.Data) == 0 {
		return PCM{SampleRate: rate}
	}
	if rate == p.SampleRate {
		return p
	}

	step := p.SampleRate / rate
	n := int(float64(len(p.Data)) / step)

	r := PCM{
		SampleRate: rate,
		Data:       make([]float32, n),
	}

	last := len(p.Data) - 1
	for i := range r.Data {
		pos := float64(i) * step
		idx := int(pos)
		frac := float32(pos - float64(idx))
		a := p.Data[min(idx, last)]
		b := p.Data[min(idx+1, last)]
		r.Data[i] = a + (b-a)*frac
	}

	return r
}

// Unsigned8 converts the data to unsigned 8 bit samples.
func (p PCM) Unsigned8() []uint8 {
	u := make([]uint8, len(p.Data))
	for i, v := range p.Data {
		s := int(v*128) + 0x80
		u[i] = uint8(min(max(s, 0), 0xff))
	}
	return u
}
