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

package mixer

import (
	"sync"
)

// Mixer combines the output of any number of channels.
type Mixer struct {
	crit     sync.Mutex
	rate     int
	volume   float32
	channels []*Channel
}

// NewMixer is the preferred method of initialisation for the Mixer type. The
// rate argument is the output rate in Hz.
func NewMixer(rate int) *Mixer {
	return &Mixer{
		rate:   rate,
		volume: 1.0,
	}
}

// Rate returns the output rate of the mixer.
func (m *Mixer) Rate() int {
	return m.rate
}

// SetVolume sets the master volume. Values are clamped to the range 0.0 to
// 1.0.
func (m *Mixer) SetVolume(volume float32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.volume = min(max(volume, 0.0), 1.0)
}

// AddChannel creates a new channel. The callback will be called with the
// number of frames required at the specified rate.
func (m *Mixer) AddChannel(callback Callback, rate int, name string, features ...Feature) *Channel {
	ch := newChannel(callback, rate, name, features)

	m.crit.Lock()
	defer m.crit.Unlock()
	m.channels = append(m.channels, ch)

	return ch
}

// RemoveChannel removes the channel from the mixer. The callback for the
// channel will not be called once this function has returned unless a Mix()
// was already in progress.
func (m *Mixer) RemoveChannel(ch *Channel) {
	m.crit.Lock()
	defer m.crit.Unlock()

	for i, c := range m.channels {
		if c == ch {
			m.channels = append(m.channels[:i], m.channels[i+1:]...)
			return
		}
	}
}

// FindChannel returns the named channel or nil if it does not exist.
func (m *Mixer) FindChannel(name string) *Channel {
	m.crit.Lock()
	defer m.crit.Unlock()

	for _, c := range m.channels {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Mix returns n frames at the output rate.
func (m *Mixer) Mix(n int) []Frame {
	out := make([]Frame, n)

	m.crit.Lock()
	channels := make([]*Channel, len(m.channels))
	copy(channels, m.channels)
	volume := m.volume
	m.crit.Unlock()

	for _, ch := range channels {
		ch.mix(out, m.rate, volume)
	}

	for i := range out {
		out[i][0] = clamp(out[i][0])
		out[i][1] = clamp(out[i][1])
	}

	return out
}

func clamp(v float32) float32 {
	return min(max(v, -32768.0), 32767.0)
}
