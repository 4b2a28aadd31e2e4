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
	"math"
	"sync"
)

// Frame is a single stereo audio frame. Index 0 is the left channel and index
// 1 is the right channel.
type Frame [2]float32

// Callback is called by the mixer when it requires frames from a channel.
type Callback func(requested int) []Frame

// Feature describes a capability of a channel.
type Feature int

// List of valid Feature values.
const (
	// the channel can be put to sleep when it has not been woken for a
	// while. a sleeping channel is not pulled
	Sleep Feature = iota

	// the channel produces stereo output
	Stereo

	// the channel output can be sent to the reverb and chorus effects
	ReverbSend
	ChorusSend

	// the channel output comes from a DAC rather than a synthesizer
	DigitalAudio
)

func (f Feature) String() string {
	switch f {
	case Sleep:
		return "sleep"
	case Stereo:
		return "stereo"
	case ReverbSend:
		return "reverb send"
	case ChorusSend:
		return "chorus send"
	case DigitalAudio:
		return "digital audio"
	}
	return "unknown feature"
}

// FilterState is the state of a channel's filter.
type FilterState int

// List of valid FilterState values.
const (
	FilterOff FilterState = iota
	FilterOn
)

func (s FilterState) String() string {
	if s == FilterOn {
		return "on"
	}
	return "off"
}

// the amount of output time (in milliseconds) a channel with the Sleep
// feature can go without a call to WakeUp() before it is put to sleep.
const sleepAfterMs = 250.0

// onePole is a single stage of a low-pass filter.
type onePole struct {
	alpha float32
	prev  Frame
}

func (p *onePole) process(f Frame) Frame {
	p.prev[0] += p.alpha * (f[0] - p.prev[0])
	p.prev[1] += p.alpha * (f[1] - p.prev[1])
	return p.prev
}

// Channel is a single audio source in the mixer.
type Channel struct {
	crit sync.Mutex

	name     string
	rate     int
	callback Callback
	features []Feature

	enabled  bool
	sleeping bool
	idleMs   float64

	filter       FilterState
	filterOrder  int
	filterCutoff int
	stages       []onePole

	// the most recent frame. used as the held value when converting to the
	// output rate
	held Frame

	// fractional position into the channel's frames at the start of the next
	// mix
	phase float64
}

func newChannel(callback Callback, rate int, name string, features []Feature) *Channel {
	return &Channel{
		name:     name,
		rate:     rate,
		callback: callback,
		features: features,
		enabled:  true,
	}
}

func (ch *Channel) String() string {
	return ch.name
}

// Name returns the name of the channel.
func (ch *Channel) Name() string {
	return ch.name
}

// Rate returns the sample rate of the channel.
func (ch *Channel) Rate() int {
	return ch.rate
}

// HasFeature returns true if the channel was added with the feature.
func (ch *Channel) HasFeature(f Feature) bool {
	for _, g := range ch.features {
		if g == f {
			return true
		}
	}
	return false
}

// Enable or disable the channel. A disabled channel is not pulled.
func (ch *Channel) Enable(enable bool) {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	ch.enabled = enable
	if !enable {
		ch.held = Frame{}
		ch.phase = 0
	}
}

// IsEnabled returns true if the channel is enabled.
func (ch *Channel) IsEnabled() bool {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	return ch.enabled
}

// WakeUp should be called by the device whenever it is written to. It returns
// true if the channel was sleeping. A device that keeps its own time should
// treat a true result as a discontinuity.
func (ch *Channel) WakeUp() bool {
	ch.crit.Lock()
	defer ch.crit.Unlock()

	ch.idleMs = 0
	if ch.sleeping {
		ch.sleeping = false
		ch.enabled = true
		return true
	}
	return false
}

// IsSleeping returns true if the channel has been put to sleep.
func (ch *Channel) IsSleeping() bool {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	return ch.sleeping
}

// ConfigureLowPassFilter sets the order and cutoff frequency of the low-pass
// filter. Each order is one 6dB/octave stage. The filter state is unchanged.
func (ch *Channel) ConfigureLowPassFilter(order int, cutoffHz int) {
	ch.crit.Lock()
	defer ch.crit.Unlock()

	if order < 1 {
		order = 1
	}
	ch.filterOrder = order
	ch.filterCutoff = cutoffHz

	alpha := float32(1.0 - math.Exp(-2.0*math.Pi*float64(cutoffHz)/float64(ch.rate)))
	ch.stages = make([]onePole, order)
	for i := range ch.stages {
		ch.stages[i].alpha = alpha
	}
}

// SetLowPassFilter turns the low-pass filter on or off. Turning the filter on
// before it has been configured has no effect on the output.
func (ch *Channel) SetLowPassFilter(state FilterState) {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	ch.filter = state
}

// LowPassFilter returns the current state of the low-pass filter along with
// the configured order and cutoff.
func (ch *Channel) LowPassFilter() (FilterState, int, int) {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	return ch.filter, ch.filterOrder, ch.filterCutoff
}

// mix adds n frames at the output rate to the out slice.
func (ch *Channel) mix(out []Frame, outRate int, volume float32) {
	n := len(out)

	ch.crit.Lock()
	if !ch.enabled || ch.sleeping {
		ch.crit.Unlock()
		return
	}
	step := float64(ch.rate) / float64(outRate)
	phase := ch.phase
	need := int(math.Floor(phase + step*float64(n)))
	ch.crit.Unlock()

	// callback is called without the channel lock
	var frames []Frame
	if need > 0 {
		frames = ch.callback(need)
	}

	ch.crit.Lock()
	defer ch.crit.Unlock()

	// channel may have been disabled while the callback was running
	if !ch.enabled {
		return
	}

	// pad short returns with the last frame
	for len(frames) < need {
		if len(frames) == 0 {
			frames = append(frames, ch.held)
		} else {
			frames = append(frames, frames[len(frames)-1])
		}
	}
	frames = frames[:need]

	if ch.filter == FilterOn && len(ch.stages) > 0 {
		for i := range frames {
			for s := range ch.stages {
				frames[i] = ch.stages[s].process(frames[i])
			}
		}
	}

	held := ch.held
	for i := range out {
		j := int(phase + step*float64(i))
		f := held
		if j > 0 {
			f = frames[j-1]
		}
		out[i][0] += f[0] * volume
		out[i][1] += f[1] * volume
	}

	if need > 0 {
		ch.held = frames[need-1]
	}
	ch.phase = phase + step*float64(n) - float64(need)

	if ch.HasFeature(Sleep) {
		ch.idleMs += float64(n) * 1000.0 / float64(outRate)
		if ch.idleMs >= sleepAfterMs {
			ch.sleeping = true
			ch.held = Frame{}
			ch.phase = 0
			for s := range ch.stages {
				ch.stages[s].prev = Frame{}
			}
		}
	}
}
