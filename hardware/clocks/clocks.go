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

// Package clocks provides the time sources used by the emulated devices.
//
// There are two notions of time. Emulated time is a monotonic count of
// milliseconds, with sub-millisecond precision, advanced by the machine
// being emulated. Wall time is whole milliseconds of host time and is used
// for pacing writes to real MIDI devices.
package clocks

import (
	"sync"
	"time"
)

// Source is a monotonic source of emulated time in milliseconds.
type Source interface {
	Now() float64
}

// Ticker is a source of wall time in whole milliseconds along with a way of
// waiting for a number of milliseconds to pass.
type Ticker interface {
	Ticks() int64
	Delay(ms int64)
}

// Manual is a Source that only moves when told to. It is safe to use from
// more than one goroutine.
type Manual struct {
	crit sync.Mutex
	now  float64
}

// Now implements the Source interface.
func (m *Manual) Now() float64 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.now
}

// Advance moves the clock forward by ms milliseconds. Negative values are
// ignored.
func (m *Manual) Advance(ms float64) {
	if ms <= 0 {
		return
	}
	m.crit.Lock()
	defer m.crit.Unlock()
	m.now += ms
}

// Set moves the clock to the specified time. Times earlier than the current
// time are ignored.
func (m *Manual) Set(ms float64) {
	m.crit.Lock()
	defer m.crit.Unlock()
	if ms > m.now {
		m.now = ms
	}
}

// Realtime is a Source that follows the host clock from the moment it was
// created.
type Realtime struct {
	start time.Time
}

// NewRealtime is the preferred method of initialisation for the Realtime
// type.
func NewRealtime() *Realtime {
	return &Realtime{start: time.Now()}
}

// Now implements the Source interface.
func (r *Realtime) Now() float64 {
	return float64(time.Since(r.start).Nanoseconds()) / float64(time.Millisecond)
}

// Wall is a Ticker using the host clock.
type Wall struct {
	start time.Time
}

// NewWall is the preferred method of initialisation for the Wall type.
func NewWall() *Wall {
	return &Wall{start: time.Now()}
}

// Ticks implements the Ticker interface.
func (w *Wall) Ticks() int64 {
	return time.Since(w.start).Milliseconds()
}

// Delay implements the Ticker interface.
func (w *Wall) Delay(ms int64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
