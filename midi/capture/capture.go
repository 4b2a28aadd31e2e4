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

// Package capture records the MIDI messages sent through a midi.Session and
// saves them as a Standard MIDI File.
//
// The Recorder type implements the midi.Capture interface. Messages are
// passed to a background goroutine through a buffered channel and if the
// channel is full the message is dropped. The MIDI parser never waits for the
// recorder.
package capture

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/logger"

	"gitlab.com/gomidi/midi/v2/smf"
)

// the tempo of the recording. the MIDI stream has no notion of tempo so this
// is only used to convert milliseconds into ticks
const (
	tempo      = 120.0
	resolution = smf.MetricTicks(960)
)

// DefaultQueueLength is the size of the queue used by NewRecorder() when a
// queue length of zero is requested.
const DefaultQueueLength = 1024

type event struct {
	sysex bool
	data  []byte
	when  float64
}

// Recorder implements the midi.Capture interface.
type Recorder struct {
	env   *environment.Environment
	clock clocks.Source

	queue chan event
	done  chan bool

	// track and last are only accessed by the recording goroutine until done
	// is closed
	track smf.Track
	last  float64

	crit    sync.Mutex
	stopped bool
	dropped int
	count   int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The clock is used to timestamp each message.
func NewRecorder(env *environment.Environment, clock clocks.Source, queueLength int) *Recorder {
	if queueLength <= 0 {
		queueLength = DefaultQueueLength
	}

	rec := &Recorder{
		env:   env,
		clock: clock,
		queue: make(chan event, queueLength),
		done:  make(chan bool),
		last:  clock.Now(),
	}

	rec.track.Add(0, smf.MetaTempo(tempo))

	go rec.run()

	return rec
}

func (rec *Recorder) run() {
	defer close(rec.done)
	for ev := range rec.queue {
		rec.record(ev)
	}
}

func (rec *Recorder) record(ev event) {
	delta := ev.when - rec.last
	if delta < 0 {
		delta = 0
	}

	d := time.Duration(delta * float64(time.Millisecond))
	ticks := resolution.Ticks(tempo, d)

	// the rounding error of the delta is carried forward by only moving the
	// last timestamp by the number of ticks recorded
	rec.last += float64(resolution.Duration(tempo, ticks)) / float64(time.Millisecond)

	msg := ev.data
	if ev.sysex {
		msg = make([]byte, 0, len(ev.data)+1)
		msg = append(msg, 0xf0)
		msg = append(msg, ev.data...)
	}

	rec.track.Add(ticks, msg)
}

// AddMidi implements the midi.Capture interface.
func (rec *Recorder) AddMidi(sysex bool, data []byte) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	if rec.stopped {
		return
	}

	select {
	case rec.queue <- event{sysex: sysex, data: data, when: rec.clock.Now()}:
		rec.count++
	default:
		rec.dropped++
	}
}

// Stop recording. Messages added after Stop() are ignored. It is safe to call
// Stop() more than once.
func (rec *Recorder) Stop() {
	rec.crit.Lock()
	if rec.stopped {
		rec.crit.Unlock()
		return
	}
	rec.stopped = true
	close(rec.queue)
	rec.crit.Unlock()

	<-rec.done

	if rec.dropped > 0 {
		logger.Logf(rec.env, "capture", "%d messages dropped", rec.dropped)
	}
}

// Count returns the number of messages accepted and the number of messages
// dropped.
func (rec *Recorder) Count() (int, int) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	return rec.count, rec.dropped
}

// WriteTo writes the recording as a single track Standard MIDI File. The
// recording is stopped first.
func (rec *Recorder) WriteTo(w io.Writer) (int64, error) {
	rec.Stop()

	s := smf.New()
	s.TimeFormat = resolution

	tr := make(smf.Track, len(rec.track))
	copy(tr, rec.track)
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return 0, fmt.Errorf("capture: %w", err)
	}

	n, err := s.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("capture: %w", err)
	}
	return n, nil
}

// Save the recording to the named file.
func (rec *Recorder) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	_, err = rec.WriteTo(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("capture: %w", cerr)
	}
	if err != nil {
		return err
	}

	logger.Logf(rec.env, "capture", "saved %s", filename)

	return nil
}
