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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/clocks"
	"github.com/jetsetilly/dosaudio/midi"
	"github.com/jetsetilly/dosaudio/midi/capture"
	"github.com/jetsetilly/dosaudio/midi/handlers/gomidi"
	"github.com/jetsetilly/dosaudio/midi/handlers/rawmidi"
	"github.com/jetsetilly/dosaudio/midi/handlers/serial"
	"github.com/jetsetilly/dosaudio/midi/handlers/trace"
	"github.com/jetsetilly/dosaudio/modalflag"
	"github.com/jetsetilly/dosaudio/paths"
	"github.com/jetsetilly/dosaudio/performance"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// newRegistry creates the registry of MIDI handlers. The order of the
// handlers is the order in which they are tried when the device is "auto".
//
// The serial handler writes to whatever is on the other end of the port so it
// must be chosen by name.
func newRegistry(env *environment.Environment, traceOutput io.Writer) *midi.Registry {
	r := midi.NewRegistry(
		gomidi.NewHandler(env, nil),
		rawmidi.NewHandler(env),
		serial.NewHandler(env, nil),
		trace.NewHandler(env, traceOutput),
	)
	r.OptIn(serial.Name, trace.Name)
	return r
}

func playMIDI(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	device := md.AddString("device", "", "midi device (default from preferences)")
	config := md.AddString("config", "", "configuration string for the device (default from preferences)")
	slot := md.AddInt("slot", 0, "parser slot to use (0 to 3)")
	record := md.AddBool("capture", false, "capture midi messages to a standard midi file")
	profile := md.AddString("profile", "none", "run through profiler: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var filename string
	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("midi file required for %s mode", md)
	case 1:
		filename = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *slot < 0 || *slot >= midi.NumSlots {
		return fmt.Errorf("slot must be between 0 and %d", midi.NumSlots-1)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	return performance.RunProfiler(prf, "midi", func() error {
		return sendFile(sync, filename, *device, *config, *slot, *record)
	})
}

func sendFile(sync *mainSync, filename string, device string, config string, slot int, record bool) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	if device == "" {
		device = env.Prefs.MIDI.Device.String()
	}
	if config == "" {
		config = env.Prefs.MIDI.Config.String()
	}

	session := midi.NewSession(env, newRegistry(env, os.Stdout), clocks.NewWall())

	var rec *capture.Recorder
	if record {
		rec = capture.NewRecorder(env, clocks.NewRealtime(), 0)
		defer rec.Stop()
		session.SetCapture(rec)
	}

	err = session.Open(device, config)
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Printf("! sending %s to %s\n", filename, session.HandlerName())

	for _, b := range data {
		if sync.ctx.Err() != nil {
			break // for loop
		}
		session.RawOutByte(b, slot)
	}

	if rec != nil {
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		fn := paths.UniqueFilename("capture", name, ".mid")
		err = rec.Save(fn)
		if err != nil {
			return err
		}
		fmt.Printf("! capture saved to %s\n", fn)
	}

	return nil
}

func list(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	newRegistry(env, os.Stdout).ListAll(os.Stdout)

	return nil
}
