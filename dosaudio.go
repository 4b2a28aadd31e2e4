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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/hardware/preferences"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/modalflag"
	"github.com/jetsetilly/dosaudio/notifications"
	"github.com/jetsetilly/dosaudio/paths"
	"github.com/jetsetilly/dosaudio/prefs"
	"github.com/jetsetilly/dosaudio/statsview"
	"github.com/jetsetilly/dosaudio/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest

	// the context passed to the mode functions. cancelled on interrupt
	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	sync := &mainSync{
		state:  make(chan stateRequest),
		ctx:    ctx,
		cancel: cancel,
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			// the first interrupt asks the mode to end gracefully. the
			// launch() function will send a reqQuit when it has done so
			fmt.Println("\r")
			if sync.ctx.Err() != nil {
				done = true
			}
			sync.cancel()

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubModes("PLAY", "MIDI", "LIST")
	md.AdditionalHelp("the PLAY mode plays a WAV or MP3 file through an emulated Disney Sound Source\n" +
		"the MIDI mode sends a raw MIDI file (eg. a .syx file) to a MIDI device\n" +
		"the LIST mode lists the available MIDI devices")

	ver := md.AddBool("version", false, "print version and exit")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	prefsOverride := md.AddString("prefs", "", "override preferences for this session (eg. \"disney.filter::off; audio.rate::48000\")")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *ver {
		fmt.Println(version.String())
		sync.state <- stateRequest{req: reqQuit}
		return
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout)
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md, sync)

	case "MIDI":
		err = playMIDI(md, sync)

	case "LIST":
		err = list(md)
	}

	// command line preferences that were never used
	if prefs.SizeCommandLineStack() > 0 {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Printf("* unused preferences: %s\n", unused)
		}
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// notifier prints the notifications that are of interest to the user.
type notifier struct{}

func (notifier) Notify(notice notifications.Notice) error {
	switch notice {
	case notifications.NotifyPlaybackEnded:
		fmt.Println("! playback ended")
	case notifications.NotifyMIDIOpened:
		fmt.Println("! midi device opened")
	}
	return nil
}

// newEnvironment creates the environment with the preferences loaded from the
// preferences file.
func newEnvironment() (*environment.Environment, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p, err := preferences.NewPreferences(pth)
	if err != nil {
		return nil, err
	}

	return environment.NewEnvironment(notifier{}, p)
}
