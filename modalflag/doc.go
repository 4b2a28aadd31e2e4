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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments. For example (error handling is not shown):
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//	_, _ = md.Parse()
//
// Non-flag arguments are retrieved with RemainingArgs() or GetArg().
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, each with its own set of flags. Modes are added
// with AddSubModes(). The first mode in the list is the default mode.
//
//	md.AddSubModes("PLAY", "MIDI", "LIST")
//
// Mode comparisons are case insensitive. After Parse() the selected mode is
// returned by Mode(). Flags for the selected mode are then added after a call
// to NewMode() and Parse() is called again:
//
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		wav := md.AddString("wav", "", "render to wav file")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		play(*wav, md.RemainingArgs())
//	}
//
// Modes can be nested to any depth by adding sub-modes before the second call
// to Parse().
package modalflag
