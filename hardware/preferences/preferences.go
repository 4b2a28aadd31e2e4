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

package preferences

import (
	"github.com/jetsetilly/dosaudio/curated"
	"github.com/jetsetilly/dosaudio/prefs"
)

// Preferences groups the preferences of every device and of the MIDI session.
// All groups share one preferences file.
type Preferences struct {
	dsk *prefs.Disk

	// the path of the preferences file. an empty path means that the
	// preferences exist only in memory
	path string

	Disney DisneyPreferences
	MIDI   MIDIPreferences
	Audio  AudioPreferences
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the file at pth, which is created
// with default values if it does not exist. If pth is empty then the
// preferences are never loaded from or saved to disk.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{
		path: pth,
	}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.Disney.add(p.dsk)
	if err != nil {
		return nil, err
	}
	err = p.MIDI.add(p.dsk)
	if err != nil {
		return nil, err
	}
	err = p.Audio.add(p.dsk)
	if err != nil {
		return nil, err
	}

	if p.path == "" {
		return p, nil
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Disney.SetDefaults()
	p.MIDI.SetDefaults()
	p.Audio.SetDefaults()
}

// Load current preference values from disk.
func (p *Preferences) Load() error {
	if p.path == "" {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current preference values to disk.
func (p *Preferences) Save() error {
	if p.path == "" {
		return nil
	}
	return p.dsk.Save()
}
