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
	"github.com/jetsetilly/dosaudio/prefs"
)

// MIDIPreferences are the preferences for the MIDI session.
type MIDIPreferences struct {
	// name of the handler to open. "auto" and "default" select the first
	// handler that opens successfully
	Device prefs.String

	// configuration string passed to the handler's Open() function. the
	// delaysysex token is consumed by the session and not passed on
	Config prefs.String
}

func (p *MIDIPreferences) add(dsk *prefs.Disk) error {
	err := dsk.Add("midi.device", &p.Device)
	if err != nil {
		return err
	}
	return dsk.Add("midi.config", &p.Config)
}

// SetDefaults reverts the MIDI preferences to their default values.
func (p *MIDIPreferences) SetDefaults() {
	_ = p.Device.Set("auto")
	_ = p.Config.Set("")
}
