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
	"fmt"

	"github.com/jetsetilly/dosaudio/prefs"
)

// AudioPreferences are the preferences for the audio output.
type AudioPreferences struct {
	// sample rate of the audio sink
	Rate prefs.Int

	// output volume. a value between 0.0 and 1.0
	Volume prefs.Float
}

func (p *AudioPreferences) add(dsk *prefs.Disk) error {
	p.Rate.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 8000 || v.(int) > 192000 {
			return fmt.Errorf("audio rate out of range: %d", v.(int))
		}
		return nil
	})
	p.Volume.SetHookPre(func(v prefs.Value) error {
		if v.(float64) < 0.0 || v.(float64) > 1.0 {
			return fmt.Errorf("audio volume out of range: %.3f", v.(float64))
		}
		return nil
	})

	err := dsk.Add("audio.rate", &p.Rate)
	if err != nil {
		return err
	}
	return dsk.Add("audio.volume", &p.Volume)
}

// SetDefaults reverts the audio preferences to their default values.
func (p *AudioPreferences) SetDefaults() {
	_ = p.Rate.Set(44100)
	_ = p.Volume.Set(1.0)
}
