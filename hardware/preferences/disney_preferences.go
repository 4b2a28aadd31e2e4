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

// DisneyBasePort is the default base address of the parallel port the
// Disney Sound Source is plugged into. This is LPT1 on most machines.
const DisneyBasePort = 0x378

// DisneyPreferences are the preferences for the Disney Sound Source.
type DisneyPreferences struct {
	// whether the device is attached to the port bus at all
	Enabled prefs.Bool

	// either "on" or "off". any other value is treated as "off"
	Filter prefs.String

	// base port address. the data, status and control ports follow on
	Port prefs.Int
}

func (p *DisneyPreferences) add(dsk *prefs.Disk) error {
	err := dsk.Add("disney.enabled", &p.Enabled)
	if err != nil {
		return err
	}
	err = dsk.Add("disney.filter", &p.Filter)
	if err != nil {
		return err
	}
	return dsk.Add("disney.port", &p.Port)
}

// SetDefaults reverts the Disney preferences to their default values.
func (p *DisneyPreferences) SetDefaults() {
	_ = p.Enabled.Set(true)
	_ = p.Filter.Set("on")
	_ = p.Port.Set(DisneyBasePort)
}
