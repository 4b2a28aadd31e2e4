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

package prefs

// keys that were once written to the preferences file but which are no longer
// used. they are dropped silently on load and will not be written on save.
var defunct = []string{
	"midi.delaysysex",
	"disney.rate",
}

func isDefunct(key string) bool {
	for _, d := range defunct {
		if key == d {
			return true
		}
	}
	return false
}
