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

package environment

import (
	"github.com/jetsetilly/dosaudio/hardware/preferences"
	"github.com/jetsetilly/dosaudio/logger"
	"github.com/jetsetilly/dosaudio/notifications"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation.
const MainEmulation = Label("")

// Environment is used to provide context for a device or a MIDI session.
// Useful when more than one instance is running, for example under test.
type Environment struct {
	Label Label

	// the emulation preferences
	Prefs *preferences.Preferences

	// notifications are sent through this interface. can be nil
	Notifications notifications.Notify
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. If prefs is nil then a new in-memory instance of
// preferences is created with default values.
func NewEnvironment(notify notifications.Notify, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Notifications: notify,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation writes to the central log.
func (env *Environment) AllowLogging() bool {
	return env.IsEmulation(MainEmulation)
}

// Notify sends the notice if a notifications.Notify instance has been
// supplied. Errors from the receiver are logged and otherwise ignored.
func (env *Environment) Notify(notice notifications.Notice) {
	if env.Notifications == nil {
		return
	}
	if err := env.Notifications.Notify(notice); err != nil {
		logger.Logf(env, "environment", "%s: %v", notice, err)
	}
}
