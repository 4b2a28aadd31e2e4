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

package notifications

// Notice describes events that somehow change the presentation of the
// program. Receivers are free to ignore any notice.
type Notice string

// List of defined notifications.
const (
	// a MIDI handler has been opened or closed by a midi.Session
	NotifyMIDIOpened Notice = "NotifyMIDIOpened"
	NotifyMIDIClosed Notice = "NotifyMIDIClosed"

	// the disney sound source has been attached to or detached from the
	// port bus
	NotifyDisneyAttached Notice = "NotifyDisneyAttached"
	NotifyDisneyDetached Notice = "NotifyDisneyDetached"

	// the PLAY driver has finished sending samples to the device
	NotifyPlaybackEnded Notice = "NotifyPlaybackEnded"
)

// Notify is used for direct communication between a sender and the front
// end.
type Notify interface {
	Notify(notice Notice) error
}
