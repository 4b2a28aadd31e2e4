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

package midi

import "io"

// NoneName is the name of the handler that discards all messages.
const NoneName = "none"

// None is a Handler that discards all messages. It always opens.
type None struct{}

// Name implements the Handler interface.
func (None) Name() string {
	return NoneName
}

// Open implements the Handler interface.
func (None) Open(conf string) error {
	return nil
}

// Close implements the Handler interface.
func (None) Close() {}

// PlayMsg implements the Handler interface.
func (None) PlayMsg(msg []byte) {}

// PlaySysex implements the Handler interface.
func (None) PlaySysex(buf []byte) {}

// ListAll implements the Handler interface.
func (None) ListAll(w io.Writer) ListResult {
	return ListNotSupported
}
