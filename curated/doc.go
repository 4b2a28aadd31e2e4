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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function, which takes a
// pattern and placeholder values in the same way as fmt.Errorf(). The pattern
// is remembered and can be tested for with the Is() and Has() functions.
//
//	e := curated.Errorf("midi: can't find device: %s", name)
//
//	if curated.Is(e, "midi: can't find device: %s") {
//		...
//	}
//
// Sentinel patterns should be stored as exported string constants by the
// package that creates the error. For example, midi.DeviceNotFound.
//
// Has() is similar to Is() but checks the whole error chain. A chain is made
// by passing a curated error as one of the values to Errorf(). Errors made by
// fmt.Errorf() with the %w verb are also followed.
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts. For the purposes of this package a message is made up of
// parts separated by the sub-string ": ". This means wrapping an error with
// the same prefix that it already has is harmless:
//
//	e := curated.Errorf("midi: %v", curated.Errorf("midi: no handler available"))
//
// prints as "midi: no handler available".
package curated
