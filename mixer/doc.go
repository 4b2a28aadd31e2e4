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

// Package mixer combines the output of audio channels into a single stream
// of stereo frames at the output rate.
//
// A channel is added with a callback function. When the mixer needs frames
// from the channel it calls the callback with the number of frames required
// at the channel's own rate. The callback must return exactly that number of
// frames. Channel output is converted to the output rate with a zero-order
// hold, which is sufficient for the low-rate DACs it is used with.
//
// Frames are pairs of float32 values scaled to the int16 range. Sinks are
// responsible for converting them to their native format.
//
// The mixer never holds a lock while calling a channel callback. A device can
// therefore call Channel.WakeUp() with its own lock held without risk of
// deadlock.
package mixer
