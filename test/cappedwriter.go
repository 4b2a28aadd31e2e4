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

package test

import (
	"fmt"
)

// CappedWriter is an io.Writer with a fixed capacity. Once full, further
// writes are accepted but discarded and counted. Useful for checking that
// code keeps running when its output stops.
type CappedWriter struct {
	buffer  []byte
	dropped int
}

// NewCappedWriter returns a writer that holds at most size bytes.
func NewCappedWriter(size int) (*CappedWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("capped writer: invalid size (%d)", size)
	}
	return &CappedWriter{
		buffer: make([]byte, 0, size),
	}, nil
}

func (c *CappedWriter) String() string {
	return string(c.buffer)
}

// Full returns true if no more bytes will be kept.
func (c *CappedWriter) Full() bool {
	return len(c.buffer) == cap(c.buffer)
}

// Dropped returns the number of bytes discarded since the last Reset().
func (c *CappedWriter) Dropped() int {
	return c.dropped
}

// Reset empties the writer and the dropped count.
func (c *CappedWriter) Reset() {
	c.buffer = c.buffer[:0]
	c.dropped = 0
}

// Write implements the io.Writer interface. The number of bytes kept is
// returned. Discarded bytes are not an error.
func (c *CappedWriter) Write(p []byte) (int, error) {
	n := min(len(p), cap(c.buffer)-len(c.buffer))
	c.buffer = append(c.buffer, p[:n]...)
	c.dropped += len(p) - n
	return n, nil
}
