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

package ioport

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/dosaudio/curated"
)

// Width is the width of a port access.
type Width int

// List of valid Width values.
const (
	Byte Width = 1 << iota
	Word
	DWord
)

func (w Width) String() string {
	switch w {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case DWord:
		return "dword"
	}
	return fmt.Sprintf("width(%d)", int(w))
}

// ReadHandler is called when a port with an installed read handler is read.
type ReadHandler func(port uint16, width Width) uint32

// WriteHandler is called when a port with an installed write handler is
// written to.
type WriteHandler func(port uint16, value uint32, width Width)

// Bus is the interface used by devices to install and remove handlers.
type Bus interface {
	// install a handler for count consecutive ports starting at port. the
	// handler is only called for accesses of the specified width
	InstallRead(port uint16, handler ReadHandler, width Width, count int) error
	InstallWrite(port uint16, handler WriteHandler, width Width, count int) error

	// remove handlers from count consecutive ports starting at port
	UninstallRead(port uint16, count int)
	UninstallWrite(port uint16, count int)
}

// IO is the interface used by programs to access the ports.
type IO interface {
	Read(port uint16, width Width) uint32
	Write(port uint16, value uint32, width Width)
}

// Sentinal errors returned by the Bus functions.
const (
	PortInUse = "ioport: port %#04x already has a %s handler"
	BadWidth  = "ioport: unsupported width (%v)"
	BadRange  = "ioport: bad port range (%#04x, count %d)"
)

type readEntry struct {
	handler ReadHandler
	width   Width
}

type writeEntry struct {
	handler WriteHandler
	width   Width
}

// Dispatch is an implementation of the Bus and IO interfaces. It is safe to install
// handlers from a goroutine other than the one accessing the ports. Handlers
// are called without any lock held.
type Dispatch struct {
	crit   sync.RWMutex
	reads  map[uint16]readEntry
	writes map[uint16]writeEntry
}

// NewDispatch is the preferred method of initialisation for the Dispatch
// type.
func NewDispatch() *Dispatch {
	return &Dispatch{
		reads:  make(map[uint16]readEntry),
		writes: make(map[uint16]writeEntry),
	}
}

func checkRange(port uint16, width Width, count int) error {
	switch width {
	case Byte, Word, DWord:
	default:
		return curated.Errorf(BadWidth, width)
	}
	if count < 1 || int(port)+count > 0x10000 {
		return curated.Errorf(BadRange, port, count)
	}
	return nil
}

// InstallRead implements the Bus interface.
func (d *Dispatch) InstallRead(port uint16, handler ReadHandler, width Width, count int) error {
	if err := checkRange(port, width, count); err != nil {
		return err
	}

	d.crit.Lock()
	defer d.crit.Unlock()

	for i := 0; i < count; i++ {
		if _, ok := d.reads[port+uint16(i)]; ok {
			return curated.Errorf(PortInUse, port+uint16(i), "read")
		}
	}
	for i := 0; i < count; i++ {
		d.reads[port+uint16(i)] = readEntry{handler: handler, width: width}
	}
	return nil
}

// InstallWrite implements the Bus interface.
func (d *Dispatch) InstallWrite(port uint16, handler WriteHandler, width Width, count int) error {
	if err := checkRange(port, width, count); err != nil {
		return err
	}

	d.crit.Lock()
	defer d.crit.Unlock()

	for i := 0; i < count; i++ {
		if _, ok := d.writes[port+uint16(i)]; ok {
			return curated.Errorf(PortInUse, port+uint16(i), "write")
		}
	}
	for i := 0; i < count; i++ {
		d.writes[port+uint16(i)] = writeEntry{handler: handler, width: width}
	}
	return nil
}

// UninstallRead implements the Bus interface.
func (d *Dispatch) UninstallRead(port uint16, count int) {
	d.crit.Lock()
	defer d.crit.Unlock()
	for i := 0; i < count; i++ {
		delete(d.reads, port+uint16(i))
	}
}

// UninstallWrite implements the Bus interface.
func (d *Dispatch) UninstallWrite(port uint16, count int) {
	d.crit.Lock()
	defer d.crit.Unlock()
	for i := 0; i < count; i++ {
		delete(d.writes, port+uint16(i))
	}
}

// Read a value from a port. Unmapped ports, and accesses of a width the
// handler wasn't installed for, return all bits set.
func (d *Dispatch) Read(port uint16, width Width) uint32 {
	d.crit.RLock()
	e, ok := d.reads[port]
	d.crit.RUnlock()

	if !ok || e.width != width {
		return floating(width)
	}
	return e.handler(port, width)
}

// Write a value to a port. Writes to unmapped ports are discarded.
func (d *Dispatch) Write(port uint16, value uint32, width Width) {
	d.crit.RLock()
	e, ok := d.writes[port]
	d.crit.RUnlock()

	if !ok || e.width != width {
		return
	}
	e.handler(port, value, width)
}

func floating(width Width) uint32 {
	switch width {
	case Word:
		return 0xffff
	case DWord:
		return 0xffffffff
	}
	return 0xff
}
