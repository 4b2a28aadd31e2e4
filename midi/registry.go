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

import (
	"fmt"
	"io"
	"strings"
)

// DefaultOptIn is the list of handlers that are never chosen automatically.
// Synthesizers are slow to start and so they must be chosen by name.
var DefaultOptIn = []string{"fluidsynth", "mt32"}

// Registry is an ordered list of handlers. The order is the order in which
// handlers are tried when choosing a handler automatically.
type Registry struct {
	handlers []Handler
	optIn    map[string]bool
}

// NewRegistry is the preferred method of initialisation for the Registry
// type. The None handler is added to the end of the list. A None handler in
// the list of arguments is ignored.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{
		optIn: make(map[string]bool),
	}
	for _, h := range handlers {
		if h.Name() == NoneName {
			continue
		}
		r.handlers = append(r.handlers, h)
	}
	r.handlers = append(r.handlers, None{})
	r.OptIn(DefaultOptIn...)
	return r
}

func (r *Registry) String() string {
	s := make([]string, len(r.handlers))
	for i, h := range r.handlers {
		s[i] = h.Name()
		if r.optIn[h.Name()] {
			s[i] = fmt.Sprintf("(%s)", s[i])
		}
	}
	return strings.Join(s, ", ")
}

// OptIn adds names to the list of handlers that are never chosen
// automatically. The None handler cannot be made opt-in.
func (r *Registry) OptIn(names ...string) {
	for _, n := range names {
		if n == NoneName {
			continue
		}
		r.optIn[strings.ToLower(n)] = true
	}
}

// IsOptIn returns true if the named handler must be chosen by name.
func (r *Registry) IsOptIn(name string) bool {
	return r.optIn[name]
}

// Handlers returns the handlers in order. The None handler is always last.
func (r *Registry) Handlers() []Handler {
	return r.handlers
}

// Find the named handler. Returns nil if there is no handler with that name.
func (r *Registry) Find(name string) Handler {
	for _, h := range r.handlers {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// ListAll writes the device list of every handler except None.
func (r *Registry) ListAll(w io.Writer) {
	for _, h := range r.handlers {
		if h.Name() == NoneName {
			continue
		}

		fmt.Fprintf(w, "%s:\n", h.Name())

		switch h.ListAll(w) {
		case ListDeviceNotConfigured:
			fmt.Fprintf(w, "  device not configured\n")
		case ListNotSupported:
			fmt.Fprintf(w, "  listing not supported\n")
		}

		fmt.Fprintf(w, "\n")
	}
}
