package anim

import (
	"fmt"
	"reflect"
	"strings"
)

// Snapshot is a read-only view of the engine state sufficient for
// rendering: live objects sorted by id, edges in insertion order and the
// currently lit pseudocode lines. Slices are never nil, so two snapshots of
// equal state compare equal with reflect.DeepEqual.
type Snapshot struct {
	Objects []Object
	Edges   []Edge
	Lines   []LineRef
}

// Object looks up an object by id.
func (s Snapshot) Object(id ObjectID) (Object, bool) {
	lo, hi := 0, len(s.Objects)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.Objects[mid].ID == id:
			return s.Objects[mid], true
		case s.Objects[mid].ID < id:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return Object{}, false
}

// Next returns the target of the first next-pointer edge leaving id.
func (s Snapshot) Next(id ObjectID) ObjectID {
	return s.follow(id, PortNext)
}

// Prev returns the target of the first prev-pointer edge leaving id.
func (s Snapshot) Prev(id ObjectID) ObjectID {
	return s.follow(id, PortPrev)
}

func (s Snapshot) follow(id ObjectID, port Port) ObjectID {
	for _, e := range s.Edges {
		if e.From == id && e.Port == port {
			return e.To
		}
	}
	return NoObject
}

// Lit reports whether the given pseudocode line is highlighted.
func (s Snapshot) Lit(method string, line int) bool {
	for _, l := range s.Lines {
		if l.Method == method && l.Line == line {
			return true
		}
	}
	return false
}

// Equal reports deep equality of two snapshots.
func (s Snapshot) Equal(other Snapshot) bool {
	return reflect.DeepEqual(s, other)
}

// Diff describes how other differs from s. It returns "" when they are equal.
func (s Snapshot) Diff(other Snapshot) string {
	var b strings.Builder
	want := make(map[ObjectID]Object, len(s.Objects))
	for _, o := range s.Objects {
		want[o.ID] = o
	}
	seen := make(map[ObjectID]bool, len(other.Objects))
	for _, o := range other.Objects {
		seen[o.ID] = true
		w, ok := want[o.ID]
		switch {
		case !ok:
			fmt.Fprintf(&b, "object %d: unexpected %s\n", o.ID, o.Variant)
		case !reflect.DeepEqual(w, o):
			fmt.Fprintf(&b, "object %d: want %+v, got %+v\n", o.ID, w.Attrs, o.Attrs)
		}
	}
	for _, o := range s.Objects {
		if !seen[o.ID] {
			fmt.Fprintf(&b, "object %d: missing\n", o.ID)
		}
	}
	if !reflect.DeepEqual(s.Edges, other.Edges) {
		fmt.Fprintf(&b, "edges: want %v, got %v\n", s.Edges, other.Edges)
	}
	if !reflect.DeepEqual(s.Lines, other.Lines) {
		fmt.Fprintf(&b, "lines: want %v, got %v\n", s.Lines, other.Lines)
	}
	return b.String()
}
