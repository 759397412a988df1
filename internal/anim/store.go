package anim

import (
	"fmt"
	"log/slog"
	"sort"
)

// Store is the visual object store: every live object keyed by id plus the
// ordered edge list. It has a single writer (the controller) and no locks.
type Store struct {
	objects map[ObjectID]*Object
	edges   []Edge
	logger  *slog.Logger
}

// NewStore returns an empty store. A nil logger discards output.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		objects: make(map[ObjectID]*Object),
		edges:   make([]Edge, 0),
		logger:  logger,
	}
}

// Create adds a new object. Creating an id that is already present fails
// with ErrDuplicateID.
func (s *Store) Create(id ObjectID, v Variant, a Attrs) error {
	if _, exists := s.objects[id]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	s.objects[id] = &Object{ID: id, Variant: v, Attrs: a}
	return nil
}

// Mutate patches the attributes of an existing object.
func (s *Store) Mutate(id ObjectID, fn func(*Attrs)) error {
	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	fn(&obj.Attrs)
	return nil
}

// Delete removes an object and every edge touching it, returning the removed
// edges in ascending index order. Deleting a missing id is a no-op.
func (s *Store) Delete(id ObjectID) []IndexedEdge {
	if _, ok := s.objects[id]; !ok {
		s.logger.Debug("delete of missing object ignored", "id", int(id))
		return nil
	}
	removed := s.edgesTouching(id)
	kept := s.edges[:0]
	for _, e := range s.edges {
		if !e.touches(id) {
			kept = append(kept, e)
		}
	}
	s.edges = kept
	delete(s.objects, id)
	return removed
}

// Get returns a copy of the object with the given id.
func (s *Store) Get(id ObjectID) (Object, bool) {
	obj, ok := s.objects[id]
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Has reports whether id is live.
func (s *Store) Has(id ObjectID) bool {
	_, ok := s.objects[id]
	return ok
}

// Len returns the number of live objects.
func (s *Store) Len() int {
	return len(s.objects)
}

// Edges returns a copy of the edge list in insertion order.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// FindEdge returns the index of the first edge from -> to, or -1.
func (s *Store) FindEdge(from, to ObjectID) int {
	for i, e := range s.edges {
		if e.joins(from, to) {
			return i
		}
	}
	return -1
}

func (s *Store) mutateEdge(from, to ObjectID, fn func(*Edge)) error {
	i := s.FindEdge(from, to)
	if i < 0 {
		return fmt.Errorf("%w: %d -> %d", ErrUnknownEdge, from, to)
	}
	fn(&s.edges[i])
	return nil
}

func (s *Store) edgesTouching(id ObjectID) []IndexedEdge {
	var out []IndexedEdge
	for i, e := range s.edges {
		if e.touches(id) {
			out = append(out, IndexedEdge{Index: i, Edge: e})
		}
	}
	return out
}

func (s *Store) appendEdge(e Edge) {
	s.edges = append(s.edges, e)
}

func (s *Store) insertEdge(i int, e Edge) {
	if i < 0 || i > len(s.edges) {
		i = len(s.edges)
	}
	s.edges = append(s.edges, Edge{})
	copy(s.edges[i+1:], s.edges[i:])
	s.edges[i] = e
}

func (s *Store) removeEdge(i int) (Edge, error) {
	if i < 0 || i >= len(s.edges) {
		return Edge{}, fmt.Errorf("%w: edge index %d out of range", ErrCorruptLog, i)
	}
	e := s.edges[i]
	s.edges = append(s.edges[:i], s.edges[i+1:]...)
	return e, nil
}

// Clear drops every object and edge.
func (s *Store) Clear() {
	s.objects = make(map[ObjectID]*Object)
	s.edges = make([]Edge, 0)
}

// Snapshot returns an immutable deep copy of the store, objects sorted by id.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Objects: make([]Object, 0, len(s.objects)),
		Edges:   s.Edges(),
		Lines:   make([]LineRef, 0),
	}
	for _, obj := range s.objects {
		snap.Objects = append(snap.Objects, *obj)
	}
	sort.Slice(snap.Objects, func(i, j int) bool {
		return snap.Objects[i].ID < snap.Objects[j].ID
	})
	return snap
}

// load replaces the store contents with a snapshot.
func (s *Store) load(snap Snapshot) {
	s.Clear()
	for _, obj := range snap.Objects {
		o := obj
		s.objects[o.ID] = &o
	}
	s.edges = append(s.edges, snap.Edges...)
}
