package scene

import "github.com/lucasb-eyer/go-colorful"

// Scene is the id→record arena of loaded objects.
//
// Scene is not safe for concurrent use; it is owned by the goroutine that
// drives the viewer's tick.
type Scene struct {
	// Background, when set, is drawn behind all objects.
	Background *colorful.Color

	objects map[string]*Object
	order   []string

	// helpers are drawn but carry no identity: they are never hovered,
	// selected, or framed.
	helpers []*Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{objects: make(map[string]*Object)}
}

// Put adds o, replacing any object with the same id. A replaced object
// keeps its draw position.
func (s *Scene) Put(o *Object) {
	if _, ok := s.objects[o.ID]; !ok {
		s.order = append(s.order, o.ID)
	}
	s.objects[o.ID] = o
}

// Get returns the object with the given id.
func (s *Scene) Get(id string) (*Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// Has reports whether an object with the given id is loaded.
func (s *Scene) Has(id string) bool {
	_, ok := s.objects[id]
	return ok
}

// Remove deletes the object with the given id.
func (s *Scene) Remove(id string) bool {
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every identified object and returns how many were removed.
// Helpers stay.
func (s *Scene) Clear() int {
	n := len(s.order)
	s.objects = make(map[string]*Object)
	s.order = s.order[:0]
	return n
}

// Len returns the number of identified objects.
func (s *Scene) Len() int { return len(s.order) }

// IDs returns object ids in insertion order.
func (s *Scene) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Objects returns identified objects in insertion order.
func (s *Scene) Objects() []*Object {
	objs := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		objs = append(objs, s.objects[id])
	}
	return objs
}

// AddHelper adds an object that is drawn but never interacted with.
func (s *Scene) AddHelper(o *Object) {
	s.helpers = append(s.helpers, o)
}

// Helpers returns the helper objects.
func (s *Scene) Helpers() []*Object { return s.helpers }

// Drawables returns helpers followed by identified objects.
func (s *Scene) Drawables() []*Object {
	all := make([]*Object, 0, len(s.helpers)+len(s.order))
	all = append(all, s.helpers...)
	return append(all, s.Objects()...)
}
