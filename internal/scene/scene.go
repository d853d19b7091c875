// Package scene is the in-memory editing model: the ordered list of placed
// objects, per-type visibility filters and the selection/drag state.
package scene

import (
	"fmt"
	"math"

	"citymap/internal/catalog"
)

// HitTolerance is how far beyond an object's radius a point still hits it.
const HitTolerance = 5.0

// Object is one placed marker. Field order matches the persisted record.
type Object struct {
	ID    int64        `json:"id"`
	Type  catalog.Type `json:"type"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Size  float64      `json:"size"`
	Label string       `json:"label"`
	Color string       `json:"color"`
}

// Selection is the current selection. ID is a lookup key into the scene;
// it never owns the object.
type Selection struct {
	ID       int64
	Active   bool
	Dragging bool
	OffsetX  float64
	OffsetY  float64
}

// Counts is the unfiltered per-type tally.
type Counts struct {
	Total  int
	ByType map[catalog.Type]int
}

// Scene owns the objects. Not safe for concurrent use; it is driven from a
// single event loop.
type Scene struct {
	objects []Object
	nextID  int64
	filters Filters
	sel     Selection
}

// New returns an empty scene with every type visible.
func New() *Scene {
	return &Scene{nextID: 1, filters: DefaultFilters()}
}

// Len is the number of objects, filtered or not.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns a copy of the objects in paint order.
func (s *Scene) Objects() []Object { return cloneObjects(s.objects) }

// Place appends a new object of type t centered at (x, y). The position is
// taken as given.
func (s *Scene) Place(t catalog.Type, x, y float64) (Object, error) {
	meta, ok := catalog.Lookup(t)
	if !ok {
		return Object{}, fmt.Errorf("place: %w: %q", catalog.ErrInvalidType, string(t))
	}
	obj := Object{
		ID:    s.nextID,
		Type:  t,
		X:     x,
		Y:     y,
		Size:  meta.Size,
		Label: meta.Label,
		Color: meta.Color,
	}
	s.nextID++
	s.objects = append(s.objects, obj)
	return obj, nil
}

// HitTest returns the topmost visible object within size/2 + HitTolerance
// of (x, y).
func (s *Scene) HitTest(x, y float64) (Object, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		o := s.objects[i]
		if !s.filters.Visible(o.Type) {
			continue
		}
		if math.Hypot(o.X-x, o.Y-y) <= o.Size/2+HitTolerance {
			return o, true
		}
	}
	return Object{}, false
}

// MoveSelected moves the selected object's center to (x, y), clamped so the
// object stays fully inside a w by h canvas. No-op without a selection.
func (s *Scene) MoveSelected(x, y, w, h float64) {
	i := s.indexOf(s.sel.ID)
	if !s.sel.Active || i < 0 {
		return
	}
	o := &s.objects[i]
	r := o.Size / 2
	o.X = clamp(x, r, w-r)
	o.Y = clamp(y, r, h-r)
}

// Remove deletes the object with the given id. Absent ids are ignored.
func (s *Scene) Remove(id int64) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	if s.sel.ID == id {
		s.sel = Selection{}
	}
}

// ClearAll removes every object.
func (s *Scene) ClearAll() {
	s.objects = nil
	s.sel = Selection{}
}

// Replace swaps in a new object list, as for undo or load. The id counter
// never moves backwards, and a selection pointing at a missing id is dropped.
func (s *Scene) Replace(objs []Object) {
	s.objects = cloneObjects(objs)
	for _, o := range s.objects {
		if o.ID >= s.nextID {
			s.nextID = o.ID + 1
		}
	}
	if s.indexOf(s.sel.ID) < 0 {
		s.sel = Selection{}
	}
}

// Counts tallies every object regardless of filters.
func (s *Scene) Counts() Counts {
	c := Counts{Total: len(s.objects), ByType: make(map[catalog.Type]int, len(catalog.Types()))}
	for _, t := range catalog.Types() {
		c.ByType[t] = 0
	}
	for _, o := range s.objects {
		c.ByType[o.Type]++
	}
	return c
}

// Get looks up an object by id.
func (s *Scene) Get(id int64) (Object, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Object{}, false
	}
	return s.objects[i], true
}

func (s *Scene) indexOf(id int64) int {
	for i := range s.objects {
		if s.objects[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneObjects(in []Object) []Object {
	if in == nil {
		return nil
	}
	out := make([]Object, len(in))
	copy(out, in)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// canvas smaller than the object: pin to the low edge
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
