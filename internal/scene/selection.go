package scene

import "citymap/internal/catalog"

// Filters maps a type to its visibility flag.
type Filters map[catalog.Type]bool

// DefaultFilters has every type visible.
func DefaultFilters() Filters {
	f := make(Filters, len(catalog.Types()))
	for _, t := range catalog.Types() {
		f[t] = true
	}
	return f
}

// Visible reports whether objects of type t are shown. Unknown types and
// types missing from the map count as hidden.
func (f Filters) Visible(t catalog.Type) bool { return f[t] }

// Clone returns an independent copy.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// SetFilter sets visibility for t. Hiding the selected object's type drops
// the drag but keeps the selection key.
func (s *Scene) SetFilter(t catalog.Type, visible bool) {
	if !t.Valid() {
		return
	}
	s.filters[t] = visible
	if !visible {
		if o, ok := s.Get(s.sel.ID); ok && o.Type == t {
			s.sel.Dragging = false
		}
	}
}

// Visible reports whether type t is currently shown.
func (s *Scene) Visible(t catalog.Type) bool { return s.filters.Visible(t) }

// Filters returns a copy of the filter set.
func (s *Scene) Filters() Filters { return s.filters.Clone() }

// Selection returns the current selection state.
func (s *Scene) Selection() Selection { return s.sel }

// Selected resolves the selection key against the scene.
func (s *Scene) Selected() (Object, bool) {
	if !s.sel.Active {
		return Object{}, false
	}
	return s.Get(s.sel.ID)
}

// Select marks id as selected without starting a drag.
func (s *Scene) Select(id int64) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.sel = Selection{ID: id, Active: true}
	return true
}

// BeginDrag selects id and records the pointer offset from its center.
func (s *Scene) BeginDrag(id int64, px, py float64) bool {
	o, ok := s.Get(id)
	if !ok {
		return false
	}
	s.sel = Selection{ID: id, Active: true, Dragging: true, OffsetX: px - o.X, OffsetY: py - o.Y}
	return true
}

// DragTo moves the dragged object so the pointer keeps its grab offset.
func (s *Scene) DragTo(px, py, w, h float64) {
	if !s.sel.Dragging {
		return
	}
	s.MoveSelected(px-s.sel.OffsetX, py-s.sel.OffsetY, w, h)
}

// EndDrag stops dragging and clears the selection.
func (s *Scene) EndDrag() { s.sel = Selection{} }

// ClearSelection drops the selection.
func (s *Scene) ClearSelection() { s.sel = Selection{} }
