// Package render projects editor state into draw instructions. Build is pure
// and rebuilds the whole list on every call.
package render

import (
	"citymap/internal/catalog"
	"citymap/internal/scene"
)

// Item is one visible object ready to draw.
type Item struct {
	Object   scene.Object
	Icon     string
	Selected bool
	Dragging bool
}

// Instruction is the ordered list of items, bottom first.
type Instruction struct {
	Items []Item
}

// Build keeps insertion order and skips filtered-out types.
func Build(objs []scene.Object, filters scene.Filters, sel scene.Selection) Instruction {
	ins := Instruction{Items: make([]Item, 0, len(objs))}
	for _, o := range objs {
		if !filters.Visible(o.Type) {
			continue
		}
		meta, _ := catalog.Lookup(o.Type)
		selected := sel.Active && sel.ID == o.ID
		ins.Items = append(ins.Items, Item{
			Object:   o,
			Icon:     meta.Icon,
			Selected: selected,
			Dragging: selected && sel.Dragging,
		})
	}
	return ins
}

// Len is the number of visible items.
func (ins Instruction) Len() int { return len(ins.Items) }

// At returns the topmost item containing (x, y) within the hit tolerance.
func (ins Instruction) At(x, y float64) (Item, bool) {
	for i := len(ins.Items) - 1; i >= 0; i-- {
		it := ins.Items[i]
		dx, dy := it.Object.X-x, it.Object.Y-y
		r := it.Object.Size/2 + scene.HitTolerance
		if dx*dx+dy*dy <= r*r {
			return it, true
		}
	}
	return Item{}, false
}
