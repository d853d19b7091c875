// Package geom converts scene objects to and from GeoJSON and CSV point
// files, and fits foreign coordinates onto the canvas.
package geom

import (
	"errors"
	"math"

	"citymap/internal/catalog"
	"citymap/internal/scene"
)

// ErrNoObjects is returned when a file parses but holds no usable points.
var ErrNoObjects = errors.New("geom: no usable objects")

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the bounding box of the object centers.
func Bounds(objs []scene.Object) BBox {
	var bb BBox
	for i, o := range objs {
		if i == 0 {
			bb = BBox{MinX: o.X, MinY: o.Y, MaxX: o.X, MaxY: o.Y}
			continue
		}
		bb.MinX = math.Min(bb.MinX, o.X)
		bb.MinY = math.Min(bb.MinY, o.Y)
		bb.MaxX = math.Max(bb.MaxX, o.X)
		bb.MaxY = math.Max(bb.MaxY, o.Y)
	}
	return bb
}

// record is a parsed point before it becomes a scene object.
type record struct {
	id   int64
	typ  catalog.Type
	x, y float64
}

// build turns records into objects with catalog metadata. Missing,
// non-positive or repeated ids are replaced with fresh ones above the
// largest id seen.
func build(recs []record) []scene.Object {
	var maxID int64
	for _, r := range recs {
		if r.id > maxID {
			maxID = r.id
		}
	}
	seen := make(map[int64]bool, len(recs))
	objs := make([]scene.Object, 0, len(recs))
	for _, r := range recs {
		id := r.id
		if id <= 0 || seen[id] {
			maxID++
			id = maxID
		}
		seen[id] = true
		meta := catalog.MustLookup(r.typ)
		objs = append(objs, scene.Object{
			ID:    id,
			Type:  r.typ,
			X:     r.x,
			Y:     r.y,
			Size:  meta.Size,
			Label: meta.Label,
			Color: meta.Color,
		})
	}
	return objs
}

// Fit leaves objs untouched when every object already lies fully inside a
// w by h canvas. Otherwise the points are treated as geographic (y grows
// north) and scaled uniformly into the canvas, keeping a margin of the
// largest radius.
func Fit(objs []scene.Object, w, h float64) []scene.Object {
	out := make([]scene.Object, len(objs))
	copy(out, objs)
	if len(out) == 0 || inside(out, w, h) {
		return out
	}
	var margin float64
	for _, o := range out {
		margin = math.Max(margin, o.Size/2)
	}
	bb := Bounds(out)
	availW, availH := w-2*margin, h-2*margin
	if availW <= 0 || availH <= 0 {
		for i := range out {
			out[i].X, out[i].Y = w/2, h/2
		}
		return out
	}
	scale := math.Inf(1)
	if bb.Width() > 0 {
		scale = availW / bb.Width()
	}
	if bb.Height() > 0 {
		scale = math.Min(scale, availH/bb.Height())
	}
	if math.IsInf(scale, 1) {
		scale = 0
	}
	// center the scaled box
	offX := margin + (availW-bb.Width()*scale)/2
	offY := margin + (availH-bb.Height()*scale)/2
	for i := range out {
		out[i].X = offX + (out[i].X-bb.MinX)*scale
		out[i].Y = offY + (bb.MaxY-out[i].Y)*scale
	}
	return out
}

func inside(objs []scene.Object, w, h float64) bool {
	for _, o := range objs {
		r := o.Size / 2
		if o.X < r || o.X > w-r || o.Y < r || o.Y > h-r {
			return false
		}
	}
	return true
}
