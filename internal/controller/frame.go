package controller

import (
	"citymap/internal/catalog"
	"citymap/internal/render"
)

// Cursor is the pointer hint for the host.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorGrab      Cursor = "grab"
	CursorGrabbing  Cursor = "grabbing"
	CursorCrosshair Cursor = "crosshair"
)

// Stats is the unfiltered object tally.
type Stats struct {
	Total    int
	House    int
	Road     int
	School   int
	Hospital int
	Park     int
}

// ByType returns the count for t.
func (s Stats) ByType(t catalog.Type) int {
	switch t {
	case catalog.House:
		return s.House
	case catalog.Road:
		return s.Road
	case catalog.School:
		return s.School
	case catalog.Hospital:
		return s.Hospital
	case catalog.Park:
		return s.Park
	}
	return 0
}

// Frame is everything a host needs to draw one screen.
type Frame struct {
	Render        render.Instruction
	Stats         Stats
	Notice        string
	NoticeSeq     int
	CanUndo       bool
	Mode          Mode
	Tool          catalog.Type
	DeletePending bool
	ClearPending  bool
	Cursor        Cursor
	Filters       map[catalog.Type]bool
	Width         float64
	Height        float64
}

// Frame rebuilds the output surface from current state.
func (c *Controller) Frame() Frame {
	counts := c.scene.Counts()
	return Frame{
		Render: render.Build(c.scene.Objects(), c.scene.Filters(), c.scene.Selection()),
		Stats: Stats{
			Total:    counts.Total,
			House:    counts.ByType[catalog.House],
			Road:     counts.ByType[catalog.Road],
			School:   counts.ByType[catalog.School],
			Hospital: counts.ByType[catalog.Hospital],
			Park:     counts.ByType[catalog.Park],
		},
		Notice:        c.notice,
		NoticeSeq:     c.noticeSeq,
		CanUndo:       c.history.CanUndo(),
		Mode:          c.mode,
		Tool:          c.tool,
		DeletePending: c.deletePending,
		ClearPending:  c.clearPending,
		Cursor:        c.cursor,
		Filters:       c.scene.Filters(),
		Width:         c.width,
		Height:        c.height,
	}
}
