package tui

import (
	"fmt"

	"citymap/internal/catalog"
	"citymap/internal/controller"
)

type sideKind int

const (
	sideNone sideKind = iota
	sideTool
	sideFilter
	sideSave
	sideUndo
	sideClear
)

// sideRow is one sidebar line; clicks on it trigger kind.
type sideRow struct {
	kind sideKind
	typ  catalog.Type
	text string
}

// sidebarRows builds the palette so View and click handling agree on rows.
func sidebarRows(f controller.Frame) []sideRow {
	rows := []sideRow{{text: titleStyle.Render("Tools")}}
	for i, t := range catalog.Types() {
		meta := catalog.MustLookup(t)
		line := fmt.Sprintf(" %d %s %s", i+1, meta.Icon, meta.Label)
		if f.Mode == controller.ToolArmed && f.Tool == t {
			line = activeStyle.Render(line)
		}
		rows = append(rows, sideRow{kind: sideTool, typ: t, text: line})
	}
	rows = append(rows, sideRow{}, sideRow{text: titleStyle.Render("Filters")})
	for _, t := range catalog.Types() {
		meta := catalog.MustLookup(t)
		box := "[ ]"
		if f.Filters[t] {
			box = "[x]"
		}
		line := fmt.Sprintf(" %s %s %-8s %3d", box, meta.Icon, meta.Label, f.Stats.ByType(t))
		if !f.Filters[t] {
			line = dimStyle.Render(line)
		}
		rows = append(rows, sideRow{kind: sideFilter, typ: t, text: line})
	}
	rows = append(rows,
		sideRow{text: dimStyle.Render(fmt.Sprintf(" total %d", f.Stats.Total))},
		sideRow{},
		sideRow{text: titleStyle.Render("Actions")},
		sideRow{kind: sideSave, text: " [s] Save"},
	)
	undo := " [ctrl+z] Undo"
	if !f.CanUndo {
		undo = dimStyle.Render(undo)
	}
	rows = append(rows,
		sideRow{kind: sideUndo, text: undo},
		sideRow{kind: sideClear, text: " [c] Clear map"},
	)
	return rows
}
