package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"citymap/internal/catalog"
)

func objectColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "type", Width: 12},
		{Title: "x", Width: 8},
		{Title: "y", Width: 8},
		{Title: "shown", Width: 6},
	}
}

// refreshTable rebuilds the rows from the full object list.
func (m *Model) refreshTable() {
	f := m.ctrl.Frame()
	objs := m.ctrl.Objects()
	rows := make([]table.Row, 0, len(objs))
	for _, o := range objs {
		shown := "yes"
		if !f.Filters[o.Type] {
			shown = "no"
		}
		meta, _ := catalog.Lookup(o.Type)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", o.ID),
			meta.Icon + " " + o.Label,
			fmt.Sprintf("%.0f", o.X),
			fmt.Sprintf("%.0f", o.Y),
			shown,
		})
	}
	// Avoid transient mismatch: clear rows, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

// selectedRowID is the object id under the table cursor.
func (m Model) selectedRowID() (int64, bool) {
	row := m.tbl.SelectedRow()
	if row == nil {
		return 0, false
	}
	var id int64
	if _, err := fmt.Sscan(row[0], &id); err != nil {
		return 0, false
	}
	return id, true
}
