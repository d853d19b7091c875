package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"citymap/internal/catalog"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lay := computeLayout(m.width, m.height)
		m.l.SetSize(lay.sidebarW-2, lay.bodyH-2)
	case noticeExpiredMsg:
		m.ctrl.DismissNotice(msg.seq)
		return m, nil
	case tea.KeyMsg:
		var quit bool
		m, cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	if m.showTable {
		m.refreshTable()
	}
	return m, tea.Batch(cmd, m.scheduleNotice())
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, nil, true
	}
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.explorer && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd, false
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			return m, nil, false
		case "enter":
			text := strings.TrimSpace(m.ta.Value())
			if text == "" {
				m.ctrl.Notify("paste: empty")
				return m, nil, false
			}
			m.importPasted(text)
			m.pasteMode = false
			m.ta.Blur()
			return m, nil, false
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd, false
	}

	f := m.ctrl.Frame()
	if f.DeletePending || f.ClearPending {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if f.DeletePending {
				m.ctrl.DeleteConfirmed()
			} else {
				m.ctrl.ClearConfirmed()
			}
		case key.Matches(msg, m.keys.Cancel):
			if f.DeletePending {
				m.ctrl.DeleteCancelled()
			} else {
				m.ctrl.ClearCancelled()
			}
		case key.Matches(msg, m.keys.Escape):
			m.ctrl.EscapePressed()
		case key.Matches(msg, m.keys.Quit):
			return m, nil, true
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, nil, true
	case key.Matches(msg, m.keys.Undo):
		m.ctrl.UndoRequested()
	case key.Matches(msg, m.keys.Save):
		_ = m.ctrl.SaveRequested(m.ctx)
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.ClearRequested()
	case key.Matches(msg, m.keys.Escape):
		if m.showTable {
			m.showTable = false
			return m, nil, false
		}
		m.explorer = false
		m.ctrl.EscapePressed()
	case key.Matches(msg, m.keys.Delete):
		if m.showTable {
			if id, ok := m.selectedRowID(); ok {
				m.ctrl.ObjectSecondaryClicked(id)
			}
			return m, nil, false
		}
		m.ctrl.DeleteKeyPressed()
	case key.Matches(msg, m.keys.Explorer):
		m.explorer = !m.explorer
		if m.explorer {
			m.refreshDir()
		}
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
	case key.Matches(msg, m.keys.Table):
		m.showTable = !m.showTable
		if m.showTable {
			m.refreshTable()
		}
	case key.Matches(msg, m.keys.PNG):
		m.exportPNG()
	case key.Matches(msg, m.keys.GeoJSON):
		m.exportPoints("citymap.geojson")
	case key.Matches(msg, m.keys.CSV):
		m.exportPoints("citymap.csv")
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	case key.Matches(msg, m.keys.Enter) && m.explorer:
		if it, ok := m.l.SelectedItem().(fileItem); ok {
			m.loadPath(it.path)
		}
	case key.Matches(msg, m.keys.Enter) && m.showTable:
		if id, ok := m.selectedRowID(); ok {
			m.ctrl.Select(id)
		}
	default:
		if i := matchIndex(msg, m.keys.Tools); i >= 0 {
			_ = m.ctrl.ToolSelected(catalog.Types()[i])
			return m, nil, false
		}
		if i := matchIndex(msg, m.keys.Filters); i >= 0 {
			t := catalog.Types()[i]
			_ = m.ctrl.FilterToggled(t, !f.Filters[t])
			return m, nil, false
		}
		// navigation keys go to the focused component
		var cmd tea.Cmd
		switch {
		case m.showTable:
			m.tbl, cmd = m.tbl.Update(msg)
		case m.explorer:
			m.l, cmd = m.l.Update(msg)
		}
		return m, cmd, false
	}
	return m, nil, false
}

func matchIndex(msg tea.KeyMsg, bindings []key.Binding) int {
	for i, b := range bindings {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := computeLayout(m.width, m.height)
	f := m.ctrl.Frame()
	inMap := lay.inMap(msg.X, msg.Y) && !m.showTable && !m.pasteMode

	switch msg.Action {
	case tea.MouseActionPress:
		if row, ok := lay.inSidebar(msg.X, msg.Y); ok && !m.explorer && msg.Button == tea.MouseButtonLeft {
			m.clickSidebar(row)
			return
		}
		if !inMap {
			return
		}
		x, y := lay.cellToCanvas(msg.X, msg.Y, f.Width, f.Height)
		hit, onObject := m.ctrl.HitTest(x, y)
		switch msg.Button {
		case tea.MouseButtonLeft:
			now := m.now()
			if onObject && m.lastPress.id == hit.ID && now.Sub(m.lastPress.at) <= doubleClickDelay {
				m.ctrl.ObjectDoubleClicked(hit.ID)
				m.lastPress = press{}
				return
			}
			m.ctrl.CanvasPrimaryClick(x, y)
			m.lastPress = press{at: now}
			if onObject {
				m.lastPress.id = hit.ID
			}
		case tea.MouseButtonRight:
			if onObject {
				m.ctrl.ObjectSecondaryClicked(hit.ID)
			}
		}
	case tea.MouseActionRelease:
		m.ctrl.CanvasPointerRelease()
	case tea.MouseActionMotion:
		if !inMap {
			if m.inCanvas {
				m.ctrl.CanvasPointerLeave()
			}
			m.inCanvas = false
			return
		}
		m.inCanvas = true
		x, y := lay.cellToCanvas(msg.X, msg.Y, f.Width, f.Height)
		m.ctrl.CanvasPointerMove(x, y)
	}
	if m.explorer {
		m.l, _ = m.l.Update(msg)
	}
}

func (m *Model) clickSidebar(row int) {
	rows := sidebarRows(m.ctrl.Frame())
	if row < 0 || row >= len(rows) {
		return
	}
	r := rows[row]
	switch r.kind {
	case sideTool:
		_ = m.ctrl.ToolSelected(r.typ)
	case sideFilter:
		_ = m.ctrl.FilterToggled(r.typ, !m.ctrl.Frame().Filters[r.typ])
	case sideSave:
		_ = m.ctrl.SaveRequested(m.ctx)
	case sideUndo:
		m.ctrl.UndoRequested()
	case sideClear:
		m.ctrl.ClearRequested()
	}
}
