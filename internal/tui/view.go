package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"citymap/internal/catalog"
	"citymap/internal/controller"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := computeLayout(m.width, m.height)
	f := m.ctrl.Frame()

	// Header
	title := titleStyle.Render(" citymap ─ city plan editor ")
	mode := dimStyle.Render(" " + modeText(f) + " ")
	if f.Mode == controller.ToolArmed {
		mode = activeStyle.Render(" " + modeText(f) + " ")
	}
	gap := max(0, lay.width-lipgloss.Width(title)-lipgloss.Width(mode))
	header := lipgloss.NewStyle().Width(lay.width).Render(title + strings.Repeat(" ", gap) + mode)

	// Sidebar
	var sidebar string
	if m.explorer {
		sidebar = m.l.View()
	} else {
		rows := sidebarRows(f)
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, r.text)
		}
		sidebar = strings.Join(lines, "\n")
	}
	sidebar = lipgloss.NewStyle().Width(lay.sidebarW).Height(lay.bodyH).MaxHeight(lay.bodyH).Render(sidebar)

	// Map viewport
	var mapView string
	switch {
	case f.DeletePending || f.ClearPending:
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, dialogStyle.Render(confirmText(f)))
	case m.showTable:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(renderCanvas(f, lay.mapW, lay.mapH))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)

	// Footer: notice and cursor hint, then help
	status := dimStyle.Render(fmt.Sprintf(" %d objects ", f.Stats.Total))
	if f.Notice != "" {
		status = noticeStyle.Render(" " + f.Notice + " ")
	}
	cursor := dimStyle.Render(fmt.Sprintf("  cursor: %s  ", f.Cursor))
	spacer := max(0, lay.width-lipgloss.Width(status)-lipgloss.Width(cursor))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		status+strings.Repeat(" ", spacer)+cursor,
		m.renderHelp(),
	)
	footer = lipgloss.NewStyle().Width(lay.width).Render(footer)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.width).Height(m.height).Render(ui)
}

func modeText(f controller.Frame) string {
	switch f.Mode {
	case controller.ToolArmed:
		return "Placing: " + catalog.MustLookup(f.Tool).Label
	case controller.Dragging:
		return "Moving object"
	default:
		return "Ready to place"
	}
}

func confirmText(f controller.Frame) string {
	if f.ClearPending {
		return "Clear the whole map?\n\n[y] clear   [n] cancel"
	}
	return "Delete this object?\n\n[y] delete   [n] cancel"
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	var keys []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		keys = append(keys, h.Key+" "+h.Desc)
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
