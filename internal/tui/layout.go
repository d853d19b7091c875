package tui

const (
	sidebarWidth = 26
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse mapping.
type layout struct {
	width    int
	sidebarW int
	bodyY    int
	bodyH    int
	mapX     int
	mapW     int
	mapH     int
}

func computeLayout(width, height int) layout {
	contentWidth := max(10, width)
	contentHeight := max(4, height-headerHeight-footerHeight)
	mapW := max(10, contentWidth-sidebarWidth-1)
	return layout{
		width:    contentWidth,
		sidebarW: sidebarWidth,
		bodyY:    headerHeight,
		bodyH:    contentHeight,
		mapX:     sidebarWidth + 1,
		mapW:     mapW,
		mapH:     contentHeight,
	}
}

// inMap reports whether screen cell (x, y) lies on the canvas.
func (l layout) inMap(x, y int) bool {
	return x >= l.mapX && x < l.mapX+l.mapW && y >= l.bodyY && y < l.bodyY+l.mapH
}

// inSidebar reports whether (x, y) is inside the sidebar and returns the row.
func (l layout) inSidebar(x, y int) (row int, ok bool) {
	if x < 0 || x >= l.sidebarW || y < l.bodyY || y >= l.bodyY+l.bodyH {
		return 0, false
	}
	return y - l.bodyY, true
}

// cellToCanvas maps a screen cell to the center of the matching canvas area
// of a cw by ch canvas.
func (l layout) cellToCanvas(x, y int, cw, ch float64) (float64, float64) {
	fx := (float64(x-l.mapX) + 0.5) / float64(l.mapW)
	fy := (float64(y-l.bodyY) + 0.5) / float64(l.mapH)
	return fx * cw, fy * ch
}
