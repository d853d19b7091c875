package tui

import (
	"strings"

	"citymap/internal/controller"
)

const (
	selectedColor = "#FFFFFF"
	gridColor     = "#1F2933"
)

// renderCanvas draws one frame on a w by h cell grid. Canvas units are
// scaled per axis onto the 2x4 braille microgrid, so circles come out as
// ellipses that look round on a typical terminal font.
func renderCanvas(f controller.Frame, w, h int) string {
	br := newBrailleBuf(w, h)
	if f.Width <= 0 || f.Height <= 0 {
		return strings.Join(br.toLines(), "\n")
	}
	sx := float64(w*2) / f.Width
	sy := float64(h*4) / f.Height

	// light dot grid every 100 units
	for gy := 100.0; gy < f.Height; gy += 100 {
		for gx := 100.0; gx < f.Width; gx += 100 {
			br.setPixel(int(gx*sx), int(gy*sy), gridColor)
		}
	}
	for _, it := range f.Render.Items {
		o := it.Object
		cx, cy := o.X*sx, o.Y*sy
		rx, ry := o.Size/2*sx, o.Size/2*sy
		br.fillEllipseMicro(cx, cy, rx, ry, o.Color)
		if it.Selected {
			br.strokeEllipseMicro(cx, cy, rx+1, ry+1, selectedColor)
		}
		if it.Icon != "" && rx >= 2 && ry >= 3 {
			br.setIcon(int((cx-1)/2), int(cy/4), it.Icon)
		}
	}
	return strings.Join(br.toColoredLines(), "\n")
}
