package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit mask
	col   [][]string // per-cell color of the last writer
	icons [][]string // per-cell overlay glyph, two cells wide
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]string, h)
	icons := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]string, w)
		icons[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col, icons: icons}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.col[cy][cx] = color
}

// strokeEllipseMicro outlines an axis-aligned ellipse on the microgrid.
func (b *brailleBuf) strokeEllipseMicro(cx, cy, rx, ry float64, color string) {
	steps := int(math.Max(16, 4*(rx+ry)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		b.setPixel(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))), color)
	}
}

// fillEllipseMicro fills an axis-aligned ellipse scanline by scanline.
func (b *brailleBuf) fillEllipseMicro(cx, cy, rx, ry float64, color string) {
	if rx <= 0 || ry <= 0 {
		b.setPixel(int(cx), int(cy), color)
		return
	}
	for y := int(math.Ceil(cy - ry)); y <= int(math.Floor(cy+ry)); y++ {
		dy := (float64(y) - cy) / ry
		half := rx * math.Sqrt(math.Max(0, 1-dy*dy))
		for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx+half)); x++ {
			b.setPixel(x, y, color)
		}
	}
}

// setIcon places a wide glyph at cell (cx, cy); the next cell is consumed.
func (b *brailleBuf) setIcon(cx, cy int, icon string) {
	if cy < 0 || cy >= b.h || cx < 0 || cx+1 >= b.w {
		return
	}
	b.icons[cy][cx] = icon
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// toColoredLines renders with per-cell colors and icon overlays. Runs of
// the same color share one style so the escape overhead stays small.
func (b *brailleBuf) toColoredLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		runCol := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runCol)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if icon := b.icons[y][x]; icon != "" {
				flush()
				sb.WriteString(icon)
				x++ // icons are two cells wide
				continue
			}
			mask := b.m[y][x]
			r, c := ' ', ""
			if mask != 0 {
				r, c = rune(0x2800+int(mask)), b.col[y][x]
			}
			if c != runCol {
				flush()
				runCol = c
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
