package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
)

const (
	background  = "#F4F6F8"
	outline     = "#FFFFFF"
	accent      = "#222831"
	outlineW    = 2.0
	selectedW   = 4.0
	dragShadowD = 3.0
)

// WritePNG rasterizes ins onto a width by height canvas and encodes it as PNG.
// Icons are not drawn; the fill color carries the type.
func WritePNG(w io.Writer, ins Instruction, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render png: invalid canvas %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(background))

	for _, it := range ins.Items {
		o := it.Object
		r := o.Size / 2
		if it.Dragging {
			dc.SetRGBA(0, 0, 0, 0.25)
			dc.DrawCircle(o.X+dragShadowD, o.Y+dragShadowD, r)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("render png: shadow %d: %w", o.ID, err)
			}
		}
		dc.SetHexColor(o.Color)
		dc.DrawCircle(o.X, o.Y, r)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("render png: fill %d: %w", o.ID, err)
		}
		dc.SetHexColor(outline)
		dc.SetLineWidth(outlineW)
		if it.Selected {
			dc.SetHexColor(accent)
			dc.SetLineWidth(selectedW)
		}
		dc.DrawCircle(o.X, o.Y, r)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("render png: stroke %d: %w", o.ID, err)
		}
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render png: encode: %w", err)
	}
	return nil
}
