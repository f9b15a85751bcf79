package assets

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/milk9111/rustyfarm/prefabs"
)

var defaultSheetColor = color.NRGBA{R: 0xcc, G: 0x44, B: 0xcc, A: 0xff}

// Placeholder draws a sheet of flat cells in the sheet's color. Rows get
// darker and the inner square shrinks with the column, so animation and
// facing stay readable without art.
func Placeholder(spec prefabs.SheetSpec) image.Image {
	cw, ch := max(spec.CellW, 1), max(spec.CellH, 1)
	dc := gg.NewContext(spec.Cols*cw, spec.Rows*ch)

	base := color.Color(defaultSheetColor)
	if spec.Color != nil && spec.Color.Color != nil {
		base = spec.Color.Color
	}
	r, g, b, _ := base.RGBA()
	fr, fg, fb := float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff

	for row := range spec.Rows {
		shade := 1 - 0.06*float64(row)
		for col := range spec.Cols {
			x, y := float64(col*cw), float64(row*ch)

			dc.SetRGB(fr*shade, fg*shade, fb*shade)
			dc.DrawRectangle(x, y, float64(cw), float64(ch))
			dc.Fill()

			inset := float64(2 + col%4)
			dc.SetRGB(min(fr*shade+0.16, 1), min(fg*shade+0.16, 1), min(fb*shade+0.16, 1))
			dc.DrawRectangle(x+inset, y+inset, float64(cw)-2*inset, float64(ch)-2*inset)
			dc.Fill()

			dc.SetRGB(fr*shade/2, fg*shade/2, fb*shade/2)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x+0.5, y+0.5, float64(cw)-1, float64(ch)-1)
			dc.Stroke()
		}
	}
	return dc.Image()
}
