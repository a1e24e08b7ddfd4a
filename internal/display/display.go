// Package display provides the monochrome drawing surface the panel renders to.
package display

import "image/color"

// Surface is the set of drawing primitives one render tick uses: one Clear,
// a bounded sequence of draws into the back buffer, one Flush.
type Surface interface {
	Clear()
	// DrawText draws text with its top-left corner at (x, y).
	DrawText(text string, x, y int)
	// DrawLine draws a line, endpoints inclusive.
	DrawLine(x0, y0, x1, y1 int)
	DrawFilledRect(x, y, w, h int)
	// Flush sends the back buffer to the device.
	Flush() error
}

// Monochrome pixel colours. Any non-black colour lights a pixel.
var (
	On  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Off = color.RGBA{}
)

func lit(c color.RGBA) bool {
	return c.R != 0 || c.G != 0 || c.B != 0
}
