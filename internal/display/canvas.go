package display

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// textAscent moves DrawText's top-left origin to the font baseline.
const textAscent = 8

// bufferClearer is implemented by displayers with a fast back buffer clear.
type bufferClearer interface {
	ClearBuffer()
}

// Canvas implements Surface on any tinygo Displayer.
type Canvas struct {
	d    drivers.Displayer
	font tinyfont.Fonter
}

// NewCanvas draws on d with the proggy 8pt font.
func NewCanvas(d drivers.Displayer) *Canvas {
	return &Canvas{d: d, font: &proggy.TinySZ8pt7b}
}

// Clear blanks the back buffer.
func (c *Canvas) Clear() {
	if bc, ok := c.d.(bufferClearer); ok {
		bc.ClearBuffer()
		return
	}
	w, h := c.d.Size()
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			c.d.SetPixel(x, y, Off)
		}
	}
}

func (c *Canvas) DrawText(text string, x, y int) {
	tinyfont.WriteLine(c.d, c.font, int16(x), int16(y+textAscent), text, On)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	tinydraw.Line(c.d, int16(x0), int16(y0), int16(x1), int16(y1), On)
}

// DrawFilledRect ignores empty rectangles.
func (c *Canvas) DrawFilledRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	tinydraw.FilledRectangle(c.d, int16(x), int16(y), int16(w), int16(h), On)
}

func (c *Canvas) Flush() error {
	return c.d.Display()
}
