package display

import (
	"image/color"
	"sync"
)

// Framebuffer is an in-memory monochrome Displayer with a back buffer that
// SetPixel writes and a front buffer that Display publishes.
type Framebuffer struct {
	mu      sync.Mutex
	width   int16
	height  int16
	back    []bool
	front   []bool
	flushes int
}

// NewFramebuffer creates a blank width x height framebuffer.
func NewFramebuffer(width, height int16) *Framebuffer {
	n := int(width) * int(height)
	return &Framebuffer{
		width:  width,
		height: height,
		back:   make([]bool, n),
		front:  make([]bool, n),
	}
}

func (f *Framebuffer) Size() (int16, int16) {
	return f.width, f.height
}

// SetPixel writes the back buffer. Off-surface pixels are ignored.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.mu.Lock()
	f.back[int(y)*int(f.width)+int(x)] = lit(c)
	f.mu.Unlock()
}

// ClearBuffer blanks the back buffer.
func (f *Framebuffer) ClearBuffer() {
	f.mu.Lock()
	for i := range f.back {
		f.back[i] = false
	}
	f.mu.Unlock()
}

// Display publishes the back buffer.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	copy(f.front, f.back)
	f.flushes++
	f.mu.Unlock()
	return nil
}

// Pixel reports whether (x, y) is lit on the published frame.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= int(f.width) || y >= int(f.height) {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.front[y*int(f.width)+x]
}

// Snapshot copies the published frame, row-major.
func (f *Framebuffer) Snapshot(dst []bool) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.front) {
		dst = make([]bool, len(f.front))
	}
	dst = dst[:len(f.front)]
	copy(dst, f.front)
	return dst
}

// Lit counts lit pixels on the published frame.
func (f *Framebuffer) Lit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.front {
		if p {
			n++
		}
	}
	return n
}

// Flushes returns how many times Display was called.
func (f *Framebuffer) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}
