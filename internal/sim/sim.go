// Package sim runs the joystick panel against simulated hardware: the
// pointer stands in for the joystick, keys for the buttons, and the OLED
// and LEDs are rendered into an RGBA image for a desktop window.
//
// The package has no windowing dependency; cmd/joypanel-sim drives it.
package sim

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/sweeney/joypanel/internal/clock"
	"github.com/sweeney/joypanel/internal/display"
	"github.com/sweeney/joypanel/internal/gpio"
	"github.com/sweeney/joypanel/internal/led"
	"github.com/sweeney/joypanel/internal/logic"
	"github.com/sweeney/joypanel/internal/panel"
)

// TPS is the simulation rate: one render tick every 10ms.
const TPS = 100

// barHeight is the height of the LED strip under the display, in display pixels.
const barHeight = 16

var (
	colorLit   = color.RGBA{0xC8, 0xE6, 0xFF, 0xFF}
	colorDark  = color.RGBA{0x08, 0x08, 0x10, 0xFF}
	colorBar   = color.RGBA{0x20, 0x20, 0x20, 0xFF}
	colorGreen = color.RGBA{0x00, 0xFF, 0x00, 0xFF}
)

// Input is the pointer and key state for one step. The cursor is in
// screen pixels; the Pressed fields are set only on the step the key
// went down.
type Input struct {
	CursorX, CursorY int

	JoystickPressed bool
	ButtonAPressed  bool
	ButtonAHeld     bool
}

// Config configures a Sim.
type Config struct {
	// Scale is the size of one display pixel on screen.
	Scale int
	Panel panel.Config
}

// Sim owns a panel Controller wired to a framebuffer and simulated outputs.
type Sim struct {
	scale int
	now   clock.Func

	fb      *display.Framebuffer
	outputs *Outputs
	ctrl    *panel.Controller

	sample logic.Sample
	frame  logic.Frame
	img    *image.RGBA
	pix    []bool
}

// New creates a Sim using now as its time base. Scale is at least 1.
func New(cfg Config, now clock.Func) *Sim {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	fb := display.NewFramebuffer(logic.DisplayWidth, logic.DisplayHeight)
	outputs := &Outputs{}

	s := &Sim{
		scale:   cfg.Scale,
		now:     now,
		fb:      fb,
		outputs: outputs,
		ctrl:    panel.New(cfg.Panel, outputs, outputs, display.NewCanvas(fb)),
		sample:  logic.Sample{X: logic.Center, Y: logic.Center},
	}
	w, h := s.Size()
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return s
}

// Size returns the screen size in pixels: the display plus the LED strip.
func (s *Sim) Size() (int, int) {
	return logic.DisplayWidth * s.scale, (logic.DisplayHeight + barHeight) * s.scale
}

// Controller returns the simulated panel.
func (s *Sim) Controller() *panel.Controller {
	return s.ctrl
}

// Outputs returns the simulated LEDs.
func (s *Sim) Outputs() *Outputs {
	return s.outputs
}

// Framebuffer returns the simulated display.
func (s *Sim) Framebuffer() *display.Framebuffer {
	return s.fb
}

// Sample returns the joystick sample used by the last step.
func (s *Sim) Sample() logic.Sample {
	return s.sample
}

// Step delivers button edges for in, then runs one render tick.
func (s *Sim) Step(in Input) (logic.Frame, error) {
	t := s.now()

	if in.JoystickPressed {
		s.ctrl.HandleEdge(gpio.Edge{Line: gpio.LineJoystickButton, Time: t, Low: true})
	}
	if in.ButtonAPressed {
		s.ctrl.HandleEdge(gpio.Edge{Line: gpio.LineButtonA, Time: t, Low: in.ButtonAHeld})
	}

	s.sample = SampleAt(in.CursorX, in.CursorY, logic.DisplayWidth*s.scale, logic.DisplayHeight*s.scale)

	frame, err := s.ctrl.Tick(t, s.sample)
	s.frame = frame
	return frame, err
}

// SampleAt converts a cursor position over a width x height display area
// into the joystick sample whose indicator square sits under the cursor.
// Horizontal position drives the Y axis; vertical position drives the X
// axis, inverted. Positions outside the area clamp to its edges.
func SampleAt(x, y, width, height int) logic.Sample {
	if width < 2 || height < 2 {
		return logic.Sample{X: logic.Center, Y: logic.Center}
	}
	x = clamp(x, 0, width-1)
	y = clamp(y, 0, height-1)

	return logic.Sample{
		X: uint16((height - 1 - y) * logic.MaxSample / (height - 1)),
		Y: uint16(x * logic.MaxSample / (width - 1)),
	}
}

// Image renders the published display frame and the LED strip.
// The returned image is reused by the next call.
func (s *Sim) Image() *image.RGBA {
	sc := s.scale
	s.pix = s.fb.Snapshot(s.pix)
	for i, on := range s.pix {
		x, y := i%logic.DisplayWidth, i/logic.DisplayWidth
		c := colorDark
		if on {
			c = colorLit
		}
		fill(s.img, image.Rect(x*sc, y*sc, (x+1)*sc, (y+1)*sc), c)
	}

	top := logic.DisplayHeight * sc
	w, h := s.Size()
	fill(s.img, image.Rect(0, top, w, h), colorBar)

	green := colorDark
	if s.outputs.Green() {
		green = colorGreen
	}
	red := color.RGBA{R: intensity(s.outputs.Level(led.Red)), A: 0xFF}
	blue := color.RGBA{B: intensity(s.outputs.Level(led.Blue)), A: 0xFF}

	for i, c := range []color.RGBA{green, red, blue} {
		s.drawLamp(image.Pt((16+i*24)*sc, top+8*sc), 5*sc, c)
	}
	return s.img
}

// LampColors returns the colors the strip shows for the indicator, red and
// blue LEDs.
func (s *Sim) LampColors() (green, red, blue color.RGBA) {
	img := s.Image()
	top := logic.DisplayHeight*s.scale + 8*s.scale
	at := func(i int) color.RGBA {
		return img.RGBAAt((16+i*24)*s.scale, top)
	}
	return at(0), at(1), at(2)
}

// drawLamp fills a disc of radius r around center.
func (s *Sim) drawLamp(center image.Point, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.img.SetRGBA(center.X+dx, center.Y+dy, c)
			}
		}
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// intensity maps a 12-bit PWM level to an 8-bit channel.
func intensity(level uint16) uint8 {
	if level > logic.MaxLevel {
		level = logic.MaxLevel
	}
	return uint8(uint32(level) * 0xFF / logic.MaxLevel)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
