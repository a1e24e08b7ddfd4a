// Command joypanel-sim runs the joystick panel in a desktop window: the mouse
// is the joystick, J is the joystick button and A is button A.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sweeney/joypanel/internal/clock"
	"github.com/sweeney/joypanel/internal/logic"
	"github.com/sweeney/joypanel/internal/panel"
	"github.com/sweeney/joypanel/internal/sim"
)

func main() {
	scale := flag.Int("scale", 4, "Screen pixels per display pixel")
	debounce := flag.Duration("debounce", logic.DefaultDebounce, "Button debounce window")
	overlay := flag.Duration("overlay", logic.DefaultOverlayHold, "How long the LED ON/OFF overlay is shown")

	flag.Parse()

	if err := run(*scale, *debounce, *overlay); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(scale int, debounce, overlay time.Duration) error {
	if scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", scale)
	}

	s := sim.New(sim.Config{
		Scale: scale,
		Panel: panel.Config{Debounce: debounce, OverlayHold: overlay},
	}, clock.Since(time.Now()))

	w, h := s.Size()
	ebiten.SetWindowTitle("joypanel")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(sim.TPS)

	log.Printf("started: scale=%d debounce=%v overlay=%v", scale, debounce, overlay)
	return ebiten.RunGame(&game{sim: s})
}

type game struct {
	sim   *sim.Sim
	fbImg *ebiten.Image
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	in := sim.Input{
		CursorX:         x,
		CursorY:         y,
		JoystickPressed: inpututil.IsKeyJustPressed(ebiten.KeyJ),
		ButtonAPressed:  inpututil.IsKeyJustPressed(ebiten.KeyA),
		ButtonAHeld:     ebiten.IsKeyPressed(ebiten.KeyA),
	}
	if _, err := g.sim.Step(in); err != nil {
		log.Printf("render error: %v", err)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	img := g.sim.Image()
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(img.Bounds().Dx(), img.Bounds().Dy())
	}
	g.fbImg.WritePixels(img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sim.Size()
}
