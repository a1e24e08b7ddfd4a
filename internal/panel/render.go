package panel

import (
	"fmt"
	"time"

	"github.com/sweeney/joypanel/internal/led"
	"github.com/sweeney/joypanel/internal/logic"
)

// Tick runs one render tick at now with a fresh joystick sample: it drives
// the brightness LEDs, decides between the overlay and the position view,
// and draws that frame with one Clear, the draw calls and one Flush.
//
// Dimmer errors are counted and reported together with the flush error;
// the frame is always drawn.
func (c *Controller) Tick(now time.Duration, s logic.Sample) (logic.Frame, error) {
	var errs []error

	if c.state.LEDEnabled() {
		errs = append(errs, c.driveLEDs(s)...)
	}

	frame := c.nextFrame(now, s)
	c.draw(frame)
	if err := c.surface.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush display: %w", err))
	}

	switch frame.View {
	case logic.ShowingOverlay:
		c.counts.overlayFrames.Add(1)
	default:
		c.counts.positionFrames.Add(1)
	}

	if len(errs) > 0 {
		c.counts.tickErrors.Add(int64(len(errs)))
		return frame, fmt.Errorf("tick errors: %v", errs)
	}
	return frame, nil
}

// driveLEDs writes both brightness levels. If button A disabled the LEDs
// while the levels were being written, the LEDs are zeroed again so a
// stale level never outlives the disable.
func (c *Controller) driveLEDs(s logic.Sample) []error {
	var errs []error
	levels := []struct {
		ch    led.Channel
		level uint16
	}{
		{led.Red, logic.Brightness(s.X, true)},
		{led.Blue, logic.Brightness(s.Y, true)},
	}

	for _, l := range levels {
		if err := c.dimmer.SetLevel(l.ch, l.level); err != nil {
			errs = append(errs, fmt.Errorf("dimmer %s: %w", l.ch, err))
		}
	}

	if !c.state.LEDEnabled() {
		for _, l := range levels {
			if err := c.dimmer.SetLevel(l.ch, 0); err != nil {
				errs = append(errs, fmt.Errorf("dimmer %s: %w", l.ch, err))
			}
		}
	}
	return errs
}

// nextFrame runs the overlay state machine. An expired overlay is disarmed
// with CompareAndSwap; if button A re-armed it in the meantime the CAS fails
// and the fresh overlay is decided on instead.
func (c *Controller) nextFrame(now time.Duration, s logic.Sample) logic.Frame {
	word := c.state.overlay.Load()
	active, start := unpackOverlay(word)
	view, expired := logic.DecideView(active, start, now, c.cfg.OverlayHold)

	if expired {
		if c.state.disarmOverlay(word) {
			c.counts.overlaysExpired.Add(1)
		} else {
			active, start = c.state.Overlay()
			view, _ = logic.DecideView(active, start, now, c.cfg.OverlayHold)
		}
	}

	if view == logic.ShowingOverlay {
		return logic.OverlayFrame(c.state.LEDEnabled())
	}
	return logic.PositionFrame(s, c.state.Border())
}

func (c *Controller) draw(f logic.Frame) {
	c.surface.Clear()

	switch f.View {
	case logic.ShowingOverlay:
		c.surface.DrawText(f.Text, f.TextX, f.TextY)
	case logic.ShowingPosition:
		c.surface.DrawFilledRect(f.Square.X, f.Square.Y, logic.SquareSize, logic.SquareSize)
		for _, l := range logic.BorderLines(f.Border, logic.DisplayWidth, logic.DisplayHeight) {
			c.surface.DrawLine(l.X0, l.Y0, l.X1, l.Y1)
		}
	}
}
