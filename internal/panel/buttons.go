package panel

import (
	"log"
	"time"

	"github.com/sweeney/joypanel/internal/gpio"
	"github.com/sweeney/joypanel/internal/led"
)

// HandleEdge dispatches a falling edge to its button handler.
// It is the gpio.Handler the button watcher is registered with.
func (c *Controller) HandleEdge(e gpio.Edge) {
	switch e.Line {
	case gpio.LineJoystickButton:
		c.HandleJoystickButton(e.Time)
	case gpio.LineButtonA:
		c.HandleButtonA(e.Time, e.Low)
	default:
		log.Printf("edge on unknown line %d ignored", e.Line)
	}
}

// HandleJoystickButton toggles the indicator LED and advances the border
// style if the edge passes the joystick debouncer. It reports whether the
// edge was accepted.
func (c *Controller) HandleJoystickButton(now time.Duration) bool {
	if !c.joyGate.Accept(now) {
		c.counts.joyRejected.Add(1)
		return false
	}

	green := !c.state.green.Load()
	c.state.green.Store(green)
	if err := c.indicator.Set(green); err != nil {
		c.counts.joyErrors.Add(1)
		log.Printf("indicator write error: %v", err)
	}

	border := c.state.Border().Next()
	c.state.border.Store(uint32(border))

	c.counts.joyAccepted.Add(1)
	log.Printf("joystick button: indicator=%s border=%s", onOff(green), border)
	return true
}

// HandleButtonA toggles the LED mode once per qualifying edge: the line must
// still be held low and the edge must pass the button A debouncer. Disabling
// zeroes both brightness LEDs immediately. Either way the status overlay is
// armed from now. It reports whether the mode was toggled.
func (c *Controller) HandleButtonA(now time.Duration, low bool) bool {
	if !low {
		c.counts.btnAReleased.Add(1)
		return false
	}
	if !c.btnAGate.Accept(now) {
		c.counts.btnARejected.Add(1)
		return false
	}

	enabled := !c.state.ledEnabled.Load()
	c.state.ledEnabled.Store(enabled)

	if !enabled {
		log.Printf("LEDs OFF")
		for _, ch := range []led.Channel{led.Red, led.Blue} {
			if err := c.dimmer.SetLevel(ch, 0); err != nil {
				c.counts.btnAErrors.Add(1)
				log.Printf("dimmer %s write error: %v", ch, err)
			}
		}
	} else {
		log.Printf("LEDs ON")
	}

	c.state.armOverlay(now)
	c.counts.btnAAccepted.Add(1)
	return true
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
