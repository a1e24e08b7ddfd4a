package sim

import (
	"sync/atomic"

	"github.com/sweeney/joypanel/internal/led"
)

// Outputs stands in for the indicator line and the PWM pins, keeping their
// latest values for drawing.
type Outputs struct {
	red   atomic.Uint32
	blue  atomic.Uint32
	green atomic.Bool
}

// SetLevel stores a brightness level.
func (o *Outputs) SetLevel(ch led.Channel, level uint16) error {
	switch ch {
	case led.Red:
		o.red.Store(uint32(level))
	case led.Blue:
		o.blue.Store(uint32(level))
	}
	return nil
}

// Level returns the last level written to ch.
func (o *Outputs) Level(ch led.Channel) uint16 {
	switch ch {
	case led.Red:
		return uint16(o.red.Load())
	case led.Blue:
		return uint16(o.blue.Load())
	}
	return 0
}

// Set stores the indicator state.
func (o *Outputs) Set(on bool) error {
	o.green.Store(on)
	return nil
}

// Green reports the indicator state.
func (o *Outputs) Green() bool {
	return o.green.Load()
}

func (o *Outputs) Close() error {
	return nil
}
