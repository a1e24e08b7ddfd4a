//go:build linux

package gpio

import (
	"fmt"
	"sync/atomic"

	"github.com/warthog618/go-gpiocdev"
)

// RealButtons watches the button lines through the Linux GPIO character device.
// The kernel reports falling edges; each line's events arrive on its own
// goroutine.
type RealButtons struct {
	chip    *gpiocdev.Chip
	joyPin  atomic.Pointer[gpiocdev.Line]
	btnAPin atomic.Pointer[gpiocdev.Line]
	handler Handler
}

// NewRealButtons requests both button lines as pulled-up inputs with
// falling-edge detection and delivers their edges to h.
func NewRealButtons(chipName string, pinJoy, pinA int, h Handler) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{chip: chip, handler: h}

	joyLine, err := chip.RequestLine(pinJoy,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(b.eventHandler(LineJoystickButton, &b.joyPin)))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request joystick button pin %d: %w", pinJoy, err)
	}
	b.joyPin.Store(joyLine)

	aLine, err := chip.RequestLine(pinA,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(b.eventHandler(LineButtonA, &b.btnAPin)))
	if err != nil {
		joyLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request button A pin %d: %w", pinA, err)
	}
	b.btnAPin.Store(aLine)

	return b, nil
}

// eventHandler converts kernel line events into Edges. The line level is
// read when the event is handled; if the line is not yet published or
// cannot be read, a falling edge counts as low.
func (b *RealButtons) eventHandler(line Line, pin *atomic.Pointer[gpiocdev.Line]) func(gpiocdev.LineEvent) {
	return func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventFallingEdge || b.handler == nil {
			return
		}
		low := true
		if l := pin.Load(); l != nil {
			if v, err := l.Value(); err == nil {
				low = v == 0
			}
		}
		b.handler(Edge{Line: line, Time: evt.Timestamp, Low: low})
	}
}

// Levels returns whether each button currently reads low.
func (b *RealButtons) Levels() (bool, bool, error) {
	joy, err := b.joyPin.Load().Value()
	if err != nil {
		return false, false, fmt.Errorf("read joystick button pin: %w", err)
	}

	a, err := b.btnAPin.Load().Value()
	if err != nil {
		return false, false, fmt.Errorf("read button A pin: %w", err)
	}

	return joy == 0, a == 0, nil
}

// Close releases both lines and the chip.
func (b *RealButtons) Close() error {
	var errs []error

	if l := b.joyPin.Load(); l != nil {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close joystick button pin: %w", err))
		}
	}
	if l := b.btnAPin.Load(); l != nil {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button A pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealIndicator drives the indicator LED as a GPIO output line.
type RealIndicator struct {
	line *gpiocdev.Line
}

// NewRealIndicator requests pin as an output, initially off.
func NewRealIndicator(chipName string, pin int) (*RealIndicator, error) {
	line, err := gpiocdev.RequestLine(chipName, pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request indicator pin %d: %w", pin, err)
	}
	return &RealIndicator{line: line}, nil
}

// Set switches the LED.
func (r *RealIndicator) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set indicator: %w", err)
	}
	return nil
}

// Close switches the LED off and returns the line to an input so it is
// left in the boot default state.
func (r *RealIndicator) Close() error {
	var errs []error

	if err := r.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("clear indicator: %w", err))
	}
	if err := r.line.Reconfigure(gpiocdev.AsInput); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure indicator pin: %w", err))
	}
	if err := r.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close indicator pin: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
