// Package gpio provides button edge notification and the indicator LED output
// with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "time"

// Line identifies a monitored button input.
type Line int

const (
	LineJoystickButton Line = iota
	LineButtonA
)

func (l Line) String() string {
	switch l {
	case LineJoystickButton:
		return "JOYSTICK_BUTTON"
	case LineButtonA:
		return "BUTTON_A"
	}
	return "UNKNOWN"
}

// Edge is one falling-edge notification.
type Edge struct {
	Line Line
	// Time is the monotonic event time (CLOCK_MONOTONIC on Linux).
	Time time.Duration
	// Low reports whether the line still read low when the edge was handled.
	Low bool
}

// Handler receives edges. It may be called from several goroutines, one per
// line, but never concurrently for the same line.
type Handler func(Edge)

// Buttons watches the two button lines. Edges are delivered to the Handler
// given at construction.
type Buttons interface {
	// Levels returns whether each button line currently reads low (pressed).
	Levels() (joystickLow, buttonALow bool, err error)

	// Close stops edge delivery and releases GPIO resources.
	Close() error
}

// Indicator drives the on/off indicator LED.
type Indicator interface {
	Set(on bool) error
	Close() error
}

// Default pin offsets on gpiochip0 (BCM numbering).
const (
	DefaultChip         = "gpiochip0"
	DefaultPinJoyButton = 22
	DefaultPinButtonA   = 5
	DefaultPinIndicator = 11
)
