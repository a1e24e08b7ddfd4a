// Package led drives the two PWM-dimmed brightness LEDs.
package led

// Channel selects a brightness LED.
type Channel int

const (
	// Red follows the joystick X axis.
	Red Channel = iota
	// Blue follows the joystick Y axis.
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	}
	return "UNKNOWN"
}

// Dimmer sets LED brightness. Implementations must tolerate calls from the
// render loop and from button handlers at the same time.
type Dimmer interface {
	// SetLevel sets ch to level in 0..4095; larger levels saturate.
	SetLevel(ch Channel, level uint16) error

	// Close turns both LEDs off and releases the outputs.
	Close() error
}

// Default Raspberry Pi hardware PWM pins.
const (
	DefaultPinRed  = "GPIO13"
	DefaultPinBlue = "GPIO12"
)
