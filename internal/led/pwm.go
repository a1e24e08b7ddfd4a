package led

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/sweeney/joypanel/internal/logic"
)

// DefaultFrequency is the PWM carrier frequency.
const DefaultFrequency = 1 * physic.KiloHertz

// PWM drives the LEDs from hardware PWM capable pins.
type PWM struct {
	mu   sync.Mutex
	pins [2]gpio.PinIO
	freq physic.Frequency
}

// OpenPWM initializes the host drivers and claims the two pins by name,
// both starting dark.
func OpenPWM(redPin, bluePin string, freq physic.Frequency) (*PWM, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	red := gpioreg.ByName(redPin)
	if red == nil {
		return nil, fmt.Errorf("unknown red pin %q", redPin)
	}
	blue := gpioreg.ByName(bluePin)
	if blue == nil {
		return nil, fmt.Errorf("unknown blue pin %q", bluePin)
	}

	p := &PWM{pins: [2]gpio.PinIO{Red: red, Blue: blue}, freq: freq}
	for _, ch := range []Channel{Red, Blue} {
		if err := p.SetLevel(ch, 0); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Duty converts a 12-bit level to a periph duty cycle.
func Duty(level uint16) gpio.Duty {
	if level > logic.MaxLevel {
		level = logic.MaxLevel
	}
	return gpio.Duty(uint64(level) * uint64(gpio.DutyMax) / logic.MaxLevel)
}

// SetLevel sets the duty cycle of ch.
func (p *PWM) SetLevel(ch Channel, level uint16) error {
	if ch != Red && ch != Blue {
		return fmt.Errorf("pwm: invalid channel %d", ch)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.pins[ch].PWM(Duty(level), p.freq); err != nil {
		return fmt.Errorf("pwm %s: %w", ch, err)
	}
	return nil
}

// Close drives both pins low.
func (p *PWM) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for ch, pin := range p.pins {
		if err := pin.Out(gpio.Low); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", Channel(ch), err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
