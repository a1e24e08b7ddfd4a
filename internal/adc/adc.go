// Package adc reads the joystick axes from a 12-bit analog-to-digital converter.
package adc

import (
	"fmt"

	"github.com/sweeney/joypanel/internal/logic"
)

// Channel is an ADC input channel.
type Channel uint8

// Default channel wiring: joystick X on CH0, Y on CH1.
const (
	DefaultChannelX Channel = 0
	DefaultChannelY Channel = 1
)

// Source reads raw 12-bit samples.
type Source interface {
	// Read returns the current value of ch in 0..4095.
	Read(ch Channel) (uint16, error)

	// Close releases the converter.
	Close() error
}

// Joystick samples two channels of a Source as one joystick position.
type Joystick struct {
	Source Source
	X      Channel
	Y      Channel
}

// Sample reads X then Y.
func (j Joystick) Sample() (logic.Sample, error) {
	x, err := j.Source.Read(j.X)
	if err != nil {
		return logic.Sample{}, fmt.Errorf("read x axis: %w", err)
	}
	y, err := j.Source.Read(j.Y)
	if err != nil {
		return logic.Sample{}, fmt.Errorf("read y axis: %w", err)
	}
	return logic.Sample{X: x, Y: y}, nil
}
