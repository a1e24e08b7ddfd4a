// Package logic contains the pure decision logic of the joystick panel.
// This package has NO external dependencies (no GPIO, PWM, ADC, display or OS).
// Time is always injectable as a monotonic time.Duration since an arbitrary epoch.
package logic

import "time"

// Display geometry of the 128x64 OLED.
const (
	DisplayWidth  = 128
	DisplayHeight = 64

	// SquareSize is the edge length of the position indicator.
	SquareSize = 8
)

// Analog and PWM ranges (12-bit).
const (
	MaxSample = 4095
	MaxLevel  = 4095
	Center    = 2048

	// Joystick rest band; samples inside it produce no brightness.
	DeadZoneLow  = 1980
	DeadZoneHigh = 2100
)

// Default timing windows.
const (
	DefaultDebounce    = 500 * time.Millisecond
	DefaultOverlayHold = 2000 * time.Millisecond
)

// Sample is one pair of raw joystick readings.
type Sample struct {
	X uint16
	Y uint16
}

// Position is the top-left corner of the indicator square in display pixels.
type Position struct {
	X int
	Y int
}

// View is the state of the display overlay state machine.
type View int

const (
	ShowingPosition View = iota
	ShowingOverlay
)

func (v View) String() string {
	switch v {
	case ShowingPosition:
		return "POSITION"
	case ShowingOverlay:
		return "OVERLAY"
	}
	return "UNKNOWN"
}

// BorderStyle selects the decoration drawn around the position view.
type BorderStyle uint8

const (
	BorderTopBottom BorderStyle = iota
	BorderLeftRight
	BorderAll

	borderStyles = 3
)

// Next returns the style that follows s in the cycle.
func (s BorderStyle) Next() BorderStyle {
	return (s + 1) % borderStyles
}

func (s BorderStyle) String() string {
	switch s {
	case BorderTopBottom:
		return "TOP_BOTTOM"
	case BorderLeftRight:
		return "LEFT_RIGHT"
	case BorderAll:
		return "ALL"
	}
	return "UNKNOWN"
}

// Line is a display line segment, endpoints inclusive.
type Line struct {
	X0, Y0, X1, Y1 int
}

// Frame is what one render tick puts on the display.
// Text and TextX/TextY are set for ShowingOverlay; Square and Border
// for ShowingPosition.
type Frame struct {
	View   View
	Text   string
	TextX  int
	TextY  int
	Square Position
	Border BorderStyle
}
