package logic

import "time"

// Overlay text and where it is drawn.
const (
	TextLEDOn  = "LED ON"
	TextLEDOff = "LED OFF"
)

// DecideView returns the view for a render tick at now.
// An active overlay is shown until hold has elapsed since start; expired
// reports that the overlay is active but over and should be cleared.
func DecideView(active bool, start, now, hold time.Duration) (view View, expired bool) {
	if !active {
		return ShowingPosition, false
	}
	if now-start < hold {
		return ShowingOverlay, false
	}
	return ShowingPosition, true
}

// OverlayFrame builds the status overlay for the current LED mode.
func OverlayFrame(ledEnabled bool) Frame {
	if ledEnabled {
		return Frame{View: ShowingOverlay, Text: TextLEDOn, TextX: 20, TextY: 24}
	}
	return Frame{View: ShowingOverlay, Text: TextLEDOff, TextX: 8, TextY: 24}
}

// PositionFrame builds the live position view for a sample.
func PositionFrame(s Sample, border BorderStyle) Frame {
	return Frame{
		View:   ShowingPosition,
		Square: ScreenPosition(s.X, s.Y, DisplayWidth, DisplayHeight),
		Border: border,
	}
}

// BorderLines returns the lines of a border style on a width x height display.
// Unknown styles draw nothing.
func BorderLines(style BorderStyle, width, height int) []Line {
	right, bottom := width-1, height-1
	top := Line{0, 0, right, 0}
	base := Line{0, bottom, right, bottom}
	left := Line{0, 0, 0, bottom}
	side := Line{right, 0, right, bottom}

	switch style {
	case BorderTopBottom:
		return []Line{top, base}
	case BorderLeftRight:
		return []Line{left, side}
	case BorderAll:
		return []Line{top, base, left, side}
	}
	return nil
}
