package logic

// Brightness maps a raw axis sample to a PWM level.
// Disabled LEDs and samples inside the dead zone give 0. Otherwise the level
// is twice the distance from Center, clamped to MaxLevel.
func Brightness(value uint16, enabled bool) uint16 {
	if !enabled {
		return 0
	}
	if value >= DeadZoneLow && value <= DeadZoneHigh {
		return 0
	}

	v := int(value)
	dist := v - Center
	if dist < 0 {
		dist = -dist
	}

	level := 2 * dist
	if level > MaxLevel {
		level = MaxLevel
	}
	return uint16(level)
}

// ScreenPosition maps a joystick sample to the indicator square's top-left
// corner on a width x height display. The axes are crossed: the Y axis moves
// the square horizontally and the X axis moves it vertically (inverted).
// The result always keeps the whole square on the display.
func ScreenPosition(x, y uint16, width, height int) Position {
	px := int(y) * width / MaxSample
	py := height - int(x)*height/MaxSample

	return Position{
		X: clamp(px, 0, width-SquareSize),
		Y: clamp(py, 0, height-SquareSize),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
