package logic

import "testing"

func TestBrightness(t *testing.T) {
	tests := []struct {
		value uint16
		want  uint16
	}{
		{2048, 0},
		{1980, 0},
		{2100, 0},
		{2000, 0},
		{1979, 138},
		{2101, 106},
		{3000, 1904},
		{1000, 2096},
		{4095, 4094},
		{0, 4095}, // 4096 before clamping
		{1, 4094},
	}

	for _, tt := range tests {
		if got := Brightness(tt.value, true); got != tt.want {
			t.Errorf("Brightness(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestBrightnessNeverExceedsMaxLevel(t *testing.T) {
	for v := 0; v <= MaxSample; v++ {
		if got := Brightness(uint16(v), true); got > MaxLevel {
			t.Fatalf("Brightness(%d) = %d exceeds %d", v, got, MaxLevel)
		}
	}
}

func TestBrightnessDisabled(t *testing.T) {
	for v := 0; v <= MaxSample; v++ {
		if got := Brightness(uint16(v), false); got != 0 {
			t.Fatalf("Brightness(%d, disabled) = %d, want 0", v, got)
		}
	}
}

func TestBrightnessSymmetric(t *testing.T) {
	for d := 1; d < 2048; d++ {
		lo := Brightness(uint16(Center-d), true)
		hi := Brightness(uint16(Center+d), true)
		if Center-d >= DeadZoneLow || Center+d <= DeadZoneHigh {
			// dead zone is not centered, skip distances that straddle it
			continue
		}
		if lo != hi {
			t.Fatalf("distance %d: low side %d, high side %d", d, lo, hi)
		}
	}
}

func TestScreenPosition(t *testing.T) {
	tests := []struct {
		name string
		x, y uint16
		want Position
	}{
		{"origin clamps bottom", 0, 0, Position{X: 0, Y: 56}},
		{"full scale clamps right", 4095, 4095, Position{X: 120, Y: 0}},
		{"center", 2048, 2048, Position{X: 64, Y: 32}},
		{"x axis moves vertically", 4095, 0, Position{X: 0, Y: 0}},
		{"y axis moves horizontally", 0, 4095, Position{X: 120, Y: 56}},
		{"quarter", 1024, 1024, Position{X: 32, Y: 48}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenPosition(tt.x, tt.y, DisplayWidth, DisplayHeight)
			if got != tt.want {
				t.Errorf("ScreenPosition(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestScreenPositionStaysOnDisplay(t *testing.T) {
	for x := 0; x <= MaxSample; x += 13 {
		for y := 0; y <= MaxSample; y += 13 {
			p := ScreenPosition(uint16(x), uint16(y), DisplayWidth, DisplayHeight)
			if p.X < 0 || p.Y < 0 {
				t.Fatalf("(%d,%d): negative position %+v", x, y, p)
			}
			if p.X > DisplayWidth-SquareSize || p.Y > DisplayHeight-SquareSize {
				t.Fatalf("(%d,%d): square off display at %+v", x, y, p)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(-5, 0, 10); got != 0 {
		t.Errorf("clamp(-5) = %d, want 0", got)
	}
	if got := clamp(15, 0, 10); got != 10 {
		t.Errorf("clamp(15) = %d, want 10", got)
	}
	if got := clamp(7, 0, 10); got != 7 {
		t.Errorf("clamp(7) = %d, want 7", got)
	}
}
