package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/joypanel/internal/adc"
	"github.com/sweeney/joypanel/internal/display"
	"github.com/sweeney/joypanel/internal/gpio"
	"github.com/sweeney/joypanel/internal/led"
	"github.com/sweeney/joypanel/internal/logic"
	"github.com/sweeney/joypanel/internal/panel"
	"github.com/sweeney/joypanel/internal/status"
)

// TestIntegrationFullFlow drives buttons, joystick, LEDs and a real canvas
// over an in-memory framebuffer through the render loop using fakes.
func TestIntegrationFullFlow(t *testing.T) {
	source := adc.NewFakeSource(map[adc.Channel][]uint16{
		adc.DefaultChannelX: {1000},
		adc.DefaultChannelY: {3000},
	})
	joystick := adc.Joystick{Source: source, X: adc.DefaultChannelX, Y: adc.DefaultChannelY}

	indicator := gpio.NewFakeIndicator()
	dimmer := led.NewFakeDimmer()
	fb := display.NewFramebuffer(logic.DisplayWidth, logic.DisplayHeight)
	ctrl := panel.New(panel.DefaultConfig(), indicator, dimmer, display.NewCanvas(fb))
	buttons := gpio.NewFakeButtons(ctrl.HandleEdge)
	tracker := status.NewTracker(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), status.Config{PollMs: 10})

	// Button edges by tick time
	edges := map[time.Duration]gpio.Line{
		100 * time.Millisecond:  gpio.LineJoystickButton, // indicator on, border LEFT_RIGHT
		150 * time.Millisecond:  gpio.LineJoystickButton, // bounce
		500 * time.Millisecond:  gpio.LineButtonA,        // LEDs off
		800 * time.Millisecond:  gpio.LineButtonA,        // bounce
		3000 * time.Millisecond: gpio.LineButtonA,        // LEDs on
	}

	pollInterval := 10 * time.Millisecond
	var lastView logic.View

	// Simulate the main loop
	for now := time.Duration(0); now <= 5500*time.Millisecond; now += pollInterval {
		if line, ok := edges[now]; ok {
			buttons.Press(line, now)
		}

		sample, err := joystick.Sample()
		if err != nil {
			t.Fatalf("t=%v: joystick read error: %v", now, err)
		}
		frame, err := ctrl.Tick(now, sample)
		if err != nil {
			t.Fatalf("t=%v: tick error: %v", now, err)
		}
		tracker.Update(ctrl.State().Snapshot(), sample, frame.View, ctrl.Counts())

		switch now {
		case 400 * time.Millisecond:
			assertLEDs(t, now, dimmer, 2096, 1904)
		case 600 * time.Millisecond:
			if frame.View != logic.ShowingOverlay || frame.Text != logic.TextLEDOff {
				t.Errorf("t=%v: expected LED OFF overlay, got %+v", now, frame)
			}
			assertLEDs(t, now, dimmer, 0, 0)
			if fb.Pixel(93, 49) {
				t.Errorf("t=%v: position square drawn under the overlay", now)
			}
			if fb.Lit() == 0 {
				t.Errorf("t=%v: overlay text not drawn", now)
			}
		case 2500 * time.Millisecond:
			if frame.View != logic.ShowingPosition {
				t.Errorf("t=%v: overlay should have expired, got %s", now, frame.View)
			}
			assertLEDs(t, now, dimmer, 0, 0)
		case 3000 * time.Millisecond:
			if frame.View != logic.ShowingOverlay || frame.Text != logic.TextLEDOn {
				t.Errorf("t=%v: expected LED ON overlay, got %+v", now, frame)
			}
			assertLEDs(t, now, dimmer, 2096, 1904)
		}
		lastView = frame.View
	}

	if lastView != logic.ShowingPosition {
		t.Errorf("expected POSITION at the end, got %s", lastView)
	}

	// Square at (93,49) with the LEFT_RIGHT border
	for _, p := range [][2]int{{93, 49}, {100, 56}, {0, 0}, {127, 63}} {
		if !fb.Pixel(p[0], p[1]) {
			t.Errorf("pixel %v should be lit", p)
		}
	}
	for _, p := range [][2]int{{101, 56}, {64, 0}} {
		if fb.Pixel(p[0], p[1]) {
			t.Errorf("pixel %v should be dark", p)
		}
	}
	if !indicator.On() {
		t.Error("indicator should be on")
	}

	counts := ctrl.Counts()
	want := panel.Counts{
		JoystickAccepted: 1,
		JoystickRejected: 1,
		ButtonAAccepted:  2,
		ButtonARejected:  1,
		OverlaysExpired:  2,
		PositionFrames:   151,
		OverlayFrames:    400,
	}
	if counts != want {
		t.Errorf("counts: got %+v, want %+v", counts, want)
	}

	// Status output reflects the final state
	var parsed status.StatusJSON
	if err := json.Unmarshal(status.FormatJSON(tracker.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid status JSON: %v", err)
	}
	s := parsed.Status
	if !s.LEDEnabled || !s.Indicator || s.Overlay {
		t.Errorf("unexpected state: %+v", s)
	}
	if s.Border != "LEFT_RIGHT" {
		t.Errorf("border: got %q, want LEFT_RIGHT", s.Border)
	}
	if s.View != "POSITION" {
		t.Errorf("view: got %q, want POSITION", s.View)
	}
	if s.Ticks != 551 {
		t.Errorf("ticks: got %d, want 551", s.Ticks)
	}
	if s.Sample.X != 1000 || s.Sample.Y != 3000 {
		t.Errorf("sample: got %+v", s.Sample)
	}
}

// TestIntegrationBorderCycle checks each border style on the framebuffer.
func TestIntegrationBorderCycle(t *testing.T) {
	fb := display.NewFramebuffer(logic.DisplayWidth, logic.DisplayHeight)
	ctrl := panel.New(panel.DefaultConfig(), gpio.NewFakeIndicator(), led.NewFakeDimmer(), display.NewCanvas(fb))
	center := logic.Sample{X: logic.Center, Y: logic.Center}

	tests := []struct {
		border    logic.BorderStyle
		top, left bool
		lit       int
	}{
		{logic.BorderTopBottom, true, false, 8*8 + 2*128},
		{logic.BorderLeftRight, false, true, 8*8 + 2*64},
		{logic.BorderAll, true, true, 8*8 + 2*128 + 2*62},
	}

	now := time.Duration(0)
	for i, tt := range tests {
		if i > 0 {
			now += time.Second
			ctrl.HandleJoystickButton(now)
		}
		if _, err := ctrl.Tick(now, center); err != nil {
			t.Fatalf("%s: tick error: %v", tt.border, err)
		}

		if got := ctrl.State().Border(); got != tt.border {
			t.Fatalf("expected border %s, got %s", tt.border, got)
		}
		if got := fb.Pixel(64, 0); got != tt.top {
			t.Errorf("%s: top edge lit=%v, want %v", tt.border, got, tt.top)
		}
		if got := fb.Pixel(0, 32); got != tt.left {
			t.Errorf("%s: left edge lit=%v, want %v", tt.border, got, tt.left)
		}
		if got := fb.Lit(); got != tt.lit {
			t.Errorf("%s: lit pixels %d, want %d", tt.border, got, tt.lit)
		}
	}
}

func assertLEDs(t *testing.T, now time.Duration, d *led.FakeDimmer, red, blue uint16) {
	t.Helper()
	if got := d.Level(led.Red); got != red {
		t.Errorf("t=%v: red %d, want %d", now, got, red)
	}
	if got := d.Level(led.Blue); got != blue {
		t.Errorf("t=%v: blue %d, want %d", now, got, blue)
	}
}
