package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	LEDEnabled    bool       `json:"led_enabled"`
	Indicator     bool       `json:"green_indicator"`
	Border        string     `json:"border"`
	Overlay       bool       `json:"overlay_active"`
	View          string     `json:"view"`
	Sample        SampleJSON `json:"sample"`
	Ticks         int64      `json:"ticks"`
	Heartbeats    int        `json:"heartbeats"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Counts        CountsJSON `json:"counts"`
	Config        ConfigJSON `json:"config"`
}

// SampleJSON is the last joystick sample.
type SampleJSON struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// CountsJSON is the JSON representation of panel activity counts.
type CountsJSON struct {
	JoystickAccepted int `json:"joystick_accepted"`
	JoystickRejected int `json:"joystick_rejected"`
	ButtonAAccepted  int `json:"button_a_accepted"`
	ButtonARejected  int `json:"button_a_rejected"`
	ButtonAReleased  int `json:"button_a_released"`
	OverlaysExpired  int `json:"overlays_expired"`
	PositionFrames   int `json:"position_frames"`
	OverlayFrames    int `json:"overlay_frames"`
	OutputErrors     int `json:"output_errors"`
	ReadErrors       int `json:"read_errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	OverlayMs   int64  `json:"overlay_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Display     string `json:"display,omitempty"`
	ADC         string `json:"adc,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	view := snap.View.String()
	if snap.Ticks == 0 {
		view = "UNKNOWN"
	}

	return StatusInner{
		LEDEnabled:    snap.State.LEDEnabled,
		Indicator:     snap.State.GreenIndicator,
		Border:        snap.State.Border.String(),
		Overlay:       snap.State.OverlayActive,
		View:          view,
		Sample:        SampleJSON{X: snap.Sample.X, Y: snap.Sample.Y},
		Ticks:         snap.Ticks,
		Heartbeats:    snap.Heartbeats,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			JoystickAccepted: snap.Counts.JoystickAccepted,
			JoystickRejected: snap.Counts.JoystickRejected,
			ButtonAAccepted:  snap.Counts.ButtonAAccepted,
			ButtonARejected:  snap.Counts.ButtonARejected,
			ButtonAReleased:  snap.Counts.ButtonAReleased,
			OverlaysExpired:  snap.Counts.OverlaysExpired,
			PositionFrames:   snap.Counts.PositionFrames,
			OverlayFrames:    snap.Counts.OverlayFrames,
			OutputErrors:     snap.Counts.OutputErrors,
			ReadErrors:       snap.ReadErrors,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			OverlayMs:   snap.Config.OverlayMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Display:     snap.Config.Display,
			ADC:         snap.Config.ADC,
		},
	}
}

// FormatJSON returns the indented JSON status (no event/reason). joypanel
// -print-state prints it.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the single-line JSON status for a lifecycle
// log line such as STARTUP, HEARTBEAT or SHUTDOWN.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
