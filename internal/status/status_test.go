package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/joypanel/internal/logic"
	"github.com/sweeney/joypanel/internal/panel"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 10, DebounceMs: 500, OverlayMs: 2000, Display: "ssd1306@0x3c"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 10 {
		t.Errorf("Config.PollMs: got %d, want 10", snap.Config.PollMs)
	}
	if snap.Config.Display != "ssd1306@0x3c" {
		t.Errorf("Config.Display: got %q, want %q", snap.Config.Display, "ssd1306@0x3c")
	}
	if snap.Ticks != 0 {
		t.Errorf("expected 0 ticks initially, got %d", snap.Ticks)
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	state := panel.StateSnapshot{LEDEnabled: true, GreenIndicator: true, Border: logic.BorderAll}
	tr.Update(state, logic.Sample{X: 100, Y: 4000}, logic.ShowingOverlay, panel.Counts{JoystickAccepted: 3})
	tr.Update(state, logic.Sample{X: 200, Y: 3000}, logic.ShowingPosition, panel.Counts{JoystickAccepted: 4})

	snap := tr.Snapshot()
	if snap.Ticks != 2 {
		t.Errorf("Ticks: got %d, want 2", snap.Ticks)
	}
	if snap.Sample != (logic.Sample{X: 200, Y: 3000}) {
		t.Errorf("Sample: got %+v", snap.Sample)
	}
	if snap.View != logic.ShowingPosition {
		t.Errorf("View: got %s, want POSITION", snap.View)
	}
	if snap.State.Border != logic.BorderAll {
		t.Errorf("Border: got %s, want ALL", snap.State.Border)
	}
	if snap.Counts.JoystickAccepted != 4 {
		t.Errorf("Counts.JoystickAccepted: got %d, want 4", snap.Counts.JoystickAccepted)
	}
}

func TestRecordReadError(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.RecordReadError()
	tr.RecordReadError()

	if got := tr.Snapshot().ReadErrors; got != 2 {
		t.Errorf("ReadErrors: got %d, want 2", got)
	}
}

func TestRecordHeartbeat(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.RecordHeartbeat()

	snap := tr.Snapshot()
	if snap.Heartbeats != 1 {
		t.Errorf("Heartbeats: got %d, want 1", snap.Heartbeats)
	}

	var parsed StatusJSON
	json.Unmarshal(FormatJSON(snap), &parsed)
	if parsed.Status.Heartbeats != 1 {
		t.Errorf("JSON heartbeats: got %d, want 1", parsed.Status.Heartbeats)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(panel.StateSnapshot{LEDEnabled: true}, logic.Sample{}, logic.ShowingPosition, panel.Counts{})

	snap1 := tr.Snapshot()

	tr.Update(panel.StateSnapshot{LEDEnabled: false}, logic.Sample{}, logic.ShowingOverlay, panel.Counts{})

	// snap1 should still reflect old state
	if !snap1.State.LEDEnabled {
		t.Error("snapshot should be a copy; LEDEnabled was modified")
	}
	if snap1.View != logic.ShowingPosition {
		t.Error("snapshot should be a copy; View was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State: panel.StateSnapshot{
			LEDEnabled:     false,
			GreenIndicator: true,
			Border:         logic.BorderLeftRight,
			OverlayActive:  true,
		},
		Sample:     logic.Sample{X: 12, Y: 4095},
		View:       logic.ShowingOverlay,
		Ticks:      90000,
		Counts:     panel.Counts{JoystickAccepted: 5, ButtonAAccepted: 2, OverlayFrames: 150},
		ReadErrors: 1,
		StartTime:  start,
		Now:        start.Add(15 * time.Minute),
		Config:     Config{PollMs: 10, DebounceMs: 500, OverlayMs: 2000, HeartbeatMs: 900000},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := parsed.Status
	if s.LEDEnabled {
		t.Error("expected LEDEnabled=false")
	}
	if !s.Indicator {
		t.Error("expected Indicator=true")
	}
	if s.Border != "LEFT_RIGHT" {
		t.Errorf("Border: got %q, want LEFT_RIGHT", s.Border)
	}
	if !s.Overlay {
		t.Error("expected Overlay=true")
	}
	if s.View != "OVERLAY" {
		t.Errorf("View: got %q, want OVERLAY", s.View)
	}
	if s.Sample.X != 12 || s.Sample.Y != 4095 {
		t.Errorf("Sample: got %+v", s.Sample)
	}
	if s.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", s.UptimeSeconds)
	}
	if s.StartTime != "2026-01-01T00:00:00Z" {
		t.Errorf("StartTime: got %q", s.StartTime)
	}
	if s.Counts.JoystickAccepted != 5 || s.Counts.ButtonAAccepted != 2 || s.Counts.OverlayFrames != 150 {
		t.Errorf("Counts: got %+v", s.Counts)
	}
	if s.Counts.ReadErrors != 1 {
		t.Errorf("Counts.ReadErrors: got %d, want 1", s.Counts.ReadErrors)
	}
	if s.Config.OverlayMs != 2000 {
		t.Errorf("Config.OverlayMs: got %d, want 2000", s.Config.OverlayMs)
	}
	// Event and Reason should be omitted
	if s.Event != "" {
		t.Errorf("expected empty Event, got %q", s.Event)
	}
	if s.Reason != "" {
		t.Errorf("expected empty Reason, got %q", s.Reason)
	}
}

func TestFormatJSONBeforeFirstTick(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	var parsed StatusJSON
	json.Unmarshal(FormatJSON(snap), &parsed)

	if parsed.Status.View != "UNKNOWN" {
		t.Errorf("View: got %q, want UNKNOWN", parsed.Status.View)
	}
	if parsed.Status.Border != "TOP_BOTTOM" {
		t.Errorf("Border: got %q, want TOP_BOTTOM", parsed.Status.Border)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:     panel.StateSnapshot{LEDEnabled: true},
		View:      logic.ShowingPosition,
		Ticks:     1,
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	data := FormatStatusEvent(snap, "HEARTBEAT", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "HEARTBEAT" {
		t.Errorf("Event: got %q, want HEARTBEAT", parsed.Status.Event)
	}
	if parsed.Status.View != "POSITION" {
		t.Errorf("View: got %q, want POSITION", parsed.Status.View)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
}

func TestFormatStatusEventShutdown(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 30, 0, 0, time.UTC),
	}

	var parsed StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(snap, "SHUTDOWN", "interrupt"), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("Event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "interrupt" {
		t.Errorf("Reason: got %q, want interrupt", parsed.Status.Reason)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	// Verify "reason" is not in the raw JSON output
	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	status := raw["status"].(map[string]interface{})
	if _, exists := status["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if status["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", status["event"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Update(panel.StateSnapshot{}, logic.Sample{X: uint16(i)}, logic.ShowingPosition, panel.Counts{PositionFrames: i})
			if i%10 == 0 {
				tr.RecordReadError()
			}
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
		}
	}()

	wg.Wait()

	if got := tr.Snapshot().Ticks; got != 1000 {
		t.Errorf("Ticks: got %d, want 1000", got)
	}
}
