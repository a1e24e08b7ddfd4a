// Package status provides a thread-safe run status tracker for the joypanel
// daemon. It is written by the run loop and read by the heartbeat and
// shutdown reports.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/joypanel/internal/logic"
	"github.com/sweeney/joypanel/internal/panel"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	OverlayMs   int64
	HeartbeatMs int64
	Display     string
	ADC         string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	State      panel.StateSnapshot
	Sample     logic.Sample
	View       logic.View
	Ticks      int64
	Counts     panel.Counts
	ReadErrors int
	Heartbeats int
	StartTime  time.Time
	Now        time.Time
	Config     Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update records the result of one render tick.
// Called from runLoop on every tick.
func (t *Tracker) Update(state panel.StateSnapshot, sample logic.Sample, view logic.View, counts panel.Counts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Sample = sample
	t.snap.View = view
	t.snap.Counts = counts
	t.snap.Ticks++
	t.mu.Unlock()
}

// RecordReadError counts a failed joystick sample.
func (t *Tracker) RecordReadError() {
	t.mu.Lock()
	t.snap.ReadErrors++
	t.mu.Unlock()
}

// RecordHeartbeat counts an emitted heartbeat.
func (t *Tracker) RecordHeartbeat() {
	t.mu.Lock()
	t.snap.Heartbeats++
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
