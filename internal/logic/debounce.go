package logic

import "time"

// Debouncer accepts an event only when more than its window has passed
// since the previously accepted one. The zero value has a zero window;
// use NewDebouncer.
//
// A Debouncer is not safe for concurrent use. Each event source owns one.
type Debouncer struct {
	window time.Duration
	last   time.Duration
	seen   bool
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Accept reports whether an event at now passes the gate.
// Acceptance advances the last accepted time to now. The first event
// a Debouncer sees is always accepted. Exactly one window apart is rejected.
func (d *Debouncer) Accept(now time.Duration) bool {
	if d.seen && now-d.last <= d.window {
		return false
	}
	d.last = now
	d.seen = true
	return true
}

// LastAccepted returns the time of the last accepted event and whether
// any event has been accepted yet.
func (d *Debouncer) LastAccepted() (time.Duration, bool) {
	return d.last, d.seen
}

// Window returns the debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}
