package gpio

import (
	"sync"
	"time"
)

// FakeButtons is a test double that delivers scripted edges synchronously.
type FakeButtons struct {
	mu      sync.Mutex
	handler Handler

	// JoystickLow and ButtonALow are returned by Levels and used as the
	// Low field of edges delivered by Press.
	JoystickLow bool
	ButtonALow  bool

	// LevelError, if set, will be returned by Levels().
	LevelError error

	// Closed tracks if Close was called.
	Closed bool

	// Delivered counts edges passed to the handler.
	Delivered int
}

// NewFakeButtons creates FakeButtons delivering to h.
func NewFakeButtons(h Handler) *FakeButtons {
	return &FakeButtons{handler: h}
}

// Press delivers a falling edge on line at t with the line held low.
func (f *FakeButtons) Press(line Line, t time.Duration) {
	f.Edge(Edge{Line: line, Time: t, Low: true})
}

// Edge delivers e to the handler unless the buttons are closed.
func (f *FakeButtons) Edge(e Edge) {
	f.mu.Lock()
	if f.Closed || f.handler == nil {
		f.mu.Unlock()
		return
	}
	f.Delivered++
	h := f.handler
	f.mu.Unlock()

	h(e)
}

// Levels returns the scripted line levels.
func (f *FakeButtons) Levels() (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LevelError != nil {
		return false, false, f.LevelError
	}
	return f.JoystickLow, f.ButtonALow, nil
}

// Close stops edge delivery.
func (f *FakeButtons) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// FakeIndicator records indicator writes.
type FakeIndicator struct {
	mu sync.Mutex

	// Values contains every value passed to Set, in order.
	Values []bool

	// SetError, if set, will be returned by Set() after recording the value.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeIndicator creates a FakeIndicator.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Set records the value.
func (f *FakeIndicator) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Values = append(f.Values, on)
	return f.SetError
}

// On returns the last value written, false if none.
func (f *FakeIndicator) On() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Values) == 0 {
		return false
	}
	return f.Values[len(f.Values)-1]
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
