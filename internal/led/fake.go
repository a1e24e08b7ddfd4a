package led

import "sync"

// Write is one recorded SetLevel call.
type Write struct {
	Channel Channel
	Level   uint16
}

// FakeDimmer records brightness writes for test assertions.
type FakeDimmer struct {
	mu sync.Mutex

	// Writes contains every SetLevel call, in order.
	Writes []Write

	// SetError, if set, will be returned by SetLevel() after recording.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDimmer creates a FakeDimmer.
func NewFakeDimmer() *FakeDimmer {
	return &FakeDimmer{}
}

// SetLevel records the write.
func (f *FakeDimmer) SetLevel(ch Channel, level uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, Write{Channel: ch, Level: level})
	return f.SetError
}

// Level returns the last level written to ch, 0 if none.
func (f *FakeDimmer) Level(ch Channel) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Writes) - 1; i >= 0; i-- {
		if f.Writes[i].Channel == ch {
			return f.Writes[i].Level
		}
	}
	return 0
}

// Reset clears recorded writes.
func (f *FakeDimmer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = nil
	f.SetError = nil
}

// Close marks the dimmer as closed.
func (f *FakeDimmer) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
