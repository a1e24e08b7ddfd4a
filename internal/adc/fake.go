package adc

import (
	"errors"
	"sync"
)

// FakeSource is a test double that returns scripted channel values.
type FakeSource struct {
	mu sync.Mutex

	// Values contains scripted values per channel. Each Read of a channel
	// consumes the next value; once exhausted the last value repeats.
	Values map[Channel][]uint16

	index map[Channel]int

	// ReadError, if set, will be returned by Read().
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSource creates a FakeSource with the given per-channel values.
func NewFakeSource(values map[Channel][]uint16) *FakeSource {
	return &FakeSource{Values: values, index: make(map[Channel]int)}
}

// Read returns the next scripted value of ch.
func (f *FakeSource) Read(ch Channel) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ReadError != nil {
		return 0, f.ReadError
	}

	vals := f.Values[ch]
	if len(vals) == 0 {
		return 0, errors.New("no values configured for channel")
	}

	if f.index == nil {
		f.index = make(map[Channel]int)
	}
	i := f.index[ch]
	if i < len(vals)-1 {
		f.index[ch] = i + 1
	}
	return vals[i], nil
}

// Set replaces the values of ch with a single constant value.
func (f *FakeSource) Set(ch Channel, v uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Values == nil {
		f.Values = make(map[Channel][]uint16)
	}
	f.Values[ch] = []uint16{v}
	if f.index != nil {
		f.index[ch] = 0
	}
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
