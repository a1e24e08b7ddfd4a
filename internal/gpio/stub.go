//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(chipName string, pinJoy, pinA int, h Handler) (*RealButtons, error) {
	return nil, errUnsupported
}

// Levels is not implemented on non-Linux platforms.
func (b *RealButtons) Levels() (bool, bool, error) {
	return false, false, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error {
	return nil
}

// RealIndicator is not available on non-Linux platforms.
type RealIndicator struct{}

// NewRealIndicator returns an error on non-Linux platforms.
func NewRealIndicator(chipName string, pin int) (*RealIndicator, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (r *RealIndicator) Set(on bool) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RealIndicator) Close() error {
	return nil
}
