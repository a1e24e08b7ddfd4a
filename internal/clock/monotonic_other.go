//go:build !linux

package clock

import "time"

var processStart = time.Now()

// Monotonic returns time since process start.
func Monotonic() time.Duration {
	return time.Since(processStart)
}
