// Package clock provides the monotonic time base shared by button edges and
// the render loop.
package clock

import "time"

// Func returns monotonic time since an arbitrary epoch.
type Func func() time.Duration

// Since returns a Func measuring time since start using the runtime's
// monotonic clock.
func Since(start time.Time) Func {
	return func() time.Duration {
		return time.Since(start)
	}
}
