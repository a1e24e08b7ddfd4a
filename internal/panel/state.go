package panel

import (
	"sync/atomic"
	"time"

	"github.com/sweeney/joypanel/internal/logic"
)

// overlayActiveBit marks an armed overlay; the remaining bits hold its
// start time in nanoseconds.
const overlayActiveBit = uint64(1) << 63

// State is the coordination state shared by the button handlers and the
// render tick. Every field is one atomic word with a single writer:
//
//	ledEnabled  written by the button A handler, read by the tick
//	green       written by the joystick button handler only
//	border      written by the joystick button handler, read by the tick
//	overlay     armed by the button A handler, disarmed by the tick with
//	            CompareAndSwap so a concurrent re-arm always wins
//
// No lock is needed; readers never see a torn value.
type State struct {
	ledEnabled atomic.Bool
	green      atomic.Bool
	border     atomic.Uint32
	overlay    atomic.Uint64
}

// NewState returns the power-on state: LEDs enabled, indicator off,
// first border style, no overlay.
func NewState() *State {
	s := &State{}
	s.ledEnabled.Store(true)
	return s
}

// LEDEnabled reports whether the brightness LEDs follow the joystick.
func (s *State) LEDEnabled() bool {
	return s.ledEnabled.Load()
}

// GreenIndicator reports the indicator LED state.
func (s *State) GreenIndicator() bool {
	return s.green.Load()
}

// Border returns the current border style.
func (s *State) Border() logic.BorderStyle {
	return logic.BorderStyle(s.border.Load())
}

// Overlay returns whether the status overlay is armed and when it started.
func (s *State) Overlay() (active bool, start time.Duration) {
	return unpackOverlay(s.overlay.Load())
}

func (s *State) armOverlay(now time.Duration) {
	s.overlay.Store(packOverlay(now))
}

// disarmOverlay clears the active flag if the overlay word is still word.
func (s *State) disarmOverlay(word uint64) bool {
	return s.overlay.CompareAndSwap(word, word&^overlayActiveBit)
}

func packOverlay(start time.Duration) uint64 {
	if start < 0 {
		start = 0
	}
	return overlayActiveBit | (uint64(start) &^ overlayActiveBit)
}

func unpackOverlay(word uint64) (bool, time.Duration) {
	return word&overlayActiveBit != 0, time.Duration(word &^ overlayActiveBit)
}

// StateSnapshot is a point-in-time copy of State.
type StateSnapshot struct {
	LEDEnabled     bool
	GreenIndicator bool
	Border         logic.BorderStyle
	OverlayActive  bool
	OverlayStart   time.Duration
}

// Snapshot copies the state. Fields are read one at a time, so a snapshot
// taken while a handler runs may mix values from before and after it.
func (s *State) Snapshot() StateSnapshot {
	active, start := s.Overlay()
	return StateSnapshot{
		LEDEnabled:     s.LEDEnabled(),
		GreenIndicator: s.GreenIndicator(),
		Border:         s.Border(),
		OverlayActive:  active,
		OverlayStart:   start,
	}
}
