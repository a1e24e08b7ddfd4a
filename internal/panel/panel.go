// Package panel coordinates the joystick panel: button edges toggle the
// shared state, and every render tick drives the LEDs and draws one frame.
//
// A Controller is the single context object holding the state, the per-button
// debouncers and the output collaborators. Button handlers may run on other
// goroutines than Tick.
package panel

import (
	"sync/atomic"
	"time"

	"github.com/sweeney/joypanel/internal/display"
	"github.com/sweeney/joypanel/internal/gpio"
	"github.com/sweeney/joypanel/internal/led"
	"github.com/sweeney/joypanel/internal/logic"
)

// Config holds the timing windows.
type Config struct {
	Debounce    time.Duration
	OverlayHold time.Duration
}

// DefaultConfig returns the 500ms debounce and 2s overlay hold.
func DefaultConfig() Config {
	return Config{
		Debounce:    logic.DefaultDebounce,
		OverlayHold: logic.DefaultOverlayHold,
	}
}

// Counts tracks handler and render activity since startup.
type Counts struct {
	JoystickAccepted int
	JoystickRejected int
	ButtonAAccepted  int
	ButtonARejected  int
	// ButtonAReleased counts button A edges ignored because the line was
	// no longer held low.
	ButtonAReleased int
	OverlaysExpired int
	PositionFrames  int
	OverlayFrames   int
	OutputErrors    int
}

// counters has one writer per field, like State.
type counters struct {
	joyAccepted     atomic.Int64
	joyRejected     atomic.Int64
	btnAAccepted    atomic.Int64
	btnARejected    atomic.Int64
	btnAReleased    atomic.Int64
	overlaysExpired atomic.Int64
	positionFrames  atomic.Int64
	overlayFrames   atomic.Int64
	joyErrors       atomic.Int64
	btnAErrors      atomic.Int64
	tickErrors      atomic.Int64
}

// Controller owns the coordination state and its collaborators.
type Controller struct {
	cfg   Config
	state *State

	// Each debouncer is only touched by its own handler.
	joyGate  *logic.Debouncer
	btnAGate *logic.Debouncer

	indicator gpio.Indicator
	dimmer    led.Dimmer
	surface   display.Surface

	counts counters
}

// New creates a Controller in the power-on state. All collaborators are
// required.
func New(cfg Config, indicator gpio.Indicator, dimmer led.Dimmer, surface display.Surface) *Controller {
	return &Controller{
		cfg:       cfg,
		state:     NewState(),
		joyGate:   logic.NewDebouncer(cfg.Debounce),
		btnAGate:  logic.NewDebouncer(cfg.Debounce),
		indicator: indicator,
		dimmer:    dimmer,
		surface:   surface,
	}
}

// State returns the shared coordination state.
func (c *Controller) State() *State {
	return c.state
}

// Config returns the controller's timing configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Counts returns a snapshot of the activity counters.
func (c *Controller) Counts() Counts {
	return Counts{
		JoystickAccepted: int(c.counts.joyAccepted.Load()),
		JoystickRejected: int(c.counts.joyRejected.Load()),
		ButtonAAccepted:  int(c.counts.btnAAccepted.Load()),
		ButtonARejected:  int(c.counts.btnARejected.Load()),
		ButtonAReleased:  int(c.counts.btnAReleased.Load()),
		OverlaysExpired:  int(c.counts.overlaysExpired.Load()),
		PositionFrames:   int(c.counts.positionFrames.Load()),
		OverlayFrames:    int(c.counts.overlayFrames.Load()),
		OutputErrors:     int(c.counts.joyErrors.Load() + c.counts.btnAErrors.Load() + c.counts.tickErrors.Load()),
	}
}
