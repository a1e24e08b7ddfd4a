// Command joypanel drives two PWM LEDs and a 128x64 OLED from an analog
// joystick and two push buttons.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/joypanel/internal/adc"
	"github.com/sweeney/joypanel/internal/clock"
	"github.com/sweeney/joypanel/internal/display"
	"github.com/sweeney/joypanel/internal/gpio"
	"github.com/sweeney/joypanel/internal/led"
	"github.com/sweeney/joypanel/internal/logic"
	"github.com/sweeney/joypanel/internal/panel"
	"github.com/sweeney/joypanel/internal/status"
)

type options struct {
	poll      time.Duration
	debounce  time.Duration
	overlay   time.Duration
	heartbeat time.Duration

	chip         string
	pinJoyButton int
	pinButtonA   int
	pinGreen     int
	pwmRed       string
	pwmBlue      string

	spiPort     string
	i2cBus      string
	displayAddr uint
	adcX        uint
	adcY        uint

	printState bool
}

func main() {
	var o options
	flag.DurationVar(&o.poll, "poll", 10*time.Millisecond, "Render tick interval")
	flag.DurationVar(&o.debounce, "debounce", logic.DefaultDebounce, "Button debounce window")
	flag.DurationVar(&o.overlay, "overlay", logic.DefaultOverlayHold, "How long the LED ON/OFF overlay is shown")
	flag.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO character device")
	flag.IntVar(&o.pinJoyButton, "pin-joy-button", gpio.DefaultPinJoyButton, "BCM pin number for the joystick button")
	flag.IntVar(&o.pinButtonA, "pin-button-a", gpio.DefaultPinButtonA, "BCM pin number for button A")
	flag.IntVar(&o.pinGreen, "pin-green", gpio.DefaultPinIndicator, "BCM pin number for the green indicator LED")
	flag.StringVar(&o.pwmRed, "pwm-red", led.DefaultPinRed, "PWM pin for the red LED (follows X)")
	flag.StringVar(&o.pwmBlue, "pwm-blue", led.DefaultPinBlue, "PWM pin for the blue LED (follows Y)")
	flag.StringVar(&o.spiPort, "spi", "", "SPI port of the MCP3208 ADC (empty for the first port)")
	flag.StringVar(&o.i2cBus, "i2c", "", "I2C bus of the SSD1306 display (empty for the first bus)")
	flag.UintVar(&o.displayAddr, "display-addr", display.DefaultAddress, "I2C address of the SSD1306 display")
	flag.UintVar(&o.adcX, "adc-x", uint(adc.DefaultChannelX), "ADC channel of the joystick X axis")
	flag.UintVar(&o.adcY, "adc-y", uint(adc.DefaultChannelY), "ADC channel of the joystick Y axis")
	flag.BoolVar(&o.printState, "print-state", false, "Print current inputs and exit")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	if o.adcX > 7 || o.adcY > 7 {
		return fmt.Errorf("adc channels must be 0..7, got x=%d y=%d", o.adcX, o.adcY)
	}

	// Initialize ADC
	source, err := adc.OpenMCP3208(o.spiPort)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer source.Close()
	joystick := adc.Joystick{Source: source, X: adc.Channel(o.adcX), Y: adc.Channel(o.adcY)}

	// Print state mode
	if o.printState {
		return printState(o, joystick)
	}

	// Initialize outputs
	indicator, err := gpio.NewRealIndicator(o.chip, o.pinGreen)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	defer indicator.Close()

	dimmer, err := led.OpenPWM(o.pwmRed, o.pwmBlue, led.DefaultFrequency)
	if err != nil {
		return fmt.Errorf("init pwm: %w", err)
	}
	defer dimmer.Close()

	oled, err := display.OpenOLED(o.i2cBus, uint16(o.displayAddr), logic.DisplayWidth, logic.DisplayHeight)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer oled.Close()

	ctrl := panel.New(panel.Config{Debounce: o.debounce, OverlayHold: o.overlay},
		indicator, dimmer, display.NewCanvas(oled))

	// Buttons last: edges may arrive as soon as the lines are requested
	buttons, err := gpio.NewRealButtons(o.chip, o.pinJoyButton, o.pinButtonA, ctrl.HandleEdge)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	tracker := status.NewTracker(time.Now(), statusConfig(o))
	log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""))

	log.Printf("started: poll=%v debounce=%v overlay=%v heartbeat=%v buttons=%d,%d indicator=%d pwm=%s,%s",
		o.poll, o.debounce, o.overlay, o.heartbeat, o.pinJoyButton, o.pinButtonA, o.pinGreen, o.pwmRed, o.pwmBlue)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, joystick, tracker, o.heartbeat, clock.Monotonic, ticker.C, sigCh)
}

// sampler reads one joystick position.
type sampler interface {
	Sample() (logic.Sample, error)
}

func printState(o options, joystick sampler) error {
	buttons, err := gpio.NewRealButtons(o.chip, o.pinJoyButton, o.pinButtonA, nil)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	joyLow, aLow, err := buttons.Levels()
	if err != nil {
		return fmt.Errorf("read buttons: %w", err)
	}
	s, err := joystick.Sample()
	if err != nil {
		return fmt.Errorf("read joystick: %w", err)
	}

	pos := logic.ScreenPosition(s.X, s.Y, logic.DisplayWidth, logic.DisplayHeight)
	fmt.Printf("X: %d, Y: %d, red: %d, blue: %d, square: (%d,%d), joystick button: %s, button A: %s\n",
		s.X, s.Y, logic.Brightness(s.X, true), logic.Brightness(s.Y, true), pos.X, pos.Y,
		pressedString(joyLow), pressedString(aLow))
	fmt.Printf("%s\n", status.FormatJSON(idleSnapshot(s, statusConfig(o), time.Now())))
	return nil
}

func statusConfig(o options) status.Config {
	return status.Config{
		PollMs:      o.poll.Milliseconds(),
		DebounceMs:  o.debounce.Milliseconds(),
		OverlayMs:   o.overlay.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		Display:     fmt.Sprintf("ssd1306@%#x", o.displayAddr),
		ADC:         fmt.Sprintf("mcp3208 x=%d y=%d", o.adcX, o.adcY),
	}
}

// idleSnapshot is the status of a panel that has just started and read
// sample, before any tick has rendered.
func idleSnapshot(sample logic.Sample, cfg status.Config, now time.Time) status.Snapshot {
	return status.Snapshot{
		State:     panel.NewState().Snapshot(),
		Sample:    sample,
		StartTime: now,
		Now:       now,
		Config:    cfg,
	}
}

func runLoop(ctrl *panel.Controller, joystick sampler, tracker *status.Tracker, heartbeat time.Duration, now clock.Func, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if tracker != nil {
				log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName(s)))
			}
			return nil

		case <-tick:
			t := now()
			sample, err := joystick.Sample()
			if err != nil {
				log.Printf("joystick read error: %v", err)
				if tracker != nil {
					tracker.RecordReadError()
				}
				continue
			}

			frame, err := ctrl.Tick(t, sample)
			if err != nil {
				log.Printf("render error: %v", err)
				// Keep rendering; the next tick retries every output
			}

			if tracker != nil {
				tracker.Update(ctrl.State().Snapshot(), sample, frame.View, ctrl.Counts())
			}

			if heartbeat > 0 && t-lastHeartbeat >= heartbeat {
				lastHeartbeat = t
				c := ctrl.Counts()
				log.Printf("heartbeat: joystick=%d/%d button_a=%d/%d overlays=%d frames=%d/%d errors=%d",
					c.JoystickAccepted, c.JoystickRejected, c.ButtonAAccepted, c.ButtonARejected,
					c.OverlaysExpired, c.PositionFrames, c.OverlayFrames, c.OutputErrors)
				if tracker != nil {
					tracker.RecordHeartbeat()
					log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", ""))
				}
			}
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

func pressedString(low bool) string {
	if low {
		return "PRESSED"
	}
	return "RELEASED"
}
