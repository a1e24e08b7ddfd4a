package display

import (
	"fmt"
	"image"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// DefaultAddress is the usual SSD1306 I2C address.
const DefaultAddress = 0x3C

// drawer is the part of *ssd1306.Dev the OLED pushes frames through.
type drawer interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// OLED is a Displayer for an SSD1306 panel. Drawing goes to an in-memory
// Framebuffer; Display publishes it and pushes the frame to the panel.
type OLED struct {
	*Framebuffer
	dev drawer
	bus io.Closer
	img *image1bit.VerticalLSB
	pix []bool
}

// OpenOLED opens the I2C bus (empty name selects the first bus), initializes
// the panel and blanks it.
func OpenOLED(busName string, addr uint16, width, height int16) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	dev, err := ssd1306.NewI2C(&addrBus{Bus: bus, addr: addr}, &ssd1306.Opts{W: int(width), H: int(height)})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306 at %#x: %w", addr, err)
	}
	o := newOLED(dev, bus, width, height)
	if err := o.Display(); err != nil {
		bus.Close()
		return nil, err
	}
	return o, nil
}

func newOLED(dev drawer, bus io.Closer, width, height int16) *OLED {
	return &OLED{
		Framebuffer: NewFramebuffer(width, height),
		dev:         dev,
		bus:         bus,
		img:         image1bit.NewVerticalLSB(image.Rect(0, 0, int(width), int(height))),
	}
}

// Display publishes the back buffer and writes it to the panel.
func (o *OLED) Display() error {
	if err := o.Framebuffer.Display(); err != nil {
		return err
	}
	o.pix = o.Framebuffer.Snapshot(o.pix)
	w, _ := o.Size()
	for i, on := range o.pix {
		o.img.SetBit(i%int(w), i/int(w), image1bit.Bit(on))
	}
	if err := o.dev.Draw(o.img.Bounds(), o.img, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306 draw: %w", err)
	}
	return nil
}

// Close blanks and halts the panel and releases the bus.
func (o *OLED) Close() error {
	var errs []error
	o.ClearBuffer()
	if err := o.Display(); err != nil {
		errs = append(errs, err)
	}
	if err := o.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("ssd1306 halt: %w", err))
	}
	if o.bus != nil {
		if err := o.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// addrBus sends the driver's transactions to addr. ssd1306.NewI2C always
// addresses DefaultAddress.
type addrBus struct {
	i2c.Bus
	addr uint16
}

func (b *addrBus) Tx(addr uint16, w, r []byte) error {
	if addr == DefaultAddress {
		addr = b.addr
	}
	return b.Bus.Tx(addr, w, r)
}
