//go:build linux && !baremetal

package platform

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"smartfarm-go/config"
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal/fb"
)

const consumer = "smartfarm"

// Open requests the relay and sensor lines on the board's gpiochip, binds
// the IIO moisture channel and renders the display to the console.
func Open(cfg config.Config) (*Peripherals, error) {
	b := cfg.Board

	chip, err := gpiocdev.NewChip(b.GPIOChip, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, errcode.Wrap(errcode.InitFailed, "platform.gpiochip", err)
	}

	relayLine, err := chip.RequestLine(b.Relay, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, errcode.Wrap(errcode.InitFailed, "platform.relay", err)
	}

	dataLine, err := chip.RequestLine(b.Data, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		relayLine.Close()
		chip.Close()
		return nil, errcode.Wrap(errcode.InitFailed, "platform.data", err)
	}

	adc := &iioADC{
		path: "/sys/bus/iio/devices/" + b.IIODevice + "/in_voltage" + strconv.Itoa(b.ADCPin) + "_raw",
		bits: cfg.Moisture.Bits,
	}
	if _, err := adc.Read(); err != nil {
		dataLine.Close()
		relayLine.Close()
		chip.Close()
		return nil, errcode.Wrap(errcode.InitFailed, "platform.adc", err)
	}

	screen := fb.New(cfg.Display.Width, cfg.Display.Height, os.Stdout)
	screen.Home = "\x1b[H\x1b[2J"

	relay := &cdevOut{l: relayLine}
	line := &cdevLine{l: dataLine}

	return &Peripherals{
		Relay:    relay,
		Line:     line,
		Moisture: adc,
		Screen:   screen,
		Delay:    hostDelay{},
		Close: func() error {
			var errs []error
			// Leave the pump de-energised.
			if err := relayLine.SetValue(0); err != nil {
				errs = append(errs, err)
			}
			for _, c := range []interface{ Close() error }{relayLine, dataLine, chip} {
				if err := c.Close(); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}, nil
}

// ---- GPIO ----

type cdevOut struct {
	l     *gpiocdev.Line
	level bool
}

func (c *cdevOut) Set(level bool) error {
	v := 0
	if level {
		v = 1
	}
	if err := c.l.SetValue(v); err != nil {
		return err
	}
	c.level = level
	return nil
}

func (c *cdevOut) Get() bool { return c.level }

// cdevLine switches direction to emulate open drain; the kernel keeps the
// bias across reconfigures.
type cdevLine struct{ l *gpiocdev.Line }

func (c *cdevLine) Low()     { _ = c.l.Reconfigure(gpiocdev.AsOutput(0)) }
func (c *cdevLine) Release() { _ = c.l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp) }

func (c *cdevLine) Get() bool {
	v, err := c.l.Value()
	return err == nil && v != 0
}

// ---- ADC ----

// iioADC reads one raw channel from the kernel IIO sysfs interface.
type iioADC struct {
	path string
	bits uint8
}

func (a *iioADC) Read() (uint16, error) {
	raw, err := os.ReadFile(a.path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	if v > 0xFFFF {
		v = 0xFFFF
	}
	return uint16(v), nil
}

func (a *iioADC) Bits() uint8 { return a.bits }

// ---- Delay ----

type hostDelay struct{}

func (hostDelay) Millis(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

func (hostDelay) Micros(us uint32) {
	end := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(end) {
	}
}
