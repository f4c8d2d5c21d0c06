// Package hal defines the hardware the control loop consumes and opens the
// selected platform's implementation of it.
package hal

import (
	"image/color"
	"io"
	"time"

	"smartfarm-go/config"
	"smartfarm-go/drivers/dht"
	"smartfarm-go/services/hal/internal/platform"
	"smartfarm-go/types"
)

// ---- Pins ----

// OutputPin is a push-pull digital output.
type OutputPin interface {
	Set(level bool) error
	Get() bool
}

// DataLine is the open-drain single-wire sensor line.
type DataLine = dht.Line

// ---- Converters ----

// ADC samples one fixed analog channel.
type ADC interface {
	// Read returns one raw sample in the converter's native range.
	Read() (uint16, error)
	// Bits is the converter resolution.
	Bits() uint8
}

// ---- Display ----

// Display is a monochrome framebuffer display. SetPixel only touches the
// buffer; Display pushes the whole buffer to the panel in one transaction.
type Display interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
	ClearBuffer()
}

// ---- Timing ----

// Delay is the blocking delay source.
type Delay interface {
	Millis(ms uint32)
	Micros(us uint32)
}

// ---- Sensors ----

// SensorReader performs one single-wire sensor read per call.
type SensorReader interface {
	Read() types.SensorOutcome
}

// Hardware is the bound set of peripherals produced once at Init.
type Hardware struct {
	Relay    OutputPin
	Line     DataLine
	Moisture ADC
	Screen   Display
	Delay    Delay

	// Sensor, when set, replaces the built-in bit-banged driver on Line.
	Sensor SensorReader
	// Debug is the privileged diagnostic channel; nil when absent.
	Debug io.Writer
	// Now is the wall clock for sensor pacing; nil means time.Now.
	Now func() time.Time

	closer func() error
}

// NewHardware is used by platforms and tests to assemble a Hardware value.
func NewHardware(h Hardware, closer func() error) *Hardware {
	h.closer = closer
	return &h
}

// Close releases platform resources. Firmware never calls it.
func (h *Hardware) Close() error {
	if h == nil || h.closer == nil {
		return nil
	}
	return h.closer()
}

// Open performs one-time peripheral bring-up for the build target.
func Open(cfg config.Config) (*Hardware, error) {
	p, err := platform.Open(cfg)
	if err != nil {
		return nil, err
	}
	hw := &Hardware{
		Relay:    p.Relay,
		Line:     p.Line,
		Moisture: p.Moisture,
		Screen:   p.Screen,
		Delay:    p.Delay,
		Debug:    p.Debug,
		closer:   p.Close,
	}
	if p.Sensor != nil {
		hw.Sensor = p.Sensor
	}
	return hw, nil
}
