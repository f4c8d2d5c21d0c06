// Package platform performs one-time peripheral bring-up for the build
// target. Exactly one Open is compiled in per target.
package platform

import (
	"image/color"
	"io"

	"smartfarm-go/drivers/dht"
	"smartfarm-go/types"
)

type OutputPin interface {
	Set(level bool) error
	Get() bool
}

type ADC interface {
	Read() (uint16, error)
	Bits() uint8
}

type Display interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
	ClearBuffer()
}

type Delay interface {
	Millis(ms uint32)
	Micros(us uint32)
}

type SensorReader interface {
	Read() types.SensorOutcome
}

// Peripherals is what a platform hands back to hal.Open.
type Peripherals struct {
	Relay    OutputPin
	Line     dht.Line
	Moisture ADC
	Screen   Display
	Delay    Delay
	Sensor   SensorReader // optional
	Debug    io.Writer    // optional
	Close    func() error
}
