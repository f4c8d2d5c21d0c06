// Package config holds the controller's immutable configuration. Every
// parameter is a compile-time constant; the board plan is selected by build
// tags. Default is called once at Init and the value is passed down.
package config

import (
	"time"

	"smartfarm-go/drivers/dht"
	"smartfarm-go/errcode"
	"smartfarm-go/x/strx"
)

// ---- Compile-time constants ----

const (
	// DefaultThreshold is the raw moisture sample below which the pump runs.
	// Confirm probe polarity against the hardware before changing it.
	DefaultThreshold uint16 = 2048

	ADCBits uint8 = 12

	SettleDelay = 1000 * time.Millisecond
	PaceDelay   = 2000 * time.Millisecond

	I2CHz          uint32 = 400_000
	DisplayAddress uint16 = 0x3C
	DisplayWidth   int16  = 128
	DisplayHeight  int16  = 64

	// Text layout: five lines at x=5, tops 5, 15, 25, 35, 45.
	LineX    int16 = 5
	LineTop  int16 = 5
	LineStep int16 = 10

	DebugBaud uint32 = 115_200
)

// ---- Fault policy ----

// Action is the per-call-site response to a peripheral failure.
type Action uint8

const (
	Halt Action = iota
	Recover
)

func (a Action) String() string {
	if a == Recover {
		return "recover"
	}
	return "halt"
}

// ParseAction accepts "halt" or "recover".
func ParseAction(s string) (Action, error) {
	switch s {
	case "halt":
		return Halt, nil
	case "recover":
		return Recover, nil
	}
	return Halt, &errcode.E{C: errcode.InvalidParams, Op: "config.action", Msg: s}
}

// FaultPolicy decides, per peripheral, whether a failure stops the loop.
// Sensor timing errors are always recoverable and are not listed.
type FaultPolicy struct {
	ADC     Action
	Display Action
	Relay   Action
}

// DefaultFaults keeps the loop alive on converter and display glitches and
// halts on a relay write failure.
func DefaultFaults() FaultPolicy {
	return FaultPolicy{ADC: Recover, Display: Recover, Relay: Halt}
}

// BaselineFaults halts on every non-sensor failure.
func BaselineFaults() FaultPolicy {
	return FaultPolicy{ADC: Halt, Display: Halt, Relay: Halt}
}

// ---- Sections ----

type SensorConfig struct {
	Type        dht.Type
	MinInterval time.Duration // 0 => driver default
}

type MoistureConfig struct {
	Threshold uint16
	Bits      uint8
}

// FullScale is the largest sample the converter can produce.
func (m MoistureConfig) FullScale() uint16 {
	if m.Bits == 0 || m.Bits >= 16 {
		return 0xFFFF
	}
	return uint16(1)<<m.Bits - 1
}

type TimingConfig struct {
	Settle time.Duration
	Pace   time.Duration
}

type DisplayConfig struct {
	Width, Height int16
	Address       uint16
	X, Top, Step  int16
}

// LineTop returns the top edge of text line i.
func (d DisplayConfig) LineTop(i int) int16 { return d.Top + int16(i)*d.Step }

// Config is the complete controller configuration.
type Config struct {
	Board    Board
	Sensor   SensorConfig
	Moisture MoistureConfig
	Timing   TimingConfig
	Display  DisplayConfig
	Faults   FaultPolicy
	LogLevel string
}

// Default builds the configuration for the selected board.
func Default() Config {
	return Config{
		Board:    SelectedBoard,
		Sensor:   SensorConfig{Type: dht.DHT11},
		Moisture: MoistureConfig{Threshold: DefaultThreshold, Bits: ADCBits},
		Timing:   TimingConfig{Settle: SettleDelay, Pace: PaceDelay},
		Display: DisplayConfig{
			Width: DisplayWidth, Height: DisplayHeight, Address: DisplayAddress,
			X: LineX, Top: LineTop, Step: LineStep,
		},
		Faults:   DefaultFaults(),
		LogLevel: strx.Coalesce(buildLogLevel, "warn"),
	}
}

// Validate checks internal consistency.
func (c Config) Validate() error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.validate", Msg: msg}
	}
	if err := c.Board.validate(); err != nil {
		return err
	}
	if c.Moisture.Bits == 0 || c.Moisture.Bits > 16 {
		return bad("adc bits out of range")
	}
	if c.Moisture.Threshold == 0 || c.Moisture.Threshold > c.Moisture.FullScale() {
		return bad("threshold outside converter range")
	}
	if c.Timing.Settle < 0 || c.Timing.Pace <= 0 {
		return bad("timing must be positive")
	}
	d := c.Display
	if d.Width <= 0 || d.Height <= 0 {
		return bad("display geometry")
	}
	if d.X < 0 || d.Top < 0 || d.Step <= 0 || d.LineTop(4) >= d.Height {
		return bad("text layout does not fit the display")
	}
	if c.Sensor.Type != dht.DHT11 && c.Sensor.Type != dht.DHT22 {
		return bad("unknown sensor type")
	}
	return nil
}
