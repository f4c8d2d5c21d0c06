package config

import "smartfarm-go/errcode"

// Board describes the wiring chosen for one target. Pin numbers are the
// target's native numbering (RP2 GP numbers or BCM line offsets).
type Board struct {
	Name string

	Relay int // push-pull output
	Data  int // open-drain single-wire sensor line

	// Moisture converter: an ADC-capable pin on MCUs, an IIO channel on linux.
	ADCPin    int
	IIODevice string

	I2C I2CPlan

	// Linux only.
	GPIOChip string

	// MCU debug UART (-1 pins when absent).
	DebugTX, DebugRX int
}

type I2CPlan struct {
	ID       string // e.g. "i2c0"
	SDA, SCL int
	Hz       uint32
}

func (b Board) validate() error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.board", Msg: msg}
	}
	if b.Name == "" {
		return bad("missing board name")
	}
	if b.Relay < 0 || b.Data < 0 {
		return bad("relay and data pins are required")
	}
	if b.Relay == b.Data {
		return bad("relay and data share a pin")
	}
	if b.ADCPin < 0 {
		return bad("missing moisture channel")
	}
	if b.I2C.Hz == 0 && b.I2C.ID != "" {
		return bad("i2c bus without a clock rate")
	}
	return nil
}
