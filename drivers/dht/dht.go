// Package dht provides a bit-banged driver for DHT11/DHT22 single-wire
// temperature/humidity sensors.
//
//	d := dht.New(line, delayUS, dht.Config{Type: dht.DHT11})
//	s, err := d.Read()
//
// The driver only needs an open-drain Line and a microsecond delay. Pulse
// widths are measured by counting 1 µs delay iterations, and bits are decided
// by comparing each high pulse with the low pulse that precedes it, so the
// decode tolerates per-iteration overhead on slow targets.
//
// The line is always released (read-ready, pulled high) when Read returns.
package dht

import (
	"errors"
	"time"
)

// Type selects the sensor variant.
type Type uint8

const (
	DHT11 Type = iota
	DHT22
)

func (t Type) String() string {
	if t == DHT22 {
		return "dht22"
	}
	return "dht11"
}

// Protocol timing (µs unless noted).
const (
	startLowDHT11 = 18_000
	startLowDHT22 = 1_100

	// Upper bound for any single phase of the response or a data bit.
	phaseTimeout = 100

	frameBits = 40
)

// Errors returned by the driver.
var (
	ErrNoResponse = errors.New("dht: no response")
	ErrTimeout    = errors.New("dht: timeout")
	ErrChecksum   = errors.New("dht: checksum mismatch")
	ErrNotReady   = errors.New("dht: not ready")
)

// Line is one open-drain data line with an external pull-up.
type Line interface {
	// Low drives the line low.
	Low()
	// Release stops driving; the pull-up holds the line high.
	Release()
	// Get samples the line level.
	Get() bool
}

// Config controls non-hardware behaviour. All fields are optional except Type.
type Config struct {
	Type Type
	// MinInterval is the shortest allowed time between read attempts.
	// Defaults to 1 s for DHT11 and 2 s for DHT22.
	MinInterval time.Duration
	// Now is the clock used for MinInterval. Defaults to time.Now.
	Now func() time.Time
}

// Device is a DHT sensor on one Line.
type Device struct {
	line    Line
	delayUS func(us uint32)
	cfg     Config

	last    time.Time
	tried   bool
	frame   [5]byte // reuse buffer to avoid allocations
	lastOK  Sample
	counter uint32 // completed reads, for diagnostics
}

// New creates a driver. It does not touch the line.
func New(line Line, delayUS func(us uint32), cfg Config) *Device {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = time.Second
		if cfg.Type == DHT22 {
			cfg.MinInterval = 2 * time.Second
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Device{line: line, delayUS: delayUS, cfg: cfg}
}

func (d *Device) Type() Type { return d.cfg.Type }

// Reads returns the number of successful reads.
func (d *Device) Reads() uint32 { return d.counter }

// Last returns the most recent successful sample.
func (d *Device) Last() Sample { return d.lastOK }

// Read performs the start handshake and decodes one 40-bit frame.
func (d *Device) Read() (Sample, error) {
	now := d.cfg.Now()
	if d.tried && now.Sub(d.last) < d.cfg.MinInterval {
		return Sample{}, ErrNotReady
	}
	d.tried = true
	d.last = now

	defer d.line.Release()

	if err := d.readFrame(); err != nil {
		return Sample{}, err
	}
	f := d.frame
	if f[0]+f[1]+f[2]+f[3] != f[4] {
		return Sample{}, ErrChecksum
	}
	s := decode(d.cfg.Type, f)
	d.lastOK = s
	d.counter++
	return s, nil
}

func (d *Device) readFrame() error {
	start := uint32(startLowDHT11)
	if d.cfg.Type == DHT22 {
		start = startLowDHT22
	}
	d.line.Low()
	d.delayUS(start)
	d.line.Release()

	// Pull-up high until the sensor answers, then ~80 µs low and ~80 µs high.
	if _, err := d.pulse(true); err != nil {
		return ErrNoResponse
	}
	if _, err := d.pulse(false); err != nil {
		return err
	}
	if _, err := d.pulse(true); err != nil {
		return err
	}

	d.frame = [5]byte{}
	for i := 0; i < frameBits; i++ {
		low, err := d.pulse(false)
		if err != nil {
			return err
		}
		high, err := d.pulse(true)
		if err != nil {
			return err
		}
		if high > low {
			d.frame[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return nil
}

// pulse counts 1 µs steps while the line stays at level.
func (d *Device) pulse(level bool) (uint32, error) {
	var n uint32
	for d.line.Get() == level {
		if n >= phaseTimeout {
			return n, ErrTimeout
		}
		d.delayUS(1)
		n++
	}
	return n, nil
}

// Sample holds one decoded measurement in fixed point.
type Sample struct {
	DeciC  int16  // tenths of °C
	DeciRH uint16 // tenths of %RH
}

func (s Sample) Celsius() float32     { return float32(s.DeciC) / 10 }
func (s Sample) RelHumidity() float32 { return float32(s.DeciRH) / 10 }

func decode(t Type, f [5]byte) Sample {
	switch t {
	case DHT22:
		rh := uint16(f[0])<<8 | uint16(f[1])
		tc := int16(uint16(f[2]&0x7F)<<8 | uint16(f[3]))
		if f[2]&0x80 != 0 {
			tc = -tc
		}
		return Sample{DeciC: tc, DeciRH: rh}
	default:
		// DHT11: integral byte + single-digit decimal byte; newer parts flag
		// negative temperatures in bit 7 of the decimal byte.
		rh := uint16(f[0])*10 + uint16(minDigit(f[1]))
		tc := int16(f[2])*10 + int16(minDigit(f[3]&0x7F))
		if f[3]&0x80 != 0 {
			tc = -tc
		}
		return Sample{DeciC: tc, DeciRH: rh}
	}
}

func minDigit(b byte) byte {
	if b > 9 {
		return 9
	}
	return b
}
