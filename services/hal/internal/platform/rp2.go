//go:build rp2040

package platform

import (
	"io"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ssd1306"

	"smartfarm-go/config"
	"smartfarm-go/errcode"
)

// Open brings up a Pico: debug UART first so later failures are visible,
// then relay (driven low), sensor line (released), ADC and the SSD1306.
func Open(cfg config.Config) (*Peripherals, error) {
	b := cfg.Board

	var debug io.Writer
	if b.DebugTX >= 0 {
		u := uartx.UART0
		if err := u.Configure(uartx.UARTConfig{
			BaudRate: config.DebugBaud,
			TX:       machine.Pin(b.DebugTX),
			RX:       machine.Pin(b.DebugRX),
		}); err == nil {
			debug = u
		}
	}

	relay := &rp2Out{p: machine.Pin(b.Relay)}
	relay.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	relay.p.Low()

	line := &rp2Line{p: machine.Pin(b.Data)}
	line.Release()

	machine.InitADC()
	adc := &rp2ADC{a: machine.ADC{Pin: machine.Pin(b.ADCPin)}, bits: cfg.Moisture.Bits}
	adc.a.Configure(machine.ADCConfig{})

	bus, ok := i2cByID(b.I2C.ID)
	if !ok {
		return nil, &errcode.E{C: errcode.InitFailed, Op: "platform.i2c", Msg: b.I2C.ID}
	}
	sda, scl := machine.Pin(b.I2C.SDA), machine.Pin(b.I2C.SCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := bus.Configure(machine.I2CConfig{Frequency: b.I2C.Hz, SDA: sda, SCL: scl}); err != nil {
		return nil, errcode.Wrap(errcode.InitFailed, "platform.i2c", err)
	}

	screen := ssd1306.NewI2C(bus)
	screen.Configure(ssd1306.Config{
		Address: cfg.Display.Address,
		Width:   cfg.Display.Width,
		Height:  cfg.Display.Height,
	})
	screen.ClearBuffer()
	if err := screen.Display(); err != nil {
		return nil, errcode.Wrap(errcode.InitFailed, "platform.display", err)
	}

	return &Peripherals{
		Relay:    relay,
		Line:     line,
		Moisture: adc,
		Screen:   screen,
		Delay:    rp2Delay{},
		Sensor:   sensorStrategy(cfg),
		Debug:    debug,
		Close:    func() error { return nil },
	}, nil
}

func i2cByID(id string) (*machine.I2C, bool) {
	switch id {
	case "i2c0":
		return machine.I2C0, true
	case "i2c1":
		return machine.I2C1, true
	}
	return nil, false
}

// ---- GPIO ----

type rp2Out struct{ p machine.Pin }

func (r *rp2Out) Set(level bool) error { r.p.Set(level); return nil }
func (r *rp2Out) Get() bool            { return r.p.Get() }

// rp2Line emulates open drain: output-low to pull, pulled-up input to release.
type rp2Line struct{ p machine.Pin }

func (r *rp2Line) Low() {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Low()
}

func (r *rp2Line) Release() { r.p.Configure(machine.PinConfig{Mode: machine.PinInputPullup}) }
func (r *rp2Line) Get() bool { return r.p.Get() }

// ---- ADC ----

type rp2ADC struct {
	a    machine.ADC
	bits uint8
}

// Read rescales TinyGo's left-justified 16-bit value to the native width.
func (r *rp2ADC) Read() (uint16, error) {
	v := r.a.Get()
	if r.bits > 0 && r.bits < 16 {
		v >>= 16 - r.bits
	}
	return v, nil
}

func (r *rp2ADC) Bits() uint8 { return r.bits }

// ---- Delay ----

type rp2Delay struct{}

func (rp2Delay) Millis(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Micros busy-waits; sleeping has too much overhead at this scale.
func (rp2Delay) Micros(us uint32) {
	end := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(end) {
	}
}
