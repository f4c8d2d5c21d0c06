//go:build !(rp2040 || rp2350)

package sim

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"smartfarm-go/config"
	"smartfarm-go/drivers/dht"
	"smartfarm-go/errcode"
	"smartfarm-go/services/control"
	"smartfarm-go/services/hal"
	"smartfarm-go/services/hal/fake"
	"smartfarm-go/services/hal/fb"
	"smartfarm-go/x/logx"
)

var (
	errInjectedADC     = errors.New("sim: injected conversion failure")
	errInjectedRelay   = errors.New("sim: injected pin write failure")
	errInjectedDisplay = errors.New("sim: injected flush failure")
)

// Bench is the fake hardware a scenario runs on.
type Bench struct {
	Clock  *fake.Clock
	Relay  *fake.Pin
	ADC    *fake.ADC
	Line   *fake.DHTLine
	Screen *fb.Framebuffer
}

// NewBench scripts fake hardware from s. display receives frame dumps
// when s.Show is set.
func NewBench(s Scenario, typ dht.Type, display io.Writer) *Bench {
	clk := fake.NewClock()
	b := &Bench{Clock: clk, Relay: &fake.Pin{}, ADC: fake.NewADC(config.ADCBits)}

	for _, m := range s.Moisture {
		smp := fake.Sample{V: m.Value}
		if m.Fail {
			smp.Err = errInjectedADC
		}
		b.ADC.Script = append(b.ADC.Script, smp)
	}

	resp := make([]fake.Response, 0, len(s.Air))
	for _, a := range s.Air {
		resp = append(resp, airResponse(a, typ))
	}
	b.Line = fake.NewDHTLine(clk, resp...)

	var out io.Writer
	if s.Show {
		out = display
	}
	b.Screen = fb.New(config.DisplayWidth, config.DisplayHeight, out)
	return b
}

func airResponse(a AirStep, typ dht.Type) fake.Response {
	deciC := int16(math32.Round(a.Temperature * 10))
	deciRH := uint16(math32.Round(math32.Max(a.Humidity, 0) * 10))
	var f [5]byte
	if typ == dht.DHT22 {
		f = fake.EncodeDHT22(deciC, deciRH)
	} else {
		// DHT11 frames carry whole percent humidity.
		f = fake.EncodeDHT11(deciC, deciRH-deciRH%10)
	}
	switch a.Fail {
	case "absent":
		return fake.Response{Absent: true}
	case "checksum":
		return fake.Response{Frame: fake.Corrupt(f)}
	case "truncated":
		return fake.Response{Frame: f, Truncate: 20}
	}
	return fake.Response{Frame: f}
}

// Hardware wraps the bench so injected relay and display faults land on
// the configured cycles.
func (b *Bench) Hardware(s Scenario, cycle func() int) *hal.Hardware {
	return hal.NewHardware(hal.Hardware{
		Relay:    &faultyPin{Pin: b.Relay, at: s.FailRelayAt, cycle: cycle},
		Line:     b.Line,
		Moisture: b.ADC,
		Screen:   &faultyScreen{Framebuffer: b.Screen, at: s.FailDisplayAt, cycle: cycle},
		Delay:    b.Clock,
		Now:      b.Clock.Now,
	}, nil)
}

type faultyPin struct {
	*fake.Pin
	at    int
	cycle func() int
}

func (p *faultyPin) Set(level bool) error {
	if p.at > 0 && p.cycle() == p.at {
		return errInjectedRelay
	}
	return p.Pin.Set(level)
}

type faultyScreen struct {
	*fb.Framebuffer
	at    int
	cycle func() int
}

func (s *faultyScreen) Display() error {
	if s.at > 0 && s.cycle() == s.at {
		return errInjectedDisplay
	}
	return s.Framebuffer.Display()
}

// Run executes the scenario and returns its transcript. A fatal fault
// ends the run early; it is recorded in the transcript and returned.
func Run(ctx context.Context, s Scenario, log *logx.Logger, display io.Writer) (*Transcript, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logx.Nop()
	}

	bench := NewBench(s, cfg.Sensor.Type, display)
	var c *control.Controller
	cycle := func() int {
		if c == nil {
			return 0
		}
		return int(c.Cycles())
	}
	c, err = control.New(cfg, bench.Hardware(s, cycle), log)
	if err != nil {
		return nil, err
	}

	tr := &Transcript{
		RunID:     uuid.NewString(),
		Scenario:  s.Name,
		Sensor:    cfg.Sensor.Type.String(),
		Threshold: cfg.Moisture.Threshold,
		Faults: FaultSpec{
			ADC:     cfg.Faults.ADC.String(),
			Display: cfg.Faults.Display.String(),
			Relay:   cfg.Faults.Relay.String(),
		},
	}
	log.Infow("sim start", "run", tr.RunID, "scenario", s.Name, "cycles", s.Cycles)

	if err := c.Init(ctx); err != nil {
		tr.Halted = err.Error()
		return tr, err
	}
	for i := 0; i < s.Cycles; i++ {
		rep, err := c.Step(ctx)
		tr.add(rep, bench.Clock.Elapsed())
		if err != nil {
			tr.Halted = err.Error()
			log.Errorw("sim halted", "cycle", rep.Cycle, "code", errcode.Of(err), "err", err)
			return tr, err
		}
	}
	tr.Elapsed = bench.Clock.Elapsed().Round(time.Millisecond).String()
	log.Infow("sim done", "run", tr.RunID, "elapsed", tr.Elapsed)
	return tr, nil
}
