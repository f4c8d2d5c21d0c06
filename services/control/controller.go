// Package control runs the irrigation loop: read the air sensor, sample
// soil moisture, drive the pump relay, wait, then repaint the status screen.
//
//	c, err := control.New(cfg, hw, log)
//	...
//	err = c.Run(ctx) // returns only on a fatal fault or cancellation
//
// One goroutine owns everything; each Step is strictly sequential.
package control

import (
	"context"
	"time"

	"smartfarm-go/config"
	"smartfarm-go/drivers/dht"
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal"
	"smartfarm-go/services/status"
	"smartfarm-go/types"
	"smartfarm-go/x/logx"
)

// Display text.
const (
	textTemperature = "Temperature "
	textHumidity    = "Humidity "
	textTimingError = "DHT Timing Error"
	textPumpOn      = "Pump On"
	textPumpOff     = "Pump Off"
	textMoisture    = "Moisture Analog "
	textADCError    = "Moisture ADC Error"
)

// Report describes one completed cycle.
type Report struct {
	Cycle    uint64
	Outcome  types.SensorOutcome
	Sample   types.MoistureSample
	SampleOK bool
	Decision types.Decision
	Relay    types.RelayState
	Frame    types.Text
	// Faults holds peripheral errors the fault policy recovered from.
	Faults []error
}

// Controller is the control loop state machine (Init, then Cycle forever).
type Controller struct {
	cfg config.Config
	hw  *hal.Hardware
	log *logx.Logger

	sensor   hal.SensorReader
	moisture *MoistureReader
	relay    *Relay
	screen   *status.Renderer

	frame  types.Frame
	cycles uint64
	ready  bool
}

// New binds the controller to hardware. It does not touch any peripheral.
func New(cfg config.Config, hw *hal.Hardware, log *logx.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hw == nil || hw.Relay == nil || hw.Moisture == nil || hw.Screen == nil || hw.Delay == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "control.new", Msg: "incomplete hardware"}
	}
	if hw.Sensor == nil && hw.Line == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "control.new", Msg: "no sensor line"}
	}
	if log == nil {
		log = logx.Nop()
	}

	sensor := hw.Sensor
	if sensor == nil {
		dev := dht.New(hw.Line, hw.Delay.Micros, dht.Config{
			Type:        cfg.Sensor.Type,
			MinInterval: cfg.Sensor.MinInterval,
			Now:         hw.Now,
		})
		sensor = NewDHTReader(dev)
	}

	return &Controller{
		cfg:      cfg,
		hw:       hw,
		log:      log,
		sensor:   sensor,
		moisture: NewMoistureReader(hw.Moisture, cfg.Moisture),
		relay:    NewRelay(hw.Relay),
		screen:   status.New(hw.Screen, cfg.Display),
	}, nil
}

// Init puts the hardware in a known state: pump off, sensor line released,
// blank screen. It then waits for the sensor to settle.
func (c *Controller) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.relay.Off(); err != nil {
		return errcode.Wrap(errcode.InitFailed, "control.init", err)
	}
	if c.hw.Line != nil {
		c.hw.Line.Release()
	}
	if err := c.screen.Clear(); err != nil {
		if c.cfg.Faults.Display == config.Halt {
			return errcode.Wrap(errcode.InitFailed, "control.init", err)
		}
		c.log.Warnw("display clear failed", "err", err)
	}

	c.log.Debugw("waiting on the sensor", "ms", millis(c.cfg.Timing.Settle))
	c.hw.Delay.Millis(millis(c.cfg.Timing.Settle))
	c.ready = true
	return nil
}

// Step runs one cycle. The error is non-nil only for a fatal fault; the
// report then covers the cycle up to the failure.
func (c *Controller) Step(ctx context.Context) (Report, error) {
	return c.step(ctx, true)
}

// step runs one cycle. Report.Frame is filled only when snapshot is set or
// the cycle ends in a fatal fault.
func (c *Controller) step(ctx context.Context, snapshot bool) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if !c.ready {
		return Report{}, &errcode.E{C: errcode.NotReady, Op: "control.step", Msg: "Init not run"}
	}

	c.cycles++
	rep := Report{Cycle: c.cycles}
	fatal := func(err error) (Report, error) {
		rep.Relay = c.relay.State()
		rep.Frame = c.frame.Text()
		c.log.Errorw("fatal fault", "cycle", rep.Cycle, "code", errcode.Of(err), "err", err)
		return rep, err
	}

	c.frame.ResetVolatile()

	// Air sensor. Temperature and humidity only change on success.
	out := c.sensor.Read()
	rep.Outcome = out
	if out.OK() {
		c.frame.Temperature.Set(textTemperature)
		c.frame.Temperature.WriteDecimal(out.Reading.Temperature)
		_ = c.frame.Temperature.WriteByte('C')
		c.frame.Humidity.Set(textHumidity)
		c.frame.Humidity.WriteDecimal(out.Reading.Humidity)
		_ = c.frame.Humidity.WriteByte('%')
	} else {
		c.frame.Error.Set(textTimingError)
		c.log.Debugw("dht read failed", "code", errcode.Of(out.Cause), "err", out.Cause)
	}

	// Soil moisture and pump.
	sample, err := c.moisture.Read()
	if err != nil {
		if c.cfg.Faults.ADC == config.Halt {
			return fatal(err)
		}
		rep.Faults = append(rep.Faults, err)
		c.log.Warnw("moisture read failed, pump off", "err", err)
		if _, rerr := c.relay.Off(); rerr != nil {
			if c.cfg.Faults.Relay == config.Halt {
				return fatal(rerr)
			}
			rep.Faults = append(rep.Faults, rerr)
			c.log.Warnw("relay write failed", "err", rerr)
		}
		c.frame.Moisture.Set(textADCError)
	} else {
		rep.Sample, rep.SampleOK = sample, true
		rep.Decision = Decide(sample, c.cfg.Moisture.Threshold)
		if _, rerr := c.relay.Apply(rep.Decision); rerr != nil {
			if c.cfg.Faults.Relay == config.Halt {
				return fatal(rerr)
			}
			rep.Faults = append(rep.Faults, rerr)
			c.log.Warnw("relay write failed", "err", rerr)
		}
		if rep.Decision {
			c.log.Debugw("low moisture, pump on", "analog", uint16(sample))
		} else {
			c.log.Debugw("high moisture, pump off", "analog", uint16(sample))
		}
		c.frame.Moisture.Set(textMoisture)
		c.frame.Moisture.WriteUint(uint64(sample))
	}
	rep.Relay = c.relay.State()
	if rep.Relay == types.RelayOn {
		c.frame.Relay.Set(textPumpOn)
	} else {
		c.frame.Relay.Set(textPumpOff)
	}

	c.hw.Delay.Millis(millis(c.cfg.Timing.Pace))

	if err := c.screen.Render(&c.frame); err != nil {
		if c.cfg.Faults.Display == config.Halt {
			return fatal(err)
		}
		rep.Faults = append(rep.Faults, err)
		c.log.Warnw("render skipped", "err", err)
	}

	if snapshot {
		rep.Frame = c.frame.Text()
	}
	return rep, nil
}

// Run initialises the hardware and cycles until a fatal fault or ctx is
// cancelled.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Init(ctx); err != nil {
		return err
	}
	for {
		if _, err := c.step(ctx, false); err != nil {
			return err
		}
	}
}

// Frame returns a snapshot of the current display text.
func (c *Controller) Frame() types.Text { return c.frame.Text() }

// Cycles is the number of cycles started.
func (c *Controller) Cycles() uint64 { return c.cycles }

func millis(d time.Duration) uint32 { return uint32(d / time.Millisecond) }
