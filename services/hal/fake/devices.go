package fake

import (
	"smartfarm-go/types"
)

// ---- Output pin ----

// Pin is a recording push-pull output.
type Pin struct {
	level bool
	// History holds every accepted write.
	History []bool
	// Err, when set, fails every Set without changing the level.
	Err error
}

func (p *Pin) Set(level bool) error {
	if p.Err != nil {
		return p.Err
	}
	p.level = level
	p.History = append(p.History, level)
	return nil
}

func (p *Pin) Get() bool { return p.level }

// ---- ADC ----

// Sample is one scripted conversion.
type Sample struct {
	V   uint16
	Err error
}

// ADC replays Script; the last entry repeats.
type ADC struct {
	bits   uint8
	Script []Sample
	Calls  int
}

// NewADC scripts successful conversions.
func NewADC(bits uint8, vs ...uint16) *ADC {
	a := &ADC{bits: bits}
	for _, v := range vs {
		a.Script = append(a.Script, Sample{V: v})
	}
	return a
}

func (a *ADC) Read() (uint16, error) {
	a.Calls++
	if len(a.Script) == 0 {
		return 0, nil
	}
	i := a.Calls - 1
	if i >= len(a.Script) {
		i = len(a.Script) - 1
	}
	s := a.Script[i]
	return s.V, s.Err
}

func (a *ADC) Bits() uint8 { return a.bits }

// ---- Sensor ----

// Sensor replays scripted outcomes; the last entry repeats. An empty
// script always times out.
type Sensor struct {
	Script []types.SensorOutcome
	Calls  int
}

func (s *Sensor) Read() types.SensorOutcome {
	s.Calls++
	if len(s.Script) == 0 {
		return types.TimingError(errNoSensor)
	}
	i := s.Calls - 1
	if i >= len(s.Script) {
		i = len(s.Script) - 1
	}
	return s.Script[i]
}

type sensorErr string

func (e sensorErr) Error() string { return string(e) }

const errNoSensor = sensorErr("fake: no scripted outcome")
