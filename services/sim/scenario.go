//go:build !(rp2040 || rp2350)

// Package sim replays a scripted scenario through the real controller on
// fake hardware and a virtual clock, and records a transcript of every
// cycle.
package sim

import (
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"smartfarm-go/config"
	"smartfarm-go/drivers/dht"
	"smartfarm-go/errcode"
)

// MoistureStep is one scripted ADC conversion.
type MoistureStep struct {
	Value uint16 `mapstructure:"value" yaml:"value"`
	Fail  bool   `mapstructure:"fail" yaml:"fail,omitempty"`
}

// AirStep is one scripted sensor response. Fail is "", "absent",
// "checksum" or "truncated".
type AirStep struct {
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
	Humidity    float32 `mapstructure:"humidity" yaml:"humidity"`
	Fail        string  `mapstructure:"fail" yaml:"fail,omitempty"`
}

// FaultSpec names the policy action per peripheral ("halt" or "recover").
type FaultSpec struct {
	ADC     string `mapstructure:"adc" yaml:"adc"`
	Display string `mapstructure:"display" yaml:"display"`
	Relay   string `mapstructure:"relay" yaml:"relay"`
}

// Scenario is a simulator run description.
type Scenario struct {
	Name      string        `mapstructure:"name"`
	Cycles    int           `mapstructure:"cycles"`
	Sensor    string        `mapstructure:"sensor"`
	Threshold uint16        `mapstructure:"threshold"`
	Settle    time.Duration `mapstructure:"settle"`
	Pace      time.Duration `mapstructure:"pace"`
	Faults    FaultSpec     `mapstructure:"faults"`

	Moisture []MoistureStep `mapstructure:"moisture"`
	Air      []AirStep      `mapstructure:"air"`

	// FailRelayAt and FailDisplayAt inject a fault on that cycle (1-based).
	FailRelayAt   int `mapstructure:"fail_relay_at"`
	FailDisplayAt int `mapstructure:"fail_display_at"`

	// Show dumps every rendered frame to the display writer.
	Show       bool   `mapstructure:"show"`
	Transcript string `mapstructure:"transcript"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("name", "default")
	v.SetDefault("cycles", 10)
	v.SetDefault("sensor", dht.DHT11.String())
	v.SetDefault("threshold", config.DefaultThreshold)
	v.SetDefault("settle", config.SettleDelay)
	v.SetDefault("pace", config.PaceDelay)
	v.SetDefault("faults.adc", config.DefaultFaults().ADC.String())
	v.SetDefault("faults.display", config.DefaultFaults().Display.String())
	v.SetDefault("faults.relay", config.DefaultFaults().Relay.String())
	v.SetDefault("show", false)
	v.SetDefault("transcript", "")
	return v
}

// Load reads a scenario file. SIM_* environment variables override
// top-level keys (e.g. SIM_CYCLES, SIM_FAULTS_ADC).
func Load(path string) (Scenario, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, errcode.Wrap(errcode.InvalidParams, "sim.load", err)
	}
	return decode(v)
}

// LoadYAML reads a scenario from r.
func LoadYAML(r io.Reader) (Scenario, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return Scenario{}, errcode.Wrap(errcode.InvalidParams, "sim.load", err)
	}
	return decode(v)
}

// Defaults is the scenario used when no file is given.
func Defaults() Scenario {
	s, _ := decode(newViper())
	return s
}

func decode(v *viper.Viper) (Scenario, error) {
	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return Scenario{}, errcode.Wrap(errcode.InvalidParams, "sim.decode", err)
	}
	return s, nil
}

// Config turns the scenario into a controller configuration.
func (s Scenario) Config() (config.Config, error) {
	cfg := config.Default()
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidParams, Op: "sim.config", Msg: msg}
	}

	switch s.Sensor {
	case dht.DHT11.String(), "":
		cfg.Sensor.Type = dht.DHT11
	case dht.DHT22.String():
		cfg.Sensor.Type = dht.DHT22
	default:
		return cfg, bad("unknown sensor " + s.Sensor)
	}
	if s.Cycles <= 0 {
		return cfg, bad("cycles must be positive")
	}
	cfg.Moisture.Threshold = s.Threshold
	cfg.Timing.Settle = s.Settle
	cfg.Timing.Pace = s.Pace

	for _, f := range []struct {
		in  string
		out *config.Action
	}{
		{s.Faults.ADC, &cfg.Faults.ADC},
		{s.Faults.Display, &cfg.Faults.Display},
		{s.Faults.Relay, &cfg.Faults.Relay},
	} {
		a, err := config.ParseAction(f.in)
		if err != nil {
			return cfg, err
		}
		*f.out = a
	}
	return cfg, cfg.Validate()
}
