//go:build !(rp2040 || rp2350)

package sim

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfarm-go/config"
	"smartfarm-go/errcode"
)

const scenarioYAML = `
name: dry-spell
cycles: 5
pace: 2s
settle: 500ms
moisture:
  - value: 4095
  - value: 100
  - value: 2048
  - value: 100
    fail: true
  - value: 1500
air:
  - temperature: 26
    humidity: 55
  - fail: absent
  - fail: checksum
  - temperature: 21.5
    humidity: 40
  - fail: truncated
`

func load(t *testing.T, src string) Scenario {
	t.Helper()
	s, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	return s
}

func TestLoadAppliesDefaults(t *testing.T) {
	s := load(t, scenarioYAML)
	assert.Equal(t, "dry-spell", s.Name)
	assert.Equal(t, 5, s.Cycles)
	assert.Equal(t, 500*time.Millisecond, s.Settle)
	assert.Equal(t, 2*time.Second, s.Pace)
	assert.Equal(t, config.DefaultThreshold, s.Threshold)
	assert.Equal(t, "dht11", s.Sensor)
	assert.Equal(t, FaultSpec{ADC: "recover", Display: "recover", Relay: "halt"}, s.Faults)
	require.Len(t, s.Moisture, 5)
	assert.True(t, s.Moisture[3].Fail)
	require.Len(t, s.Air, 5)
	assert.Equal(t, "absent", s.Air[1].Fail)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SIM_CYCLES", "2")
	t.Setenv("SIM_FAULTS_ADC", "halt")
	s := load(t, scenarioYAML)
	assert.Equal(t, 2, s.Cycles)
	assert.Equal(t, "halt", s.Faults.ADC)
}

func TestScenarioConfigRejectsBadInput(t *testing.T) {
	s := Defaults()
	s.Sensor = "bme280"
	_, err := s.Config()
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))

	s = Defaults()
	s.Faults.Relay = "ignore"
	_, err = s.Config()
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))

	s = Defaults()
	s.Cycles = 0
	_, err = s.Config()
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
}

func TestRunScenario(t *testing.T) {
	tr, err := Run(context.Background(), load(t, scenarioYAML), nil, nil)
	require.NoError(t, err)
	require.Len(t, tr.Cycles, 5)
	assert.NotEmpty(t, tr.RunID)
	assert.Empty(t, tr.Halted)

	c := tr.Cycles
	assert.Equal(t, "success", c[0].Outcome)
	assert.Equal(t, "Temperature 26C", c[0].Lines.Temperature)
	assert.Equal(t, "Humidity 55%", c[0].Lines.Humidity)
	assert.Equal(t, "Pump Off", c[0].Lines.Relay)
	assert.Equal(t, "Moisture Analog 4095", c[0].Lines.Moisture)
	// settle + pace, plus the time spent on the wire.
	assert.GreaterOrEqual(t, c[0].AtMs, int64(2500))
	assert.Less(t, c[0].AtMs, int64(2600))

	assert.Equal(t, "timing_error", c[1].Outcome)
	assert.Contains(t, c[1].Cause, "no_response")
	assert.Equal(t, "DHT Timing Error", c[1].Lines.Error)
	assert.Equal(t, "Temperature 26C", c[1].Lines.Temperature)
	assert.Equal(t, "Pump On", c[1].Lines.Relay)

	assert.Contains(t, c[2].Cause, "checksum")
	assert.Equal(t, "Pump Off", c[2].Lines.Relay) // threshold itself is wet

	assert.Equal(t, "Temperature 21.5C", c[3].Lines.Temperature)
	assert.Equal(t, "Moisture ADC Error", c[3].Lines.Moisture)
	assert.Equal(t, "Off", c[3].Relay)
	assert.Nil(t, c[3].Moisture)
	require.Len(t, c[3].Recovered, 1)

	assert.Contains(t, c[4].Cause, "timeout")
	assert.Equal(t, "On", c[4].Relay)
	assert.Equal(t, "Humidity 40%", c[4].Lines.Humidity)
}

func TestRunHaltsOnBaselinePolicy(t *testing.T) {
	s := load(t, scenarioYAML)
	s.Faults = FaultSpec{ADC: "halt", Display: "halt", Relay: "halt"}

	tr, err := Run(context.Background(), s, nil, nil)
	assert.Equal(t, errcode.ADCFailed, errcode.Of(err))
	require.NotNil(t, tr)
	assert.Len(t, tr.Cycles, 4)
	assert.Contains(t, tr.Halted, "adc_failed")
}

func TestRunInjectedFaults(t *testing.T) {
	s := load(t, scenarioYAML)
	s.FailDisplayAt = 2
	tr, err := Run(context.Background(), s, nil, nil)
	require.NoError(t, err)
	require.Len(t, tr.Cycles[1].Recovered, 1)
	assert.Contains(t, tr.Cycles[1].Recovered[0], "display_failed")

	s.FailDisplayAt = 0
	s.FailRelayAt = 3
	tr, err = Run(context.Background(), s, nil, nil)
	assert.Equal(t, errcode.RelayFailed, errcode.Of(err))
	assert.Len(t, tr.Cycles, 3)
}

func TestRunShowsFrames(t *testing.T) {
	s := load(t, scenarioYAML)
	s.Cycles = 1
	s.Show = true
	var screen bytes.Buffer
	_, err := Run(context.Background(), s, nil, &screen)
	require.NoError(t, err)
	// Init clear plus one frame, 64 rows each.
	assert.Equal(t, 2*int(config.DisplayHeight), strings.Count(screen.String(), "\n"))
	assert.Contains(t, screen.String(), "#")
}

func TestTranscriptEncode(t *testing.T) {
	s := load(t, scenarioYAML)
	s.Cycles = 2
	tr, err := Run(context.Background(), s, nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Encode(&buf))
	assert.Contains(t, buf.String(), "run_id: "+tr.RunID)
	assert.Contains(t, buf.String(), "temperature: Temperature 26C")

	back, err := ReadTranscript(&buf)
	require.NoError(t, err)
	assert.Equal(t, tr.Cycles, back.Cycles)
}
