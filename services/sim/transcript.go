//go:build !(rp2040 || rp2350)

package sim

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"smartfarm-go/services/control"
	"smartfarm-go/types"
)

// Transcript is the YAML record of one simulator run.
type Transcript struct {
	RunID     string    `yaml:"run_id"`
	Scenario  string    `yaml:"scenario"`
	Sensor    string    `yaml:"sensor"`
	Threshold uint16    `yaml:"threshold"`
	Faults    FaultSpec `yaml:"faults"`
	Cycles    []Cycle   `yaml:"cycles"`
	Halted    string    `yaml:"halted,omitempty"`
	Elapsed   string    `yaml:"elapsed,omitempty"`
}

// Cycle is one controller cycle as seen from outside.
type Cycle struct {
	N         uint64         `yaml:"n"`
	AtMs      int64          `yaml:"at_ms"`
	Outcome   string         `yaml:"outcome"`
	Reading   *types.Reading `yaml:"reading,omitempty"`
	Cause     string         `yaml:"cause,omitempty"`
	Moisture  *uint16        `yaml:"moisture,omitempty"`
	Relay     string         `yaml:"relay"`
	Lines     types.Text     `yaml:"lines"`
	Recovered []string       `yaml:"recovered,omitempty"`
}

func (t *Transcript) add(rep control.Report, at time.Duration) {
	if rep.Cycle == 0 {
		return
	}
	c := Cycle{
		N:       rep.Cycle,
		AtMs:    at.Milliseconds(),
		Outcome: rep.Outcome.Kind.String(),
		Relay:   rep.Relay.String(),
		Lines:   rep.Frame,
	}
	if rep.Outcome.OK() {
		r := rep.Outcome.Reading
		c.Reading = &r
	} else if rep.Outcome.Cause != nil {
		c.Cause = rep.Outcome.Cause.Error()
	}
	if rep.SampleOK {
		v := uint16(rep.Sample)
		c.Moisture = &v
	}
	for _, f := range rep.Faults {
		c.Recovered = append(c.Recovered, f.Error())
	}
	t.Cycles = append(t.Cycles, c)
}

// Encode writes t as YAML.
func (t *Transcript) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes t to path.
func (t *Transcript) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadTranscript decodes a transcript written by Encode.
func ReadTranscript(r io.Reader) (*Transcript, error) {
	var t Transcript
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
