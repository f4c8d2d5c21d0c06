package types

// ------------------------
// Temperature & humidity
// ------------------------

// Reading is one decoded temperature/humidity measurement in native sensor
// units (°C and %RH). It is never merged with an earlier reading.
type Reading struct {
	Temperature float32 `json:"temperature" yaml:"temperature"`
	Humidity    float32 `json:"humidity" yaml:"humidity"`
}

// OutcomeKind classifies a sensor read. The zero value is a timing error so an
// unset outcome never reads as a measurement.
type OutcomeKind uint8

const (
	OutcomeTimingError OutcomeKind = iota
	OutcomeSuccess
)

func (k OutcomeKind) String() string {
	if k == OutcomeSuccess {
		return "success"
	}
	return "timing_error"
}

// SensorOutcome is the result of exactly one single-wire sensor read.
// Reading is only meaningful for OutcomeSuccess; Cause only for
// OutcomeTimingError (kept for diagnostics, never displayed).
type SensorOutcome struct {
	Kind    OutcomeKind
	Reading Reading
	Cause   error
}

func Success(r Reading) SensorOutcome { return SensorOutcome{Kind: OutcomeSuccess, Reading: r} }

func TimingError(cause error) SensorOutcome {
	return SensorOutcome{Kind: OutcomeTimingError, Cause: cause}
}

func (o SensorOutcome) OK() bool { return o.Kind == OutcomeSuccess }
