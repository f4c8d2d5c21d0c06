package types

// MoistureSample is a raw converter sample in its native range
// (0..4095 for a 12-bit ADC).
type MoistureSample uint16

// Decision is true when the soil needs water (pump on).
type Decision bool

const (
	NeedsWater Decision = true
	WetEnough  Decision = false
)

type RelayState uint8

const (
	RelayOff RelayState = iota
	RelayOn
)

func (s RelayState) String() string {
	if s == RelayOn {
		return "On"
	}
	return "Off"
}

// RelayFor maps a decision to the relay level that must follow it.
func RelayFor(d Decision) RelayState {
	if d {
		return RelayOn
	}
	return RelayOff
}
