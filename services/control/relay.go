package control

import (
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal"
	"smartfarm-go/types"
)

// Relay drives the pump relay. High is pump on.
type Relay struct {
	pin   hal.OutputPin
	state types.RelayState
}

func NewRelay(pin hal.OutputPin) *Relay { return &Relay{pin: pin} }

// Apply drives the relay to match d. On failure the previous state is
// returned with the error.
func (r *Relay) Apply(d types.Decision) (types.RelayState, error) {
	return r.set(types.RelayFor(d))
}

// Off de-energises the pump.
func (r *Relay) Off() (types.RelayState, error) { return r.set(types.RelayOff) }

// State is the last level written successfully.
func (r *Relay) State() types.RelayState { return r.state }

func (r *Relay) set(s types.RelayState) (types.RelayState, error) {
	if err := r.pin.Set(s == types.RelayOn); err != nil {
		return r.state, errcode.Wrap(errcode.RelayFailed, "relay.set", err)
	}
	r.state = s
	return s, nil
}
