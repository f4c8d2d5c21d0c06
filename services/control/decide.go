package control

import "smartfarm-go/types"

// Decide reports whether the soil needs water: a raw sample strictly below
// threshold turns the pump on. Only the latest sample counts.
func Decide(sample types.MoistureSample, threshold uint16) types.Decision {
	return types.Decision(uint16(sample) < threshold)
}
