package control

import (
	"smartfarm-go/config"
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal"
	"smartfarm-go/types"
	"smartfarm-go/x/mathx"
)

// MoistureReader takes one raw sample per call from the moisture channel.
type MoistureReader struct {
	adc  hal.ADC
	full uint16
}

// NewMoistureReader clamps samples to the converter's full scale. The
// converter's own width wins over cfg when it reports one.
func NewMoistureReader(adc hal.ADC, cfg config.MoistureConfig) *MoistureReader {
	if b := adc.Bits(); b != 0 {
		cfg.Bits = b
	}
	return &MoistureReader{adc: adc, full: cfg.FullScale()}
}

func (m *MoistureReader) Read() (types.MoistureSample, error) {
	v, err := m.adc.Read()
	if err != nil {
		return 0, errcode.Wrap(errcode.ADCFailed, "moisture.read", err)
	}
	return types.MoistureSample(mathx.Clamp(v, 0, m.full)), nil
}
