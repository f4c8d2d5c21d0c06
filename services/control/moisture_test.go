package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfarm-go/config"
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal/fake"
	"smartfarm-go/types"
)

func TestMoistureReaderClampsToFullScale(t *testing.T) {
	adc := fake.NewADC(12, 5000, 17)
	m := NewMoistureReader(adc, config.MoistureConfig{Bits: 12})

	s, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, types.MoistureSample(4095), s)

	s, err = m.Read()
	require.NoError(t, err)
	assert.Equal(t, types.MoistureSample(17), s)
}

func TestMoistureReaderWrapsErrors(t *testing.T) {
	adc := &fake.ADC{Script: []fake.Sample{{Err: errors.New("eoc timeout")}}}
	m := NewMoistureReader(adc, config.MoistureConfig{Bits: 12})

	_, err := m.Read()
	assert.Equal(t, errcode.ADCFailed, errcode.Of(err))
}
