package control

import (
	"errors"

	"smartfarm-go/drivers/dht"
	"smartfarm-go/errcode"
	"smartfarm-go/types"
)

// DHTReader adapts the bit-banged driver to a SensorReader. Every driver
// failure becomes a TimingError.
type DHTReader struct {
	dev *dht.Device
}

func NewDHTReader(dev *dht.Device) *DHTReader { return &DHTReader{dev: dev} }

func (r *DHTReader) Read() types.SensorOutcome {
	s, err := r.dev.Read()
	if err != nil {
		return types.TimingError(errcode.Wrap(dhtCode(err), "dht.read", err))
	}
	return types.Success(types.Reading{Temperature: s.Celsius(), Humidity: s.RelHumidity()})
}

func dhtCode(err error) errcode.Code {
	switch {
	case errors.Is(err, dht.ErrNoResponse):
		return errcode.NoResponse
	case errors.Is(err, dht.ErrTimeout):
		return errcode.Timeout
	case errors.Is(err, dht.ErrChecksum):
		return errcode.Checksum
	case errors.Is(err, dht.ErrNotReady):
		return errcode.NotReady
	}
	return errcode.Error
}
