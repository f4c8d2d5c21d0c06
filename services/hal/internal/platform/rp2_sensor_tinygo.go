//go:build rp2040 && dht_tinygo

package platform

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/dht"

	"smartfarm-go/config"
	drvdht "smartfarm-go/drivers/dht"
	"smartfarm-go/types"
	"smartfarm-go/x/mathx"
)

// sensorStrategy swaps in the upstream TinyGo DHT driver on the data pin.
func sensorStrategy(cfg config.Config) SensorReader {
	kind := dht.DHT11
	if cfg.Sensor.Type == drvdht.DHT22 {
		kind = dht.DHT22
	}
	every := mathx.Max(cfg.Sensor.MinInterval, 2*time.Second)
	return &tinygoDHT{dev: dht.NewWithPolicy(machine.Pin(cfg.Board.Data), kind, dht.UpdatePolicy{
		UpdateTime:          every,
		UpdateAutomatically: false,
	})}
}

type tinygoDHT struct{ dev dht.Device }

func (t *tinygoDHT) Read() types.SensorOutcome {
	if err := t.dev.ReadMeasurements(); err != nil {
		return types.TimingError(err)
	}
	deciC, deciRH, err := t.dev.Measurements()
	if err != nil {
		return types.TimingError(err)
	}
	return types.Success(types.Reading{
		Temperature: float32(deciC) / 10,
		Humidity:    float32(deciRH) / 10,
	})
}
