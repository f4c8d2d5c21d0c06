//go:build rp2040 && !dht_tinygo

package platform

import "smartfarm-go/config"

// sensorStrategy returns nil: the controller bit-bangs the line itself.
func sensorStrategy(config.Config) SensorReader { return nil }
