//go:build linux && !baremetal

package config

// SelectedBoard is a Raspberry Pi running linux: BCM17 relay, BCM4 DHT data,
// moisture on IIO device 0 channel 0 (e.g. an ADS1115 bound to its kernel
// driver). The display is rendered to the console.
var SelectedBoard = Board{
	Name:      "rpi_linux",
	Relay:     17,
	Data:      4,
	ADCPin:    0,
	IIODevice: "iio:device0",
	GPIOChip:  "gpiochip0",
	DebugTX:   -1,
	DebugRX:   -1,
}
