//go:build !linux || baremetal

package config

// SelectedBoard is a Raspberry Pi Pico wired as:
//
//	GP15 relay, GP16 DHT data, GP26/ADC0 moisture probe,
//	GP4/GP5 i2c0 SSD1306, GP0/GP1 uart0 debug.
var SelectedBoard = Board{
	Name:    "pico_default",
	Relay:   15,
	Data:    16,
	ADCPin:  26,
	I2C:     I2CPlan{ID: "i2c0", SDA: 4, SCL: 5, Hz: I2CHz},
	DebugTX: 0,
	DebugRX: 1,
}
