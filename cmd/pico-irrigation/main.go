// Command pico-irrigation is the controller firmware. On a Pico it owns the
// board for its whole life; on a linux SBC it runs until interrupted.
package main

import (
	"smartfarm-go/config"
	"smartfarm-go/services/control"
	"smartfarm-go/services/hal"
	"smartfarm-go/x/logx"
)

func main() {
	cfg := config.Default()
	log := logx.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		halt(log, "config", err)
	}

	hw, err := hal.Open(cfg)
	if err != nil {
		halt(log, "hal open", err)
	}
	defer hw.Close()
	if hw.Debug != nil {
		log = logx.NewWriter(hw.Debug, cfg.LogLevel)
	}
	log.Infow("boot", "board", cfg.Board.Name, "sensor", cfg.Sensor.Type.String(), "threshold", cfg.Moisture.Threshold)

	c, err := control.New(cfg, hw, log)
	if err != nil {
		halt(log, "controller", err)
	}

	ctx, stop := runContext()
	defer stop()
	if err := c.Run(ctx); err != nil {
		halt(log, "control loop", err)
	}
}
