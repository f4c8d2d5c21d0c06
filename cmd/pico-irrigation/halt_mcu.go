//go:build !linux || baremetal

package main

import (
	"context"
	"time"

	"smartfarm-go/x/logx"
)

func runContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

// halt reports a fatal fault on the debug channel and freezes the device.
// Only a reset recovers it; the relay keeps its last level.
func halt(log *logx.Logger, stage string, err error) {
	log.Errorw("halted", "stage", stage, "err", err)
	for {
		time.Sleep(time.Hour)
	}
}
