//go:build linux && !baremetal

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"smartfarm-go/x/logx"
)

func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// halt logs the fault and exits; a clean interrupt exits zero.
func halt(log *logx.Logger, stage string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Infow("stopped")
		_ = log.Sync()
		return
	}
	log.Errorw("halted", "stage", stage, "err", err)
	_ = log.Sync()
	os.Exit(1)
}
