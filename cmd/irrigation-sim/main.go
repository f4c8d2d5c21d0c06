//go:build !(rp2040 || rp2350)

// Command irrigation-sim runs the controller against scripted hardware on a
// virtual clock and prints or saves a YAML transcript.
//
//	irrigation-sim --config sim.yaml --transcript out.yaml
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"smartfarm-go/services/sim"
	"smartfarm-go/x/logx"
)

func main() {
	path := pflag.StringP("config", "c", "", "scenario file (yaml)")
	out := pflag.StringP("transcript", "o", "", "write the transcript here instead of stdout")
	level := pflag.StringP("log-level", "l", logx.InfoLevel, "debug|info|warn|error")
	show := pflag.Bool("show", false, "dump every rendered frame")
	pflag.Parse()

	log := logx.New(*level)
	defer func() { _ = log.Sync() }()

	s := sim.Defaults()
	if *path != "" {
		var err error
		if s, err = sim.Load(*path); err != nil {
			log.Fatalw("error reading scenario", "path", *path, "err", err)
		}
	}
	if *out != "" {
		s.Transcript = *out
	}
	if *show {
		s.Show = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tr, runErr := sim.Run(ctx, s, log, os.Stdout)
	if tr == nil {
		log.Fatalw("scenario rejected", "err", runErr)
	}

	var err error
	if s.Transcript != "" {
		err = tr.WriteFile(s.Transcript)
	} else {
		err = tr.Encode(os.Stdout)
	}
	if err != nil {
		log.Fatalw("error writing transcript", "err", err)
	}
	if runErr != nil {
		log.Warnw("controller halted", "err", runErr)
		os.Exit(2)
	}
}
