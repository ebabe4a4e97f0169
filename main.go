// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smota/DistanceTrack/internal/command"
	"github.com/smota/DistanceTrack/internal/config"
	mylog "github.com/smota/DistanceTrack/internal/log"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	// A signal interrupts the run loop between combinations; caches still get
	// a best-effort flush on the way out.
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := command.InitApp()
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var cfgErr *config.ConfigError
		var credErr *config.CredentialError
		if errors.As(err, &cfgErr) || errors.As(err, &credErr) {
			return 1
		}
		return 2
	}

	return 0
}
