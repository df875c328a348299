// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command createuser provisions one account in the configured credential store.
//
// The password is taken from --password or, when absent, from the first line
// of standard input. An existing username is reported and left untouched.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/taibuivan/usergate/internal/platform/constants"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := newApp(os.Stdin, os.Stdout, openConfiguredStore(log))
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error("createuser_failed", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}
