// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the usergate HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and an optional .env).
//  3. Open the credential store selected by STORE_DRIVER.
//  4. Build the token service and password hasher.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/usergate/internal/api"
	"github.com/taibuivan/usergate/internal/platform/config"
	"github.com/taibuivan/usergate/internal/platform/constants"
	"github.com/taibuivan/usergate/internal/platform/sec"
	"github.com/taibuivan/usergate/internal/users/account"
	"github.com/taibuivan/usergate/internal/users/auth"
	"github.com/taibuivan/usergate/internal/users/userstore"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup, bounded so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Credential Store ───────────────────────────────────────────────
	store, err := userstore.Open(startupCtx, cfg, log)
	must(log, err, "open credential store")
	defer func() {
		log.Info("closing_credential_store", slog.String("driver", store.Driver))
		if cerr := store.Close(context.Background()); cerr != nil {
			log.Error("credential_store_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Security ───────────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.TokenSecret, cfg.TokenAlgorithm)
	must(log, err, "initialize token service")

	passwordHasher, err := sec.NewPasswordHasher(cfg.BcryptCost)
	must(log, err, "initialize password hasher")

	// ── 5. Health handlers (wired with the store checker) ─────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  store.Driver,
		CheckStore: store.Users.Ping,
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(store.Users, passwordHasher, tokenService, cfg.AccessTokenTTL)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(store.Users, log)
	accountHandler := account.NewHandler(accountService, auth.Gate(authService))

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger returns a JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
