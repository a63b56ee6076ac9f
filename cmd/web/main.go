// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

// Command web is the entry point for the Assetdeck web front end.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load .env (development convenience) and configuration.
//  3. Connect to Redis (session store).
//  4. Construct the backend API client.
//  5. Wire domain services and screen handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/assetdeck/assetdeck/internal/account"
	"github.com/assetdeck/assetdeck/internal/assets"
	"github.com/assetdeck/assetdeck/internal/backend"
	"github.com/assetdeck/assetdeck/internal/dashboard"
	"github.com/assetdeck/assetdeck/internal/platform/config"
	"github.com/assetdeck/assetdeck/internal/platform/constants"
	redisstore "github.com/assetdeck/assetdeck/internal/platform/redis"
	"github.com/assetdeck/assetdeck/internal/session"
	"github.com/assetdeck/assetdeck/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Assetdeck] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A missing .env is fine outside development; the environment rules.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Backend API Client ─────────────────────────────────────────────
	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	sessionStore := session.NewRedisStore(rdb, cfg.SessionTTL)
	sessionAPI := session.NewBackendAPI(backendClient)
	sessionManager := session.NewManager(sessionStore, sessionAPI, log)
	sessionMiddleware := session.NewMiddleware(sessionManager, log, cfg.IsProduction())

	renderer, err := web.NewRenderer(sessionStore, log)
	must(log, err, "parse templates")

	assetStore := assets.NewBackendStore(backendClient)
	assetService := assets.NewService(assetStore, log)

	deps := web.Deps{
		Logger:            log,
		Renderer:          renderer,
		SessionMiddleware: sessionMiddleware,
		Auth:              session.NewHandler(sessionManager, sessionMiddleware, renderer, log),
		Assets:            assets.NewHandler(assetService, sessionManager, renderer, log),
		Dashboard:         dashboard.NewHandler(dashboard.NewService(assetStore, log), renderer),
		Account:           account.NewHandler(sessionManager, renderer, log),
		Health:            web.NewHealthHandler(rdb, backendClient, log),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	router := web.NewRouter(runCtx, deps)
	server := web.NewServer(cfg, router, log)

	if err := server.Start(runCtx); err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
