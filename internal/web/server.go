// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/assetdeck/assetdeck/internal/account"
	"github.com/assetdeck/assetdeck/internal/assets"
	"github.com/assetdeck/assetdeck/internal/dashboard"
	"github.com/assetdeck/assetdeck/internal/platform/config"
	"github.com/assetdeck/assetdeck/internal/platform/constants"
	"github.com/assetdeck/assetdeck/internal/platform/middleware"
	"github.com/assetdeck/assetdeck/internal/session"
)

// # Router Composition

// Deps collects the wired handlers the router mounts.
type Deps struct {
	Logger   *slog.Logger
	Renderer *Renderer

	SessionMiddleware *session.Middleware
	Auth              *session.Handler
	Assets            *assets.Handler
	Dashboard         *dashboard.Handler
	Account           *account.Handler
	Health            *HealthHandler
}

/*
NewRouter assembles the chi router.

Description: The ambient middleware chain (request id, structured logging,
panic recovery, secure headers, per-IP rate limit, global timeout) wraps
everything. The health probes sit outside the session middleware; every HTML
screen sits inside it, and the application screens additionally require an
authenticated session.

Parameters:
  - context: context.Context (bounds the rate limiter's cleanup goroutine)
  - deps: Deps

Returns:
  - chi.Router: The assembled router
*/
func NewRouter(context context.Context, deps Deps) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.SecureHeaders())
	router.Use(middleware.RateLimit(context))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))

	deps.Health.RegisterRoutes(router)

	router.Group(func(router chi.Router) {
		router.Use(deps.SessionMiddleware.WithSession)

		deps.Auth.RegisterRoutes(router)

		router.Group(func(router chi.Router) {
			router.Use(deps.SessionMiddleware.RequireUser)

			deps.Dashboard.RegisterRoutes(router)
			deps.Assets.RegisterRoutes(router)
			deps.Account.RegisterRoutes(router)
		})
	})

	router.NotFound(deps.Renderer.NotFound)

	return router
}

// # Server Lifecycle

// Server wraps http.Server with the standard timeouts and graceful shutdown.
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// NewServer constructs a [Server] listening on the configured port.
func NewServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           handler,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
		logger: logger,
	}
}

/*
Start serves until the context is canceled, then drains in-flight requests.

Description: Blocks for the lifetime of the server. Cancellation triggers a
graceful shutdown bounded by [constants.ShutdownTimeout]; requests still in
flight after that are abandoned.

Parameters:
  - parent: context.Context

Returns:
  - error: Listener failures; a clean shutdown returns nil
*/
func (server *Server) Start(parent context.Context) error {
	errs := make(chan error, 1)

	go func() {
		server.logger.Info("server_listening", slog.String("addr", server.http.Addr))
		if err := server.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server_failed: %w", err)
	case <-parent.Done():
	}

	server.logger.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := server.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	server.logger.Info("server_stopped")
	return nil
}
