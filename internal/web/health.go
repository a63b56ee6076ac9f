// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/assetdeck/assetdeck/internal/backend"
	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	"github.com/assetdeck/assetdeck/internal/platform/constants"
	"github.com/assetdeck/assetdeck/internal/platform/respond"
)

// # Health Probes

// HealthHandler serves the JSON liveness and readiness probes. These are the
// only non-HTML endpoints; they carry no session.
type HealthHandler struct {
	redis   *goredis.Client
	backend *backend.Client
	logger  *slog.Logger
}

// NewHealthHandler constructs a [HealthHandler].
func NewHealthHandler(redis *goredis.Client, backendClient *backend.Client, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		redis:   redis,
		backend: backendClient,
		logger:  logger,
	}
}

// RegisterRoutes mounts the probes outside the session middleware.
func (handler *HealthHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", handler.Liveness)
	router.Get("/ready", handler.Readiness)
}

// Liveness reports that the process is serving requests.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// Readiness reports whether the session store and the remote API are both
// reachable. Either failing answers 503 so the instance is rotated out.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	checks := map[string]string{"redis": "ok", "backend": "ok"}
	healthy := true

	if err := handler.redis.Ping(context).Err(); err != nil {
		handler.logger.WarnContext(context, "readiness_redis_failed", slog.Any("error", err))
		checks["redis"] = "unreachable"
		healthy = false
	}

	if err := handler.backend.Ping(context); err != nil {
		handler.logger.WarnContext(context, "readiness_backend_failed", slog.Any("error", err))
		checks["backend"] = "unreachable"
		healthy = false
	}

	if !healthy {
		failure := apperr.Remote(http.StatusServiceUnavailable, "One or more dependencies are unreachable")
		for component, result := range checks {
			if result != "ok" {
				failure.Details = append(failure.Details, apperr.FieldError{Field: component, Message: result})
			}
		}
		respond.Error(writer, request, failure)
		return
	}

	respond.OK(writer, map[string]any{
		constants.FieldStatus: "ok",
		constants.FieldChecks: checks,
	})
}
