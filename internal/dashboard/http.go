// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assetdeck/assetdeck/internal/session"
)

// # HTTP Layer

// Handler serves the dashboard screen.
type Handler struct {
	service  *Service
	renderer session.Renderer
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, renderer session.Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// RegisterRoutes mounts the dashboard as the landing screen.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.Show)
}

// Show renders the summary screen.
func (handler *Handler) Show(writer http.ResponseWriter, request *http.Request) {
	state := session.FromContext(request.Context())

	summary := handler.service.Summarize(request.Context(), state.AccessToken)
	handler.renderer.Render(writer, request, http.StatusOK, "dashboard", map[string]any{
		"Summary": summary,
		"IsAdmin": state.IsAdmin(),
	})
}
