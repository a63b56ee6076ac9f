// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package web composes the HTTP surface: the chi router, the HTML rendering
layer over the embedded template set, the health probes, and the server
lifecycle.
*/
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/assetdeck/assetdeck/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the screen templates, each paired with the shared layout.
var pages = []string{
	"login",
	"register",
	"forgot-password",
	"reset-password",
	"dashboard",
	"asset-list",
	"asset-detail",
	"asset-form",
	"asset-confirm-delete",
	"asset-not-found",
	"profile",
	"settings",
	"404",
	"500",
}

// # Renderer

// Renderer draws named pages into the shared layout. It satisfies
// [session.Renderer] and is shared by every screen handler.
type Renderer struct {
	templates map[string]*template.Template
	store     session.Store
	logger    *slog.Logger
}

// NewRenderer parses the embedded template set once at startup.
func NewRenderer(store session.Store, logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"fmtDate": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("Jan 02, 2006")
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("template_parse_failed %q: %w", page, err)
		}
		templates[page] = parsed
	}

	return &Renderer{
		templates: templates,
		store:     store,
		logger:    logger,
	}, nil
}

/*
Render draws a page into the layout and writes it.

Description: The session state and any pending flash notifications are folded
into the template data, so every screen shows toasts queued by the operation
that preceded it. The page is buffered first; a template failure falls back
to the 500 screen instead of emitting a torn response.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
  - status: int
  - page: string (template name without extension)
  - data: map[string]any (page-specific view data, may be nil)
*/
func (renderer *Renderer) Render(writer http.ResponseWriter, request *http.Request, status int, page string, data map[string]any) {
	parsed, ok := renderer.templates[page]
	if !ok {
		renderer.logger.ErrorContext(request.Context(), "template_missing", slog.String("page", page))
		renderer.ServerError(writer, request)
		return
	}

	if data == nil {
		data = map[string]any{}
	}

	state := session.FromContext(request.Context())
	data["Session"] = state
	data["Flashes"] = renderer.popFlashes(request, state)

	var buffer bytes.Buffer
	if err := parsed.ExecuteTemplate(&buffer, "layout.html", data); err != nil {
		renderer.logger.ErrorContext(request.Context(), "template_render_failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		renderer.ServerError(writer, request)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// NotFound renders the 404 screen for unmatched routes.
func (renderer *Renderer) NotFound(writer http.ResponseWriter, request *http.Request) {
	renderer.Render(writer, request, http.StatusNotFound, "404", map[string]any{})
}

// ServerError renders the 500 screen, falling back to an inline page when
// the template set itself is the problem, so a broken layout cannot recurse.
func (renderer *Renderer) ServerError(writer http.ResponseWriter, request *http.Request) {
	if parsed, ok := renderer.templates["500"]; ok {
		var buffer bytes.Buffer
		data := map[string]any{"Session": session.FromContext(request.Context())}
		if err := parsed.ExecuteTemplate(&buffer, "layout.html", data); err == nil {
			writer.Header().Set("Content-Type", "text/html; charset=utf-8")
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = buffer.WriteTo(writer)
			return
		}
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusInternalServerError)
	_, _ = writer.Write([]byte("<!DOCTYPE html><html><head><title>Assetdeck</title></head>" +
		"<body><h1>Something went wrong</h1><p>Please try again.</p></body></html>"))
}

// popFlashes drains the session's pending notifications for display.
func (renderer *Renderer) popFlashes(request *http.Request, state *session.State) []session.Flash {
	if state == nil {
		return nil
	}
	flashes, err := renderer.store.PopFlashes(request.Context(), state.ID)
	if err != nil {
		renderer.logger.WarnContext(request.Context(), "flash_pop_failed", slog.Any("error", err))
		return nil
	}
	return flashes
}
