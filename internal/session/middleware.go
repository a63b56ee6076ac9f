// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"log/slog"
	"net/http"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	"github.com/assetdeck/assetdeck/internal/platform/constants"
	"github.com/assetdeck/assetdeck/pkg/uuid"
)

// # Session Middleware

// Middleware loads or establishes the browser session on every request.
type Middleware struct {
	manager       *Manager
	logger        *slog.Logger
	secureCookies bool
}

// NewMiddleware constructs the session middleware. secureCookies should be
// true everywhere except local development over plain HTTP.
func NewMiddleware(manager *Manager, logger *slog.Logger, secureCookies bool) *Middleware {
	return &Middleware{
		manager:       manager,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

/*
WithSession resolves the session cookie into a [State] and stores it in the
request context.

Description: A missing, malformed, or unknown cookie yields a fresh anonymous
session. A loaded session runs through [Manager.Attach] so stale tokens are
cleared before any handler sees them. When the session store itself is
unreachable the request is answered with 500 rather than silently proceeding
without a session.
*/
func (middleware *Middleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		state, fresh, err := middleware.resolve(request)
		if err != nil {
			middleware.logger.ErrorContext(request.Context(), "session_resolve_failed", slog.Any("error", err))
			http.Error(writer, "service unavailable", http.StatusInternalServerError)
			return
		}

		if fresh {
			middleware.SetCookie(writer, state.ID)
		}

		next.ServeHTTP(writer, request.WithContext(NewContext(request.Context(), state)))
	})
}

/*
RequireUser gates screens that only make sense with a signed-in account.

Description: Anonymous visitors are redirected to the login screen; nothing
else in the presentation layer enforces authentication.
*/
func (middleware *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		state := FromContext(request.Context())
		if state == nil || !state.Authenticated() {
			http.Redirect(writer, request, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

/*
RedirectAuthenticated sends an already signed-in visitor away from the
login and register screens to the dashboard.
*/
func (middleware *Middleware) RedirectAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		state := FromContext(request.Context())
		if state != nil && state.Authenticated() {
			http.Redirect(writer, request, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// SetCookie writes the opaque session cookie for the given record.
func (middleware *Middleware) SetCookie(writer http.ResponseWriter, id string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     constants.SessionCookiePath,
		HttpOnly: true,
		Secure:   middleware.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// resolve loads the session named by the cookie, or starts a new one. The
// second return reports whether a new cookie must be issued.
func (middleware *Middleware) resolve(request *http.Request) (*State, bool, error) {
	context := request.Context()

	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && uuid.IsValid(cookie.Value) {
		state, err := middleware.manager.Store().Find(context, cookie.Value)
		switch {
		case err == nil:
			if err := middleware.manager.Attach(context, state); err != nil {
				return nil, false, err
			}
			return state, false, nil
		case apperr.IsCode(err, "NOT_FOUND"):
			// Expired or unknown cookie: fall through to a fresh session.
			middleware.logger.InfoContext(context, "session_cookie_unresolved", slog.String("session_id", cookie.Value))
		default:
			return nil, false, err
		}
	}

	state, err := middleware.manager.StartSession(context)
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}
