// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package account serves the profile and settings screens.

Both screens delegate every mutation to the session manager so this package
never touches token storage or the remote API directly.
*/
package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/assetdeck/assetdeck/internal/platform/request"
	"github.com/assetdeck/assetdeck/internal/platform/validate"
	"github.com/assetdeck/assetdeck/internal/session"
)

// Handler serves the profile and settings screens.
type Handler struct {
	manager  *session.Manager
	renderer session.Renderer
	logger   *slog.Logger
}

// NewHandler constructs a [Handler].
func NewHandler(manager *session.Manager, renderer session.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		manager:  manager,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes mounts the account screens on the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/profile", handler.ShowProfile)
	router.Post("/profile", handler.SubmitProfile)
	router.Get("/settings", handler.ShowSettings)
	router.Post("/settings", handler.SubmitPassword)
}

// # Profile

// ShowProfile renders the profile screen with the current identity.
func (handler *Handler) ShowProfile(writer http.ResponseWriter, request *http.Request) {
	state := session.FromContext(request.Context())
	handler.renderer.Render(writer, request, http.StatusOK, "profile", map[string]any{
		"Profile": state.Profile,
	})
}

// SubmitProfile handles the identity-update form.
func (handler *Handler) SubmitProfile(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	state := session.FromContext(context)

	if err := requestutil.ParseForm(request); err != nil {
		handler.renderer.Render(writer, request, http.StatusBadRequest, "profile", map[string]any{
			"Profile": state.Profile,
			"Errors":  map[string]string{"form": validate.ErrInvalidForm.Error()},
		})
		return
	}

	firstName := requestutil.Field(request, session.FieldFirstName)
	lastName := requestutil.Field(request, session.FieldLastName)

	validator := &validate.Validator{}
	validator.
		Required(session.FieldFirstName, firstName).
		Required(session.FieldLastName, lastName).
		MaxLen(session.FieldFirstName, firstName, 150).
		MaxLen(session.FieldLastName, lastName, 150)
	if validator.HasErrors() {
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "profile", map[string]any{
			"Profile": state.Profile,
			"Errors":  validator.Fields(),
			"Values":  map[string]string{session.FieldFirstName: firstName, session.FieldLastName: lastName},
		})
		return
	}

	if err := handler.manager.UpdateProfile(context, state, firstName, lastName); err != nil {
		handler.logger.WarnContext(context, "profile_update_failed", slog.Any("error", err))
	}
	http.Redirect(writer, request, "/profile", http.StatusSeeOther)
}

// # Settings

// ShowSettings renders the change-password screen.
func (handler *Handler) ShowSettings(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, "settings", map[string]any{})
}

// SubmitPassword handles the change-password form.
func (handler *Handler) SubmitPassword(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	state := session.FromContext(context)

	if err := requestutil.ParseForm(request); err != nil {
		handler.renderer.Render(writer, request, http.StatusBadRequest, "settings", map[string]any{
			"Errors": map[string]string{"form": validate.ErrInvalidForm.Error()},
		})
		return
	}

	oldPassword := requestutil.Field(request, session.FieldOldPassword)
	newPassword := requestutil.Field(request, session.FieldNewPassword)
	confirm := requestutil.Field(request, session.FieldConfirmPassword)

	validator := &validate.Validator{}
	validator.
		Required(session.FieldOldPassword, oldPassword).
		MinLen(session.FieldNewPassword, newPassword, 8).
		Match(session.FieldConfirmPassword, confirm, newPassword).
		Custom(session.FieldNewPassword, newPassword != "" && newPassword == oldPassword,
			"New password must be different from the current password")
	if validator.HasErrors() {
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "settings", map[string]any{
			"Errors": validator.Fields(),
		})
		return
	}

	if err := handler.manager.UpdatePassword(context, state, oldPassword, newPassword); err != nil {
		handler.logger.WarnContext(context, "password_update_failed", slog.Any("error", err))
	}
	http.Redirect(writer, request, "/settings", http.StatusSeeOther)
}
