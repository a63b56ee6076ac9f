// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/assetdeck/assetdeck/internal/platform/request"
	"github.com/assetdeck/assetdeck/internal/platform/validate"
)

// # HTTP Layer

// Renderer draws a named page with the shared layout, pending notifications
// included. Implemented by the web package; declared here so the session
// screens do not depend on the template engine.
type Renderer interface {
	Render(writer http.ResponseWriter, request *http.Request, status int, page string, data map[string]any)
}

// Handler serves the authentication screens.
type Handler struct {
	manager    *Manager
	middleware *Middleware
	renderer   Renderer
	logger     *slog.Logger
}

// NewHandler constructs a [Handler] with its dependencies.
func NewHandler(manager *Manager, middleware *Middleware, renderer Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		manager:    manager,
		middleware: middleware,
		renderer:   renderer,
		logger:     logger,
	}
}

// RegisterRoutes mounts the authentication screens on the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(router chi.Router) {
		router.Use(handler.middleware.RedirectAuthenticated)

		router.Get("/login", handler.ShowLogin)
		router.Post("/login", handler.SubmitLogin)
		router.Get("/register", handler.ShowRegister)
		router.Post("/register", handler.SubmitRegister)
		router.Get("/forgot-password", handler.ShowForgotPassword)
		router.Post("/forgot-password", handler.SubmitForgotPassword)
		router.Get("/reset-password", handler.ShowResetPassword)
		router.Post("/reset-password", handler.SubmitResetPassword)
	})

	router.Post("/logout", handler.SubmitLogout)
}

// # Login

// ShowLogin renders the login screen.
func (handler *Handler) ShowLogin(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, "login", map[string]any{})
}

/*
SubmitLogin handles the login form.

Description: A validation or authentication failure re-renders the same
screen with the entered identifier preserved; there is no redirect until the
session is actually established.
*/
func (handler *Handler) SubmitLogin(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(request); err != nil {
		handler.badForm(writer, request, "login")
		return
	}

	identifier := requestutil.Field(request, FieldUsernameOrEmail)
	password := requestutil.Field(request, FieldPassword)

	form := map[string]any{
		"Values": map[string]string{FieldUsernameOrEmail: identifier},
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsernameOrEmail, identifier).
		Required(FieldPassword, password)
	if validator.HasErrors() {
		form["Errors"] = validator.Fields()
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "login", form)
		return
	}

	state := FromContext(request.Context())
	if err := handler.manager.Login(request.Context(), state, identifier, password); err != nil {
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "login", form)
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

// # Registration

// ShowRegister renders the account-creation screen.
func (handler *Handler) ShowRegister(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, "register", map[string]any{})
}

// SubmitRegister handles the account-creation form.
func (handler *Handler) SubmitRegister(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(request); err != nil {
		handler.badForm(writer, request, "register")
		return
	}

	input := RegisterInput{
		Username:        requestutil.Field(request, FieldUsername),
		Password:        requestutil.Field(request, FieldPassword),
		PasswordConfirm: requestutil.Field(request, FieldPasswordConfirm),
		Email:           requestutil.Field(request, FieldEmail),
		FirstName:       requestutil.Field(request, FieldFirstName),
		LastName:        requestutil.Field(request, FieldLastName),
	}

	form := map[string]any{
		"Values": map[string]string{
			FieldUsername:  input.Username,
			FieldEmail:     input.Email,
			FieldFirstName: input.FirstName,
			FieldLastName:  input.LastName,
		},
	}

	validator := &validate.Validator{}
	validator.
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, 8).
		Match(FieldPasswordConfirm, input.PasswordConfirm, input.Password)
	if validator.HasErrors() {
		form["Errors"] = validator.Fields()
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "register", form)
		return
	}

	state := FromContext(request.Context())
	if err := handler.manager.Register(request.Context(), state, input); err != nil {
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "register", form)
		return
	}

	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}

// # Password Recovery

// ShowForgotPassword renders the reset-request screen.
func (handler *Handler) ShowForgotPassword(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, "forgot-password", map[string]any{})
}

// SubmitForgotPassword handles the reset-request form.
func (handler *Handler) SubmitForgotPassword(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(request); err != nil {
		handler.badForm(writer, request, "forgot-password")
		return
	}

	email := requestutil.Field(request, FieldEmail)

	form := map[string]any{
		"Values": map[string]string{FieldEmail: email},
	}

	validator := &validate.Validator{}
	validator.Email(FieldEmail, email)
	if validator.HasErrors() {
		form["Errors"] = validator.Fields()
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "forgot-password", form)
		return
	}

	state := FromContext(request.Context())
	if err := handler.manager.ForgotPassword(request.Context(), state, email); err != nil {
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "forgot-password", form)
		return
	}

	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}

// ShowResetPassword renders the reset-confirmation screen. The uid and token
// arrive as query parameters via the emailed link and are carried through the
// form as hidden fields.
func (handler *Handler) ShowResetPassword(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Render(writer, request, http.StatusOK, "reset-password", map[string]any{
		"Values": map[string]string{
			"uid":   requestutil.Query(request, "uid"),
			"token": requestutil.Query(request, "token"),
		},
	})
}

// SubmitResetPassword handles the reset-confirmation form.
func (handler *Handler) SubmitResetPassword(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(request); err != nil {
		handler.badForm(writer, request, "reset-password")
		return
	}

	input := ResetInput{
		UID:                requestutil.Field(request, "uid"),
		Token:              requestutil.Field(request, "token"),
		NewPassword:        requestutil.Field(request, FieldNewPassword),
		ConfirmNewPassword: requestutil.Field(request, FieldConfirmPassword),
	}

	form := map[string]any{
		"Values": map[string]string{"uid": input.UID, "token": input.Token},
	}

	validator := &validate.Validator{}
	validator.
		Required("uid", input.UID).
		Required("token", input.Token).
		MinLen(FieldNewPassword, input.NewPassword, 8).
		Match(FieldConfirmPassword, input.ConfirmNewPassword, input.NewPassword)
	if validator.HasErrors() {
		form["Errors"] = validator.Fields()
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "reset-password", form)
		return
	}

	state := FromContext(request.Context())
	if err := handler.manager.ResetPassword(request.Context(), state, input); err != nil {
		handler.renderer.Render(writer, request, http.StatusUnprocessableEntity, "reset-password", form)
		return
	}

	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}

// # Logout

/*
SubmitLogout handles the logout action.

Description: The old record is cleared unconditionally, a fresh anonymous
session is issued so the farewell notification has somewhere to live, and the
visitor lands on the login screen.
*/
func (handler *Handler) SubmitLogout(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	state := FromContext(context)

	if state != nil {
		if err := handler.manager.Logout(context, state); err != nil {
			handler.logger.ErrorContext(context, "logout_failed", slog.Any("error", err))
		}
	}

	fresh, err := handler.manager.StartSession(context)
	if err != nil {
		handler.logger.ErrorContext(context, "logout_session_restart_failed", slog.Any("error", err))
		http.Redirect(writer, request, "/login", http.StatusSeeOther)
		return
	}

	handler.middleware.SetCookie(writer, fresh.ID)
	handler.manager.Flash(context, fresh.ID, FlashSuccess, "You have been logged out")
	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}

// badForm reports an unparseable submission on the originating screen.
func (handler *Handler) badForm(writer http.ResponseWriter, request *http.Request, page string) {
	handler.renderer.Render(writer, request, http.StatusBadRequest, page, map[string]any{
		"Errors": map[string]string{"form": validate.ErrInvalidForm.Error()},
	})
}
