// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	"github.com/assetdeck/assetdeck/pkg/uuid"
)

// # Service Layer

// Manager implements every session-mutating use case.
//
// # Failure Semantics
//
// Every operation is a single network attempt with no retry. Failures are
// queued as flash notifications and returned to the caller; they are never
// allowed to crash a screen. The busy flag is reset in both success and
// failure paths via a deferred scope, never by ad hoc duplication.
type Manager struct {
	store  Store
	api    API
	logger *slog.Logger
}

// NewManager constructs a [Manager] with its dependencies.
func NewManager(store Store, api API, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		api:    api,
		logger: logger,
	}
}

// Store exposes the underlying store for flash delivery at render time.
func (manager *Manager) Store() Store { return manager.store }

// # Session Lifecycle

/*
StartSession creates a fresh anonymous session record.

Description: Called by the middleware when a request carries no (valid)
session cookie. The returned state holds no tokens and no profile.

Parameters:
  - context: context.Context

Returns:
  - *State: Persisted anonymous session
  - error: Storage failures
*/
func (manager *Manager) StartSession(context context.Context) (*State, error) {
	state := &State{ID: uuid.New()}
	if err := manager.store.Create(context, state); err != nil {
		return nil, fmt.Errorf("session_start_failed: %w", err)
	}
	return state, nil
}

/*
Attach validates a loaded session at the start of a request.

Description: The startup behavior of the session layer. If a persisted access
token exists, the token's expiry claim is decoded locally first; an expired or
unreadable-but-expired token, or a profile fetch rejected as UNAUTHENTICATED,
clears the stale credentials instead of leaving a broken authenticated-looking
state. A transport failure keeps the tokens (the next request retries) but
yields no profile for this one.

Parameters:
  - context: context.Context
  - state: *State (mutated in place)

Returns:
  - error: Storage failures only; remote failures are absorbed
*/
func (manager *Manager) Attach(context context.Context, state *State) error {
	if state.AccessToken == "" {
		return nil
	}

	if tokenExpired(state.AccessToken) {
		manager.logger.InfoContext(context, "session_token_expired", slog.String("session_id", state.ID))
		return manager.clear(context, state)
	}

	if state.Profile != nil {
		return nil
	}

	profile, err := manager.api.FetchProfile(context, state.AccessToken)
	if err != nil {
		if apperr.IsCode(err, "UNAUTHENTICATED") {
			manager.logger.InfoContext(context, "session_token_rejected", slog.String("session_id", state.ID))
			return manager.clear(context, state)
		}
		// Transport or backend trouble: stay anonymous for this request.
		manager.logger.WarnContext(context, "session_profile_fetch_failed", slog.Any("error", err))
		return nil
	}

	state.Profile = profile
	if err := manager.store.Save(context, state); err != nil {
		return fmt.Errorf("session_attach_save_failed: %w", err)
	}
	return nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username        string
	Password        string
	PasswordConfirm string
	Email           string
	FirstName       string
	LastName        string
}

/*
Register enrolls a new account.

Description: Submits the enrollment to the remote API. Session state is never
mutated; on success the caller redirects to the login screen.

Parameters:
  - context: context.Context
  - state: *State (busy scoping only)
  - input: RegisterInput (already validated by the form layer)

Returns:
  - error: Normalized remote failure, already queued as a notification
*/
func (manager *Manager) Register(context context.Context, state *State, input RegisterInput) error {
	finish := manager.begin(context, state)
	defer finish()

	message, err := manager.api.Register(context, input)
	if err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	if message == "" {
		message = "Account created successfully"
	}
	manager.flash(context, state.ID, FlashSuccess, message)
	return nil
}

// # Authentication Flow

/*
Login authenticates the user and populates the session.

Description: Exchanges credentials for a token pair, persists both tokens,
then validates them with a profile fetch. On any failure the session state
remains empty.

Parameters:
  - context: context.Context
  - state: *State (mutated in place on success)
  - usernameOrEmail: string
  - password: string

Returns:
  - error: Normalized remote failure, already queued as a notification
*/
func (manager *Manager) Login(context context.Context, state *State, usernameOrEmail, password string) error {
	finish := manager.begin(context, state)
	defer finish()

	pair, err := manager.api.Login(context, usernameOrEmail, password)
	if err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	// The profile fetch validates the fresh token; only a successful fetch
	// may establish the authenticated state.
	profile, err := manager.api.FetchProfile(context, pair.Access)
	if err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	state.AccessToken = pair.Access
	state.RefreshToken = pair.Refresh
	state.Profile = profile

	if err := manager.store.Save(context, state); err != nil {
		state.clearCredentials()
		return fmt.Errorf("session_login_save_failed: %w", err)
	}

	manager.flash(context, state.ID, FlashSuccess, "Login successful")
	return nil
}

/*
Logout terminates the session.

Description: Sends the refresh token to the backend for invalidation, then
unconditionally clears the persisted record and the in-memory state — even
when the network call fails. A stuck authenticated UI is worse than an
orphaned server-side refresh token.

Parameters:
  - context: context.Context
  - state: *State (cleared in place)

Returns:
  - error: Storage failures only; the backend call is best-effort
*/
func (manager *Manager) Logout(context context.Context, state *State) error {
	if state.RefreshToken != "" {
		if err := manager.api.Logout(context, state.AccessToken, state.RefreshToken); err != nil {
			manager.logger.WarnContext(context, "session_logout_remote_failed", slog.Any("error", err))
		}
	}

	state.clearCredentials()
	if err := manager.store.Delete(context, state.ID); err != nil {
		return fmt.Errorf("session_logout_clear_failed: %w", err)
	}
	return nil
}

// # Password Recovery

/*
ForgotPassword requests a password-reset email.

Description: Fire-and-forget; the outcome is surfaced via notification only
and no session state changes.
*/
func (manager *Manager) ForgotPassword(context context.Context, state *State, email string) error {
	finish := manager.begin(context, state)
	defer finish()

	if err := manager.api.ForgotPassword(context, email); err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	manager.flash(context, state.ID, FlashSuccess, "If an account with that email exists, a reset link has been sent")
	return nil
}

// ResetInput holds the reset-password form data.
type ResetInput struct {
	UID                string
	Token              string
	NewPassword        string
	ConfirmNewPassword string
}

/*
ResetPassword completes the forgot-password flow.

Description: No session mutation; the user is not auto-logged-in. On success
the caller redirects to the login screen.
*/
func (manager *Manager) ResetPassword(context context.Context, state *State, input ResetInput) error {
	finish := manager.begin(context, state)
	defer finish()

	if err := manager.api.ResetPassword(context, input); err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	manager.flash(context, state.ID, FlashSuccess, "Password reset successful. Please log in.")
	return nil
}

// # Profile Management

/*
UpdateProfile submits new identity fields and adopts the server's echo.

Description: The write back to storage is conditional on the version observed
when the operation began, so a response that resolves after a concurrent
logout or login cannot overwrite the newer state.

Parameters:
  - context: context.Context
  - state: *State (Profile replaced on success)
  - firstName: string
  - lastName: string

Returns:
  - error: Normalized remote failure or apperr.Conflict for a lost race
*/
func (manager *Manager) UpdateProfile(context context.Context, state *State, firstName, lastName string) error {
	finish := manager.begin(context, state)
	defer finish()

	startVersion := state.Version

	profile, err := manager.api.UpdateProfile(context, state.AccessToken, firstName, lastName)
	if err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	state.Profile = profile
	if err := manager.store.SaveIf(context, state, startVersion); err != nil {
		// The session moved on while the call was in flight. Discard the
		// echo, but still tell the user the screen did not adopt it.
		manager.logger.InfoContext(context, "session_stale_profile_write_discarded",
			slog.String("session_id", state.ID),
			slog.Int64("version", startVersion),
		)
		manager.flash(context, state.ID, FlashError, apperr.GenericMessage)
		return err
	}

	manager.flash(context, state.ID, FlashSuccess, "Profile updated successfully")
	return nil
}

/*
UpdatePassword rotates the account password.

Description: Never mutates Profile; success or failure is surfaced via
notification only.
*/
func (manager *Manager) UpdatePassword(context context.Context, state *State, oldPassword, newPassword string) error {
	finish := manager.begin(context, state)
	defer finish()

	message, err := manager.api.ChangePassword(context, state.AccessToken, oldPassword, newPassword)
	if err != nil {
		manager.flashFailure(context, state.ID, err)
		return err
	}

	if message == "" {
		message = "Password updated successfully"
	}
	manager.flash(context, state.ID, FlashSuccess, message)
	return nil
}

// # Notifications

// Flash queues a notification for the session.
func (manager *Manager) Flash(context context.Context, sessionID, level, message string) {
	manager.flash(context, sessionID, level, message)
}

func (manager *Manager) flash(context context.Context, sessionID, level, message string) {
	if err := manager.store.AddFlash(context, sessionID, Flash{Level: level, Message: message}); err != nil {
		manager.logger.WarnContext(context, "session_flash_failed", slog.Any("error", err))
	}
}

// flashFailure queues the user-facing message carried by a normalized error.
func (manager *Manager) flashFailure(context context.Context, sessionID string, err error) {
	message := apperr.GenericMessage
	if ae := apperr.As(err); ae != nil && ae.Message != "" {
		message = ae.Message
	}
	manager.flash(context, sessionID, FlashError, message)
}

// # Internal Helpers

// begin marks the pending window of an operation and returns the closer that
// ends it. The closer is safe to call after the session record was deleted.
func (manager *Manager) begin(context context.Context, state *State) func() {
	state.Busy = true
	if err := manager.store.SetBusy(context, state.ID, true); err != nil {
		manager.logger.WarnContext(context, "session_busy_set_failed", slog.Any("error", err))
	}

	return func() {
		state.Busy = false
		if err := manager.store.SetBusy(context, state.ID, false); err != nil {
			manager.logger.WarnContext(context, "session_busy_reset_failed", slog.Any("error", err))
		}
	}
}

// clear drops stale credentials and persists the now-anonymous state.
func (manager *Manager) clear(context context.Context, state *State) error {
	state.clearCredentials()
	if err := manager.store.Save(context, state); err != nil {
		return fmt.Errorf("session_clear_failed: %w", err)
	}
	return nil
}

// tokenExpired decodes the access token's registered claims locally (without
// signature verification — the backend remains the authority) and reports
// whether the exp claim has passed. Opaque or claim-less tokens are treated
// as live; the profile fetch is the authority for those.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now().Add(ExpirySkew))
}
