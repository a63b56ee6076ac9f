// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"context"
	"net/http"

	"github.com/assetdeck/assetdeck/internal/backend"
)

// # Remote API Contract

// API defines the authentication surface of the remote asset-management API.
//
// The [Manager] depends on this interface rather than the concrete client so
// tests can substitute a scripted fake.
type API interface {

	/*
		Register enrolls a new account.

		Parameters:
		  - context: context.Context
		  - input: RegisterInput

		Returns:
		  - string: Backend confirmation message (may be empty)
		  - error: Normalized failure
	*/
	Register(context context.Context, input RegisterInput) (string, error)

	/*
		Login exchanges credentials for a token pair.

		Parameters:
		  - context: context.Context
		  - usernameOrEmail: string
		  - password: string

		Returns:
		  - TokenPair: Backend-issued access and refresh tokens
		  - error: Normalized failure
	*/
	Login(context context.Context, usernameOrEmail, password string) (TokenPair, error)

	/*
		Logout submits the refresh token for server-side invalidation.

		Parameters:
		  - context: context.Context
		  - accessToken: string
		  - refreshToken: string

		Returns:
		  - error: Normalized failure
	*/
	Logout(context context.Context, accessToken, refreshToken string) error

	/*
		ForgotPassword requests a password-reset email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Normalized failure
	*/
	ForgotPassword(context context.Context, email string) error

	/*
		ResetPassword completes the forgot-password flow.

		Parameters:
		  - context: context.Context
		  - input: ResetInput

		Returns:
		  - error: Normalized failure
	*/
	ResetPassword(context context.Context, input ResetInput) error

	/*
		FetchProfile loads the authenticated identity.

		Parameters:
		  - context: context.Context
		  - accessToken: string

		Returns:
		  - *UserProfile: Hydrated profile
		  - error: Normalized failure (UNAUTHENTICATED for stale tokens)
	*/
	FetchProfile(context context.Context, accessToken string) (*UserProfile, error)

	/*
		UpdateProfile submits mutable identity fields.

		Parameters:
		  - context: context.Context
		  - accessToken: string
		  - firstName: string
		  - lastName: string

		Returns:
		  - *UserProfile: The server's echoed representation (authoritative)
		  - error: Normalized failure
	*/
	UpdateProfile(context context.Context, accessToken, firstName, lastName string) (*UserProfile, error)

	/*
		ChangePassword rotates the account password.

		Parameters:
		  - context: context.Context
		  - accessToken: string
		  - oldPassword: string
		  - newPassword: string

		Returns:
		  - string: Backend confirmation message (may be empty)
		  - error: Normalized failure
	*/
	ChangePassword(context context.Context, accessToken, oldPassword, newPassword string) (string, error)
}

// TokenPair carries the backend-issued credentials.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// # Backend Binding

// BackendAPI implements [API] over the shared HTTP client adapter.
type BackendAPI struct {
	client *backend.Client
}

// NewBackendAPI binds the authentication surface to the transport client.
func NewBackendAPI(client *backend.Client) *BackendAPI {
	return &BackendAPI{client: client}
}

// Wire payloads. Key names follow the backend's contract, not Go conventions.

type registerPayload struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginPayload struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type logoutPayload struct {
	Refresh string `json:"refresh"`
}

type forgotPayload struct {
	Email string `json:"email"`
}

type resetPayload struct {
	UID         string `json:"uid"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
	ReNew       string `json:"re_new_password"`
}

type profilePayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type changePasswordPayload struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register enrolls a new account via POST /auth/register/.
func (api *BackendAPI) Register(context context.Context, input RegisterInput) (string, error) {
	payload := registerPayload{
		Username:  input.Username,
		Password:  input.Password,
		Password2: input.PasswordConfirm,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	var response messageResponse
	if err := api.client.Do(context, http.MethodPost, "/auth/register/", "", payload, &response); err != nil {
		return "", err
	}
	return response.Message, nil
}

// Login exchanges credentials for tokens via POST /auth/login/.
func (api *BackendAPI) Login(context context.Context, usernameOrEmail, password string) (TokenPair, error) {
	var pair TokenPair
	payload := loginPayload{UsernameOrEmail: usernameOrEmail, Password: password}
	if err := api.client.Do(context, http.MethodPost, "/auth/login/", "", payload, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Logout invalidates the refresh token via POST /auth/logout/.
func (api *BackendAPI) Logout(context context.Context, accessToken, refreshToken string) error {
	return api.client.Do(context, http.MethodPost, "/auth/logout/", accessToken, logoutPayload{Refresh: refreshToken}, nil)
}

// ForgotPassword requests a reset email via POST /password_reset/.
func (api *BackendAPI) ForgotPassword(context context.Context, email string) error {
	return api.client.Do(context, http.MethodPost, "/password_reset/", "", forgotPayload{Email: email}, nil)
}

// ResetPassword completes the flow via POST /reset-password-confirm/.
func (api *BackendAPI) ResetPassword(context context.Context, input ResetInput) error {
	payload := resetPayload{
		UID:         input.UID,
		Token:       input.Token,
		NewPassword: input.NewPassword,
		ReNew:       input.ConfirmNewPassword,
	}
	return api.client.Do(context, http.MethodPost, "/reset-password-confirm/", "", payload, nil)
}

// FetchProfile loads the identity via GET /profile/.
func (api *BackendAPI) FetchProfile(context context.Context, accessToken string) (*UserProfile, error) {
	profile := &UserProfile{}
	if err := api.client.Do(context, http.MethodGet, "/profile/", accessToken, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile submits identity changes via PUT /profile/.
func (api *BackendAPI) UpdateProfile(context context.Context, accessToken, firstName, lastName string) (*UserProfile, error) {
	profile := &UserProfile{}
	payload := profilePayload{FirstName: firstName, LastName: lastName}
	if err := api.client.Do(context, http.MethodPut, "/profile/", accessToken, payload, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword rotates credentials via POST /auth/change_password/.
func (api *BackendAPI) ChangePassword(context context.Context, accessToken, oldPassword, newPassword string) (string, error) {
	payload := changePasswordPayload{OldPassword: oldPassword, NewPassword: newPassword}

	var response messageResponse
	if err := api.client.Do(context, http.MethodPost, "/auth/change_password/", accessToken, payload, &response); err != nil {
		return "", err
	}
	return response.Message, nil
}
