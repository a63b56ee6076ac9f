// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package session implements the browser session and authentication state layer.

It is the single source of truth for "who is logged in" and the only
component permitted to read or write persisted API tokens. Screen controllers
read the current [State] from the request context and invoke the [Manager]'s
mutating operations; they never touch token storage directly.

# Architecture

  - State: The per-browser session record (tokens, profile, busy flag,
    version counter), persisted in Redis.
  - Manager: Orchestrates every session-mutating operation (register, login,
    logout, password recovery, profile updates) against the remote API.
  - Store: Abstracted persistence with Redis and in-memory implementations.

# Invariant

Profile is present only while AccessToken is present and was validated by a
successful profile fetch. An absent AccessToken implies an absent Profile.
*/
package session

import (
	"context"
	"time"

	"github.com/assetdeck/assetdeck/internal/platform/ctxkey"
)

// # Roles

// Role is the authorization level the backend assigned to the profile.
type Role string

const (
	// RoleAdmin may create, edit, and delete assets.
	RoleAdmin Role = "ADMIN"

	// RoleEmployee is the default read-only role.
	RoleEmployee Role = "EMPLOYEE"
)

// IsAdmin reports whether the role unlocks mutating affordances.
//
// This gate is presentation-only. The backend independently enforces
// authorization on every call; a tampered client gains nothing here.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// # Domain Entities

// Account holds the identity fields nested inside a profile.
type Account struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	DateJoined time.Time `json:"date_joined"`
}

// UserProfile is the authenticated identity as the backend represents it.
//
// It is mutated only by the [Manager] in response to profile-update
// operations; the server's echoed representation is always authoritative.
type UserProfile struct {
	ID             int     `json:"id"`
	Role           Role    `json:"role"`
	DepartmentName string  `json:"departmentName"`
	User           Account `json:"user"`
}

// FullName is the display name rendered in the navigation header.
func (p *UserProfile) FullName() string {
	if p.User.FirstName == "" && p.User.LastName == "" {
		return p.User.Username
	}
	return p.User.FirstName + " " + p.User.LastName
}

// State is the per-browser session record.
//
// # Ownership
//
// State is exclusively owned by the session store. Screens receive a
// snapshot per request via [FromContext] and must treat it as read-only.
type State struct {
	// ID is the opaque UUIDv7 value stored in the browser cookie.
	ID string `json:"id"`

	// AccessToken and RefreshToken are the backend-issued credentials,
	// persisted under the fixed storage field names "access" and "refresh".
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`

	// Profile is the validated identity, or nil while unauthenticated.
	Profile *UserProfile `json:"profile,omitempty"`

	// Busy is true strictly during the pending window of a session-store
	// operation, false before and after, including on failure.
	Busy bool `json:"busy"`

	// Version is a monotonic counter bumped on every persisted write.
	// Conditional writes refuse stale overwrites, so a response resolving
	// after logout cannot resurrect the session it raced with.
	Version int64 `json:"version"`
}

// Authenticated reports whether a validated profile is attached.
func (s *State) Authenticated() bool {
	return s != nil && s.AccessToken != "" && s.Profile != nil
}

// IsAdmin reports whether the authenticated profile carries the admin role.
func (s *State) IsAdmin() bool {
	return s.Authenticated() && s.Profile.Role.IsAdmin()
}

// Clone returns a deep copy, detached from the original's Profile.
func (s *State) Clone() *State {
	copied := *s
	if s.Profile != nil {
		profile := *s.Profile
		copied.Profile = &profile
	}
	return &copied
}

// clearCredentials drops tokens and profile, returning the state to anonymous.
func (s *State) clearCredentials() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.Profile = nil
}

// # Flash Notifications

// Flash is a transient one-shot notification rendered on the next page load.
type Flash struct {
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
}

// # Context Plumbing

// NewContext returns a context carrying the session state for this request.
func NewContext(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, state)
}

// FromContext retrieves the session state attached by the middleware.
// Returns nil when the request carries no session (infrastructure endpoints).
func FromContext(ctx context.Context) *State {
	state, _ := ctx.Value(ctxkey.KeySession).(*State)
	return state
}
