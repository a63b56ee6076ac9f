// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import "time"

// # Session Constraints

const (
	// DefaultTTL is how long an idle session record survives when the
	// configuration does not override it.
	DefaultTTL = 30 * 24 * time.Hour

	// FlashTTL bounds how long an undelivered notification lingers.
	FlashTTL = 10 * time.Minute

	// ExpirySkew is subtracted from the access token's exp claim so a token
	// about to lapse mid-request is already treated as stale.
	ExpirySkew = 30 * time.Second
)

// # Storage Field Names

// The two tokens persist under fixed field names (the durable key-value
// storage contract shared with the rest of the stack).
const (
	StorageFieldAccess  = "access"
	StorageFieldRefresh = "refresh"
	storageFieldProfile = "profile"
	storageFieldBusy    = "busy"
	storageFieldVersion = "version"
)

// # Form Field Identifiers

// Field names shared between validation chains and template redisplay.
const (
	FieldUsername        = "username"
	FieldUsernameOrEmail = "username_or_email"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldOldPassword     = "old_password"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
)

// # Flash Levels

const (
	FlashSuccess = "success"
	FlashError   = "error"
)
