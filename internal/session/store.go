// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"context"
)

// # Session Data Access

// Store defines the persistence contract for browser session records.
//
// Implementations must bump [State.Version] on every successful write so
// that conditional saves can detect concurrent mutation (the logout versus
// in-flight profile update race).
type Store interface {

	/*
		Find returns the session record with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (opaque cookie value)

		Returns:
		  - *State: Hydrated session record
		  - error: apperr.NotFound when absent or expired, storage failures otherwise
	*/
	Find(context context.Context, id string) (*State, error)

	/*
		Create persists a brand-new (anonymous) session record.

		Parameters:
		  - context: context.Context
		  - state: *State (Version is initialized by the store)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, state *State) error

	/*
		Save unconditionally persists the record and bumps its version.

		Parameters:
		  - context: context.Context
		  - state: *State (Version is updated in place)

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, state *State) error

	/*
		SaveIf persists the record only when the stored version still equals
		expectedVersion. A stale writer loses.

		Parameters:
		  - context: context.Context
		  - state: *State
		  - expectedVersion: int64 (version observed when the operation began)

		Returns:
		  - error: apperr.Conflict on version mismatch, apperr.NotFound when
		    the record no longer exists, storage failures otherwise
	*/
	SaveIf(context context.Context, state *State, expectedVersion int64) error

	/*
		SetBusy flips the busy flag without bumping the version.

		Busy is operational bookkeeping, not session content; letting it
		advance the version would make every operation conflict with itself.

		Parameters:
		  - context: context.Context
		  - id: string
		  - busy: bool

		Returns:
		  - error: Persistence failures (absent records are ignored)
	*/
	SetBusy(context context.Context, id string, busy bool) error

	/*
		Delete removes the session record entirely.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures (deleting an absent record is not an error)
	*/
	Delete(context context.Context, id string) error

	/*
		AddFlash queues a transient notification for the session.

		Parameters:
		  - context: context.Context
		  - id: string
		  - flash: Flash

		Returns:
		  - error: Persistence failures
	*/
	AddFlash(context context.Context, id string, flash Flash) error

	/*
		PopFlashes drains and returns all queued notifications.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - []Flash: Notifications in queue order (possibly empty)
		  - error: Persistence failures
	*/
	PopFlashes(context context.Context, id string) ([]Flash, error)
}
