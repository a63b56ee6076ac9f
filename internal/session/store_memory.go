// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"context"
	"sync"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
)

// MemoryStore implements [Store] with an in-process map.
//
// It exists for tests and for running the server without Redis during local
// development. Semantics mirror [RedisStore], including version bumping.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]State
	flashes  map[string][]Flash
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]State),
		flashes:  make(map[string][]Flash),
	}
}

// Find returns a copy of the stored record, or apperr.NotFound.
func (store *MemoryStore) Find(_ context.Context, id string) (*State, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	copied := stored
	if stored.Profile != nil {
		profile := *stored.Profile
		copied.Profile = &profile
	}
	return &copied, nil
}

// Create persists a brand-new session record with Version 1.
func (store *MemoryStore) Create(_ context.Context, state *State) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	state.Version = 1
	store.sessions[state.ID] = snapshot(state)
	return nil
}

// Save unconditionally persists the record and bumps its version.
func (store *MemoryStore) Save(_ context.Context, state *State) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	state.Version++
	store.sessions[state.ID] = snapshot(state)
	return nil
}

// SaveIf persists only when the stored version still equals expectedVersion.
func (store *MemoryStore) SaveIf(_ context.Context, state *State, expectedVersion int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.sessions[state.ID]
	if !ok {
		return apperr.NotFound("Session")
	}
	if stored.Version != expectedVersion {
		return apperr.Conflict("Session was modified concurrently")
	}

	state.Version = stored.Version + 1
	store.sessions[state.ID] = snapshot(state)
	return nil
}

// SetBusy flips the busy flag without bumping the version.
func (store *MemoryStore) SetBusy(_ context.Context, id string, busy bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.sessions[id]
	if !ok {
		return nil
	}
	stored.Busy = busy
	store.sessions[id] = stored
	return nil
}

// Delete removes the session record and any queued notifications.
func (store *MemoryStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, id)
	delete(store.flashes, id)
	return nil
}

// AddFlash queues a transient notification for the session.
func (store *MemoryStore) AddFlash(_ context.Context, id string, flash Flash) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.flashes[id] = append(store.flashes[id], flash)
	return nil
}

// PopFlashes drains and returns all queued notifications.
func (store *MemoryStore) PopFlashes(_ context.Context, id string) ([]Flash, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	flashes := store.flashes[id]
	delete(store.flashes, id)
	return flashes, nil
}

// snapshot deep-copies the state so callers cannot mutate stored records.
func snapshot(state *State) State {
	copied := *state
	if state.Profile != nil {
		profile := *state.Profile
		copied.Profile = &profile
	}
	return copied
}
