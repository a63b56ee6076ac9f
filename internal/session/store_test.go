// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
)

func TestMemoryStore_SaveBumpsVersion(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1"}

	require.NoError(t, store.Create(context.Background(), state))
	assert.Equal(t, int64(1), state.Version)

	state.AccessToken = "access-1"
	require.NoError(t, store.Save(context.Background(), state))
	assert.Equal(t, int64(2), state.Version)

	persisted, err := store.Find(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), persisted.Version)
	assert.Equal(t, "access-1", persisted.AccessToken)
}

func TestMemoryStore_SaveIfRefusesStaleWrites(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1"}
	require.NoError(t, store.Create(context.Background(), state))

	stale := state.Clone()

	// A concurrent write moves the record forward.
	state.AccessToken = "newer"
	require.NoError(t, store.Save(context.Background(), state))

	stale.AccessToken = "older"
	err := store.SaveIf(context.Background(), stale, stale.Version)
	assert.True(t, apperr.IsCode(err, "CONFLICT"))

	persisted, err := store.Find(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "newer", persisted.AccessToken)
}

func TestMemoryStore_SaveIfOnDeletedRecordIsNotFound(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1"}
	require.NoError(t, store.Create(context.Background(), state))
	require.NoError(t, store.Delete(context.Background(), "s1"))

	err := store.SaveIf(context.Background(), state, state.Version)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestMemoryStore_SetBusySkipsAbsentRecords(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.SetBusy(context.Background(), "ghost", true))
	_, err := store.Find(context.Background(), "ghost")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"), "flipping busy must not create a record")
}

func TestMemoryStore_SetBusyDoesNotBumpVersion(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1"}
	require.NoError(t, store.Create(context.Background(), state))

	require.NoError(t, store.SetBusy(context.Background(), "s1", true))

	persisted, err := store.Find(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, persisted.Busy)
	assert.Equal(t, int64(1), persisted.Version)
}

func TestMemoryStore_FlashesAreOrderedAndOneShot(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1"}
	require.NoError(t, store.Create(context.Background(), state))

	require.NoError(t, store.AddFlash(context.Background(), "s1", Flash{Level: FlashError, Message: "first"}))
	require.NoError(t, store.AddFlash(context.Background(), "s1", Flash{Level: FlashSuccess, Message: "second"}))

	flashes, err := store.PopFlashes(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, "first", flashes[0].Message)
	assert.Equal(t, "second", flashes[1].Message)

	flashes, err = store.PopFlashes(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestMemoryStore_DeleteDropsFlashes(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1"}
	require.NoError(t, store.Create(context.Background(), state))
	require.NoError(t, store.AddFlash(context.Background(), "s1", Flash{Level: FlashSuccess, Message: "gone"}))

	require.NoError(t, store.Delete(context.Background(), "s1"))

	flashes, err := store.PopFlashes(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestMemoryStore_FindReturnsDetachedCopy(t *testing.T) {
	store := NewMemoryStore()
	state := &State{ID: "s1", Profile: &UserProfile{User: Account{FirstName: "Jack"}}}
	require.NoError(t, store.Create(context.Background(), state))

	first, err := store.Find(context.Background(), "s1")
	require.NoError(t, err)
	first.Profile.User.FirstName = "Mallory"

	second, err := store.Find(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Jack", second.Profile.User.FirstName, "callers must not share the stored profile")
}
