// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	"github.com/assetdeck/assetdeck/internal/platform/constants"
)

// RedisStore implements [Store] using Redis hashes.
//
// # Layout
//
// Each session lives in a hash "session:<id>" with the fields "access",
// "refresh", "profile" (JSON), "busy", and "version". Flash notifications
// live in a list "flash:<id>". Both keys carry a TTL refreshed on write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
//
// ttl controls how long an idle session survives; zero falls back to [DefaultTTL].
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string { return constants.RedisPrefixSession + id }
func flashKey(id string) string   { return constants.RedisPrefixFlash + id }

/*
Find returns the session record with the given ID.

Description: Returns apperr.NotFound when the hash is absent or expired.
*/
func (store *RedisStore) Find(context context.Context, id string) (*State, error) {
	values, err := store.client.HGetAll(context, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	// HGetAll returns an empty map (not redis.Nil) for missing keys.
	if len(values) == 0 {
		return nil, apperr.NotFound("Session")
	}

	state := &State{
		ID:           id,
		AccessToken:  values[StorageFieldAccess],
		RefreshToken: values[StorageFieldRefresh],
	}

	if raw := values[storageFieldProfile]; raw != "" {
		profile := &UserProfile{}
		if err := json.Unmarshal([]byte(raw), profile); err != nil {
			return nil, fmt.Errorf("redis_session_profile_decode_failed: %w", err)
		}
		state.Profile = profile
	}

	state.Busy = values[storageFieldBusy] == "1"
	state.Version, _ = strconv.ParseInt(values[storageFieldVersion], 10, 64)

	return state, nil
}

/*
Create persists a brand-new session record with Version 1.
*/
func (store *RedisStore) Create(context context.Context, state *State) error {
	state.Version = 1
	return store.write(context, state)
}

/*
Save unconditionally persists the record and bumps its version.
*/
func (store *RedisStore) Save(context context.Context, state *State) error {
	state.Version++
	return store.write(context, state)
}

/*
SaveIf persists the record only when the stored version still equals
expectedVersion.

Description: Uses an optimistic WATCH/MULTI transaction so a concurrent
logout or login wins over a stale response.
*/
func (store *RedisStore) SaveIf(context context.Context, state *State, expectedVersion int64) error {
	key := sessionKey(state.ID)

	err := store.client.Watch(context, func(tx *redis.Tx) error {
		current, err := tx.HGet(context, key, storageFieldVersion).Result()
		if errors.Is(err, redis.Nil) {
			return apperr.NotFound("Session")
		}
		if err != nil {
			return fmt.Errorf("redis_session_version_read_failed: %w", err)
		}

		version, _ := strconv.ParseInt(current, 10, 64)
		if version != expectedVersion {
			return apperr.Conflict("Session was modified concurrently")
		}

		state.Version = version + 1
		fields, err := store.fields(state)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.HSet(context, key, fields)
			pipe.Expire(context, key, store.ttl)
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			return apperr.Conflict("Session was modified concurrently")
		}
		return err
	}, key)

	return err
}

/*
SetBusy flips the busy flag without bumping the version.

Description: Writing into an absent hash would resurrect a deleted session
as a TTL-less key holding nothing but the flag, so the existence check and
the write run inside a WATCH transaction; a delete landing in between
aborts the write instead of recreating the key.
*/
func (store *RedisStore) SetBusy(context context.Context, id string, busy bool) error {
	key := sessionKey(id)

	value := "0"
	if busy {
		value = "1"
	}

	err := store.client.Watch(context, func(tx *redis.Tx) error {
		exists, err := tx.Exists(context, key).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return nil
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.HSet(context, key, storageFieldBusy, value)
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			// The record changed under the watch. The flag is advisory, so
			// losing this write is safe; recreating the key would not be.
			return nil
		}
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("redis_session_set_busy_failed: %w", err)
	}
	return nil
}

/*
Delete removes the session record and any queued notifications.
*/
func (store *RedisStore) Delete(context context.Context, id string) error {
	if err := store.client.Del(context, sessionKey(id), flashKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

/*
AddFlash queues a transient notification for the session.
*/
func (store *RedisStore) AddFlash(context context.Context, id string, flash Flash) error {
	encoded, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("redis_flash_encode_failed: %w", err)
	}

	key := flashKey(id)
	pipe := store.client.TxPipeline()
	pipe.RPush(context, key, encoded)
	pipe.Expire(context, key, FlashTTL)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_flash_push_failed: %w", err)
	}
	return nil
}

/*
PopFlashes drains and returns all queued notifications in queue order.
*/
func (store *RedisStore) PopFlashes(context context.Context, id string) ([]Flash, error) {
	key := flashKey(id)

	pipe := store.client.TxPipeline()
	entries := pipe.LRange(context, key, 0, -1)
	pipe.Del(context, key)
	if _, err := pipe.Exec(context); err != nil {
		return nil, fmt.Errorf("redis_flash_pop_failed: %w", err)
	}

	raw, err := entries.Result()
	if err != nil {
		return nil, fmt.Errorf("redis_flash_read_failed: %w", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, entry := range raw {
		var flash Flash
		if err := json.Unmarshal([]byte(entry), &flash); err != nil {
			continue // skip a corrupt entry rather than losing the rest
		}
		flashes = append(flashes, flash)
	}
	return flashes, nil
}

// write persists all hash fields and refreshes the TTL.
func (store *RedisStore) write(context context.Context, state *State) error {
	fields, err := store.fields(state)
	if err != nil {
		return err
	}

	key := sessionKey(state.ID)
	pipe := store.client.TxPipeline()
	pipe.HSet(context, key, fields)
	pipe.Expire(context, key, store.ttl)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_write_failed: %w", err)
	}
	return nil
}

// fields flattens a [State] into the hash field map.
func (store *RedisStore) fields(state *State) (map[string]any, error) {
	profileJSON := ""
	if state.Profile != nil {
		encoded, err := json.Marshal(state.Profile)
		if err != nil {
			return nil, fmt.Errorf("redis_session_profile_encode_failed: %w", err)
		}
		profileJSON = string(encoded)
	}

	busy := "0"
	if state.Busy {
		busy = "1"
	}

	return map[string]any{
		StorageFieldAccess:  state.AccessToken,
		StorageFieldRefresh: state.RefreshToken,
		storageFieldProfile: profileJSON,
		storageFieldBusy:    busy,
		storageFieldVersion: strconv.FormatInt(state.Version, 10),
	}, nil
}
