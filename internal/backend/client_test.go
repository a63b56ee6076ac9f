// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package backend_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdeck/assetdeck/internal/backend"
	"github.com/assetdeck/assetdeck/internal/platform/apperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return backend.NewClient(server.URL, 2*time.Second, slog.Default())
}

/*
TestDo_AttachesBearerToken verifies the Authorization header convention.
*/
func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	var out map[string]bool
	err := client.Do(context.Background(), http.MethodGet, "/profile/", "tok-123", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.True(t, out["ok"])
}

/*
TestDo_NoTokenNoHeader ensures unauthenticated calls carry no Authorization header.
*/
func TestDo_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Do(context.Background(), http.MethodPost, "/auth/login/", "", map[string]string{"usernameOrEmail": "jack"}, nil)

	require.NoError(t, err)
	assert.False(t, hasAuth)
}

/*
TestDo_FailureTaxonomy checks the mapping of response statuses onto error codes.
*/
func TestDo_FailureTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Token expired"}`, "UNAUTHENTICATED", "Token expired"},
		{"forbidden", http.StatusForbidden, `{}`, "UNAUTHENTICATED", ""},
		{"not_found", http.StatusNotFound, `{}`, "NOT_FOUND", ""},
		{"business_error", http.StatusBadRequest, `{"message":"Username is taken"}`, "REMOTE_ERROR", "Username is taken"},
		{"error_field", http.StatusConflict, `{"error":"Duplicate serial"}`, "REMOTE_ERROR", "Duplicate serial"},
		{"no_message", http.StatusInternalServerError, `garbage`, "REMOTE_ERROR", apperr.GenericMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.Do(context.Background(), http.MethodGet, "/assets/", "tok", nil, nil)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, ae.Message)
			}
		})
	}
}

/*
TestDo_TransportFailure ensures an unreachable server maps to TRANSPORT_ERROR.
*/
func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // shut down before use

	client := backend.NewClient(server.URL, time.Second, slog.Default())

	err := client.Do(context.Background(), http.MethodGet, "/assets/", "tok", nil, nil)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "TRANSPORT_ERROR"))
}

/*
TestDo_ContextCancellation ensures an aborted request surfaces as transport failure.
*/
func TestDo_ContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	})
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Do(ctx, http.MethodGet, "/assets/", "tok", nil, nil)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "TRANSPORT_ERROR"))
}
