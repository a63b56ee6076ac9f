// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package assets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdeck/assetdeck/internal/backend"
)

func newBackendStore(t *testing.T, handler http.HandlerFunc) *BackendStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBackendStore(backend.NewClient(server.URL, 5*time.Second, logger))
}

func TestCreate_PayloadNeverCarriesSerialNumber(t *testing.T) {
	var body map[string]any
	store := newBackendStore(t, func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, http.MethodPost, request.Method)
		require.Equal(t, "/assets/", request.URL.Path)
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"id": 12, "name": "MacBook Pro 14", "serialNumber": "AS4921"}`))
	})

	created, err := store.Create(context.Background(), "token", Input{
		Name:           "MacBook Pro 14",
		Description:    "Company laptop for the design team",
		AssetType:      "Laptop",
		CategoryName:   "Electronics",
		DepartmentName: "Design",
		Status:         string(StatusAvailable),
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "serialNumber")
	assert.Equal(t, "Electronics", body["category"])
	assert.Equal(t, "Design", body["departmentName"])
	assert.Equal(t, "AS4921", created.SerialNumber)
}

func TestUpdate_PayloadNeverCarriesSerialNumber(t *testing.T) {
	var body map[string]any
	store := newBackendStore(t, func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, http.MethodPut, request.Method)
		require.Equal(t, "/assets/detail/12/", request.URL.Path)
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id": 12, "name": "MacBook Pro 16", "serialNumber": "AS4921"}`))
	})

	updated, err := store.Update(context.Background(), "token", 12, Input{
		Name:           "MacBook Pro 16",
		Description:    "Company laptop for the design team",
		AssetType:      "Laptop",
		CategoryName:   "Electronics",
		DepartmentName: "Design",
		Status:         string(StatusInUse),
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "serialNumber")
	assert.Equal(t, "In use", body["status"])
	assert.Equal(t, "AS4921", updated.SerialNumber, "the server remains the serial number authority")
}

func TestListByCategory_UnwrapsEnvelope(t *testing.T) {
	store := newBackendStore(t, func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/assets-by-category/", request.URL.Path)
		require.Equal(t, "Office Supplies", request.URL.Query().Get("category_name"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"count": 2, "results": [{"id": 1}, {"id": 2}]}`))
	})

	list, count, err := store.ListByCategory(context.Background(), "token", "Office Supplies")
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
}

func TestDelete_TargetsDetailPath(t *testing.T) {
	var method, path string
	store := newBackendStore(t, func(writer http.ResponseWriter, request *http.Request) {
		method = request.Method
		path = request.URL.Path
		writer.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, store.Delete(context.Background(), "token", 7))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/assets/detail/7/", path)
}
