// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdeck/assetdeck/internal/assets"
	"github.com/assetdeck/assetdeck/internal/dashboard"
	"github.com/assetdeck/assetdeck/internal/platform/validate"
	"github.com/assetdeck/assetdeck/internal/session"
	"github.com/assetdeck/assetdeck/pkg/pagination"
)

func newTestRenderer(t *testing.T) (*Renderer, session.Store) {
	t.Helper()
	store := session.NewMemoryStore()
	renderer, err := NewRenderer(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return renderer, store
}

func adminState(t *testing.T, store session.Store) *session.State {
	t.Helper()
	state := &session.State{
		ID:          "0195f1e2-0000-7000-8000-000000000001",
		AccessToken: "access-1",
		Profile: &session.UserProfile{
			Role:           session.RoleAdmin,
			DepartmentName: "Operations",
			User:           session.Account{Username: "jack", FirstName: "Jack", LastName: "Doe"},
		},
	}
	require.NoError(t, store.Create(context.Background(), state))
	return state
}

func renderPage(renderer *Renderer, state *session.State, page string, data map[string]any) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if state != nil {
		request = request.WithContext(session.NewContext(request.Context(), state))
	}
	recorder := httptest.NewRecorder()
	renderer.Render(recorder, request, http.StatusOK, page, data)
	return recorder
}

func sampleAsset() *assets.Asset {
	return &assets.Asset{
		ID:             12,
		Name:           "MacBook Pro 14",
		Description:    "Company laptop for the design team",
		SerialNumber:   "AS4921",
		AssetType:      "Laptop",
		Category:       assets.Category{ID: 1, Name: "Electronics"},
		DepartmentName: "Design",
		Status:         assets.StatusAvailable,
		DateRecorded:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRender_EveryScreenDraws(t *testing.T) {
	renderer, store := newTestRenderer(t)
	state := adminState(t, store)
	asset := sampleAsset()

	tests := []struct {
		page    string
		data    map[string]any
		wants   string
	}{
		{"login", map[string]any{}, "Log in"},
		{"register", map[string]any{}, "Create an account"},
		{"forgot-password", map[string]any{}, "reset link"},
		{"reset-password", map[string]any{"Values": map[string]string{"uid": "u1", "token": "t1"}}, "new password"},
		{"dashboard", map[string]any{
			"Summary": dashboard.Summary{
				TotalAssets:       3,
				CategoryCounts:    []dashboard.CategoryCount{{Name: "Electronics", Count: 2}},
				RecentAssets:      []assets.Asset{*asset},
				PopularCategories: []dashboard.CategoryCount{{Name: "Electronics", Count: 2}},
			},
			"IsAdmin": true,
		}, "Total assets"},
		{"asset-list", map[string]any{
			"Page": assets.Page{
				Assets: []assets.Asset{*asset},
				Meta:   pagination.NewMeta(1, 10, 1),
			},
			"IsAdmin": true,
		}, "AS4921"},
		{"asset-detail", map[string]any{"Asset": asset, "IsAdmin": true}, "MacBook Pro 14"},
		{"asset-form", map[string]any{
			"Asset": asset,
			"Input": assets.Input{Name: asset.Name, Status: string(asset.Status)},
			"Options": assets.FormOptions{
				Categories:  []assets.Category{{ID: 1, Name: "Electronics"}},
				Departments: []assets.Department{{ID: 1, Name: "Design"}},
				Statuses:    assets.Statuses(),
			},
		}, "Serial number"},
		{"asset-confirm-delete", map[string]any{"Asset": asset}, "permanently delete"},
		{"asset-not-found", map[string]any{}, "Asset not found"},
		{"profile", map[string]any{"Profile": state.Profile}, "jack"},
		{"settings", map[string]any{}, "Change password"},
		{"404", map[string]any{}, "Page not found"},
		{"500", map[string]any{}, "Something went wrong"},
	}

	for _, test := range tests {
		t.Run(test.page, func(t *testing.T) {
			recorder := renderPage(renderer, state, test.page, test.data)
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), test.wants)
		})
	}
}

func TestRender_HidesMutatingAffordancesFromNonAdmins(t *testing.T) {
	renderer, store := newTestRenderer(t)
	state := adminState(t, store)
	asset := sampleAsset()

	listData := map[string]any{
		"Page": assets.Page{
			Assets: []assets.Asset{*asset},
			Meta:   pagination.NewMeta(1, 10, 1),
		},
		"IsAdmin": false,
	}
	body := renderPage(renderer, state, "asset-list", listData).Body.String()
	assert.NotContains(t, body, "Add asset")
	assert.NotContains(t, body, "/assets/12/edit")
	assert.NotContains(t, body, "/assets/12/delete")

	body = renderPage(renderer, state, "asset-detail", map[string]any{
		"Asset":   asset,
		"IsAdmin": false,
	}).Body.String()
	assert.NotContains(t, body, "/assets/12/edit")
	assert.NotContains(t, body, "/assets/12/delete")

	// Admins keep every affordance.
	listData["IsAdmin"] = true
	body = renderPage(renderer, state, "asset-list", listData).Body.String()
	assert.Contains(t, body, "Add asset")
	assert.Contains(t, body, "/assets/12/edit")
	assert.Contains(t, body, "/assets/12/delete")
}

func TestRender_ShowsQueuedFlashes(t *testing.T) {
	renderer, store := newTestRenderer(t)
	state := adminState(t, store)

	require.NoError(t, store.AddFlash(context.Background(), state.ID, session.Flash{
		Level:   session.FlashSuccess,
		Message: "Asset added successfully",
	}))

	recorder := renderPage(renderer, state, "login", map[string]any{})
	assert.Contains(t, recorder.Body.String(), "Asset added successfully")

	// Flashes are one-shot: the next render is clean.
	recorder = renderPage(renderer, state, "login", map[string]any{})
	assert.NotContains(t, recorder.Body.String(), "Asset added successfully")
}

func TestRender_FieldErrorsRedisplay(t *testing.T) {
	renderer, store := newTestRenderer(t)
	state := adminState(t, store)

	validator := &validate.Validator{}
	validator.Required(session.FieldPassword, "")

	recorder := renderPage(renderer, state, "login", map[string]any{
		"Errors": validator.Fields(),
		"Values": map[string]string{session.FieldUsernameOrEmail: "jack"},
	})

	body := recorder.Body.String()
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, `value="jack"`)
}

func TestRender_UnknownPageFallsBackToServerError(t *testing.T) {
	renderer, store := newTestRenderer(t)
	state := adminState(t, store)

	recorder := renderPage(renderer, state, "no-such-page", map[string]any{})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
