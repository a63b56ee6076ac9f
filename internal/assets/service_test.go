// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package assets

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	"github.com/assetdeck/assetdeck/pkg/pagination"
)

// fakeStore is a scriptable in-memory [Store].
type fakeStore struct {
	assets      []Asset
	byCategory  map[string][]Asset
	categories  []Category
	departments []Department

	listErr error

	createCalls int
	updateCalls int
	deleteCalls int
	lastInput   Input
}

func (store *fakeStore) List(_ context.Context, _ string) ([]Asset, error) {
	if store.listErr != nil {
		return nil, store.listErr
	}
	return append([]Asset(nil), store.assets...), nil
}

func (store *fakeStore) ListByCategory(_ context.Context, _, name string) ([]Asset, int, error) {
	matched := store.byCategory[name]
	return append([]Asset(nil), matched...), len(matched), nil
}

func (store *fakeStore) Get(_ context.Context, _ string, id int) (*Asset, error) {
	for _, asset := range store.assets {
		if asset.ID == id {
			found := asset
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Asset")
}

func (store *fakeStore) Create(_ context.Context, _ string, input Input) (*Asset, error) {
	store.createCalls++
	store.lastInput = input
	created := Asset{
		ID:             999,
		Name:           input.Name,
		Description:    input.Description,
		SerialNumber:   "SN-999",
		AssetType:      input.AssetType,
		Category:       Category{Name: input.CategoryName},
		DepartmentName: input.DepartmentName,
		Status:         Status(input.Status),
		DateRecorded:   time.Now(),
	}
	store.assets = append(store.assets, created)
	return &created, nil
}

func (store *fakeStore) Update(_ context.Context, _ string, id int, input Input) (*Asset, error) {
	store.updateCalls++
	store.lastInput = input
	return &Asset{ID: id, Name: input.Name}, nil
}

func (store *fakeStore) Delete(_ context.Context, _ string, _ int) error {
	store.deleteCalls++
	return nil
}

func (store *fakeStore) Categories(_ context.Context, _ string) ([]Category, error) {
	return store.categories, nil
}

func (store *fakeStore) Departments(_ context.Context, _ string) ([]Department, error) {
	return store.departments, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validInput() Input {
	return Input{
		Name:           "MacBook Pro 14",
		Description:    "Company laptop for the design team",
		AssetType:      "Laptop",
		CategoryName:   "Electronics",
		DepartmentName: "Design",
		Status:         string(StatusAvailable),
	}
}

func TestList_SortsNewestFirstStably(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{assets: []Asset{
		{ID: 1, Name: "old", DateRecorded: base.Add(-48 * time.Hour)},
		{ID: 2, Name: "tie-first", DateRecorded: base},
		{ID: 3, Name: "newest", DateRecorded: base.Add(24 * time.Hour)},
		{ID: 4, Name: "tie-second", DateRecorded: base},
	}}
	service := newTestService(store)

	page, err := service.List(context.Background(), "token", "", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	ids := make([]int, 0, len(page.Assets))
	for _, asset := range page.Assets {
		ids = append(ids, asset.ID)
	}
	// Equal timestamps keep the server's order: 2 before 4.
	assert.Equal(t, []int{3, 2, 4, 1}, ids)
	assert.Equal(t, 4, page.Meta.Total)
}

func TestList_EmptyResultIsAPage(t *testing.T) {
	service := newTestService(&fakeStore{})

	page, err := service.List(context.Background(), "token", "", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, page.Assets)
	assert.Equal(t, 0, page.Meta.Total)
}

func TestList_CategoryFilterUsesDedicatedEndpoint(t *testing.T) {
	store := &fakeStore{
		assets: []Asset{{ID: 1}, {ID: 2}, {ID: 3}},
		byCategory: map[string][]Asset{
			"Electronics": {{ID: 2, Category: Category{Name: "Electronics"}}},
		},
	}
	service := newTestService(store)

	page, err := service.List(context.Background(), "token", "Electronics", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Assets, 1)
	assert.Equal(t, 2, page.Assets[0].ID)
	assert.Equal(t, "Electronics", page.CategoryFilter)
}

func TestList_PaginationWindowsAfterSorting(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var list []Asset
	for i := 1; i <= 5; i++ {
		list = append(list, Asset{ID: i, DateRecorded: base.Add(time.Duration(i) * time.Hour)})
	}
	service := newTestService(&fakeStore{assets: list})

	page, err := service.List(context.Background(), "token", "", pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, page.Assets, 2)
	// Newest-first overall order is 5,4,3,2,1; page two holds 3 and 2.
	assert.Equal(t, 3, page.Assets[0].ID)
	assert.Equal(t, 2, page.Assets[1].ID)
	assert.True(t, page.Meta.HasPrev())
	assert.True(t, page.Meta.HasNext())
}

func TestGet_UnknownIDIsNotFound(t *testing.T) {
	service := newTestService(&fakeStore{})

	_, err := service.Get(context.Background(), "token", 42)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestCreate_ValidationBlocksDispatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"short name", func(input *Input) { input.Name = "ab" }, FieldName},
		{"short description", func(input *Input) { input.Description = "too short" }, FieldDescription},
		{"missing type", func(input *Input) { input.AssetType = "" }, FieldAssetType},
		{"no category", func(input *Input) { input.CategoryName = "" }, FieldCategory},
		{"no department", func(input *Input) { input.DepartmentName = "" }, FieldDepartment},
		{"bogus status", func(input *Input) { input.Status = "Lost" }, FieldStatus},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := &fakeStore{}
			service := newTestService(store)

			input := validInput()
			test.mutate(&input)

			_, err := service.Create(context.Background(), "token", input)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

			ae := apperr.As(err)
			require.NotNil(t, ae)
			fields := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, test.field)

			assert.Zero(t, store.createCalls, "invalid input must never reach the network")
		})
	}
}

func TestCreate_ValidInputDispatches(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	created, err := service.Create(context.Background(), "token", validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, store.createCalls)
	assert.NotEmpty(t, created.SerialNumber, "the backend assigns the serial number")
}

func TestUpdate_ValidationMatchesCreate(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	input := validInput()
	input.Description = "short"

	_, err := service.Update(context.Background(), "token", 1, input)
	require.Error(t, err)
	assert.Zero(t, store.updateCalls)

	_, err = service.Update(context.Background(), "token", 1, validInput())
	require.NoError(t, err)
	assert.Equal(t, 1, store.updateCalls)
}

func TestOptions_CollectsSelectChoices(t *testing.T) {
	store := &fakeStore{
		categories:  []Category{{ID: 1, Name: "Electronics"}},
		departments: []Department{{ID: 1, Name: "Design"}},
	}
	service := newTestService(store)

	options, err := service.Options(context.Background(), "token")
	require.NoError(t, err)

	assert.Len(t, options.Categories, 1)
	assert.Len(t, options.Departments, 1)
	assert.Equal(t, Statuses(), options.Statuses)
}
