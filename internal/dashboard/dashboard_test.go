// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdeck/assetdeck/internal/assets"
	"github.com/assetdeck/assetdeck/internal/platform/apperr"
)

// countingStore provides just the listing surface the dashboard consumes.
type countingStore struct {
	assets     []assets.Asset
	byCategory map[string]int

	listErr     error
	categoryErr map[string]error
}

func (store *countingStore) List(_ context.Context, _ string) ([]assets.Asset, error) {
	if store.listErr != nil {
		return nil, store.listErr
	}
	return append([]assets.Asset(nil), store.assets...), nil
}

func (store *countingStore) ListByCategory(_ context.Context, _, name string) ([]assets.Asset, int, error) {
	if err := store.categoryErr[name]; err != nil {
		return nil, 0, err
	}
	return nil, store.byCategory[name], nil
}

func (store *countingStore) Get(_ context.Context, _ string, _ int) (*assets.Asset, error) {
	return nil, apperr.NotFound("Asset")
}

func (store *countingStore) Create(_ context.Context, _ string, _ assets.Input) (*assets.Asset, error) {
	return nil, apperr.Internal(nil)
}

func (store *countingStore) Update(_ context.Context, _ string, _ int, _ assets.Input) (*assets.Asset, error) {
	return nil, apperr.Internal(nil)
}

func (store *countingStore) Delete(_ context.Context, _ string, _ int) error {
	return apperr.Internal(nil)
}

func (store *countingStore) Categories(_ context.Context, _ string) ([]assets.Category, error) {
	return nil, nil
}

func (store *countingStore) Departments(_ context.Context, _ string) ([]assets.Department, error) {
	return nil, nil
}

func newTestService(store *countingStore) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSummarize_CountsAndRecent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var list []assets.Asset
	for i := 1; i <= 8; i++ {
		list = append(list, assets.Asset{ID: i, DateRecorded: base.Add(time.Duration(i) * time.Hour)})
	}
	store := &countingStore{
		assets: list,
		byCategory: map[string]int{
			"Electronics":     4,
			"Furnitures":      1,
			"Office Supplies": 3,
		},
	}

	summary := newTestService(store).Summarize(context.Background(), "token")

	assert.Equal(t, 8, summary.TotalAssets)

	require.Len(t, summary.RecentAssets, RecentLimit)
	assert.Equal(t, 8, summary.RecentAssets[0].ID, "recent panel leads with the newest asset")

	require.Len(t, summary.CategoryCounts, len(TrackedCategories))
	assert.Equal(t, "Electronics", summary.CategoryCounts[0].Name)
	assert.Equal(t, 4, summary.CategoryCounts[0].Count)

	require.Len(t, summary.PopularCategories, len(TrackedCategories))
	assert.Equal(t, "Electronics", summary.PopularCategories[0].Name)
	assert.Equal(t, "Office Supplies", summary.PopularCategories[1].Name)
	assert.Equal(t, "Furnitures", summary.PopularCategories[2].Name)
}

func TestSummarize_ListFailureZeroesPanelOnly(t *testing.T) {
	store := &countingStore{
		listErr:    apperr.Transport(context.DeadlineExceeded),
		byCategory: map[string]int{"Electronics": 2},
	}

	summary := newTestService(store).Summarize(context.Background(), "token")

	assert.Zero(t, summary.TotalAssets)
	assert.Empty(t, summary.RecentAssets)
	assert.Equal(t, 2, summary.CategoryCounts[0].Count, "category counters survive a failed listing")
}

func TestSummarize_CategoryFailureZeroesThatCounter(t *testing.T) {
	store := &countingStore{
		byCategory:  map[string]int{"Electronics": 2, "Office Supplies": 5},
		categoryErr: map[string]error{"Furnitures": apperr.Transport(context.DeadlineExceeded)},
	}

	summary := newTestService(store).Summarize(context.Background(), "token")

	counts := map[string]int{}
	for _, count := range summary.CategoryCounts {
		counts[count.Name] = count.Count
	}
	assert.Equal(t, 0, counts["Furnitures"])
	assert.Equal(t, 5, counts["Office Supplies"])
}
