// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package dashboard assembles the landing-screen summary: overall and
per-category asset counters, the most recently recorded assets, and the
categories ranked by size.

Everything is derived fresh per request from the remote collection; a failed
fetch degrades that panel to zero rather than breaking the screen.
*/
package dashboard

import (
	"context"
	"log/slog"
	"sort"

	"github.com/assetdeck/assetdeck/internal/assets"
)

// # View Model

// TrackedCategories are the categories the summary counters break out.
var TrackedCategories = []string{"Electronics", "Furnitures", "Office Supplies"}

// RecentLimit caps the recent-assets panel.
const RecentLimit = 5

// CategoryCount pairs a category with its asset count.
type CategoryCount struct {
	Name  string
	Count int
}

// Summary is the full dashboard view model.
type Summary struct {
	TotalAssets       int
	CategoryCounts    []CategoryCount
	RecentAssets      []assets.Asset
	PopularCategories []CategoryCount
}

// # Service

// Service derives the dashboard summary from the asset collection.
type Service struct {
	store  assets.Store
	logger *slog.Logger
}

// NewService constructs a [Service].
func NewService(store assets.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

/*
Summarize builds the dashboard view model.

Description: One full listing drives the total counter and the recent panel;
each tracked category is counted through the dedicated by-category endpoint.
Partial failures are logged and leave that panel at zero — the dashboard
itself always renders.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - Summary: Always usable, possibly with zeroed panels
*/
func (service *Service) Summarize(context context.Context, token string) Summary {
	summary := Summary{}

	list, err := service.store.List(context, token)
	if err != nil {
		service.logger.WarnContext(context, "dashboard_list_failed", slog.Any("error", err))
	} else {
		summary.TotalAssets = len(list)
		assets.SortByDateRecorded(list)
		if len(list) > RecentLimit {
			list = list[:RecentLimit]
		}
		summary.RecentAssets = list
	}

	for _, name := range TrackedCategories {
		_, count, err := service.store.ListByCategory(context, token, name)
		if err != nil {
			service.logger.WarnContext(context, "dashboard_category_count_failed",
				slog.String("category", name),
				slog.Any("error", err),
			)
			count = 0
		}
		summary.CategoryCounts = append(summary.CategoryCounts, CategoryCount{Name: name, Count: count})
	}

	summary.PopularCategories = rankByCount(summary.CategoryCounts)
	return summary
}

// rankByCount orders categories largest-first without disturbing the
// display order of the counter row. Ties keep the tracked order.
func rankByCount(counts []CategoryCount) []CategoryCount {
	ranked := append([]CategoryCount(nil), counts...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}
