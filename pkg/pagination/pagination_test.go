// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_ParsesAndClamps(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"defaults when absent", "/assets", DefaultPage, DefaultLimit},
		{"explicit values", "/assets?page=3&limit=10", 3, 10},
		{"non-numeric falls back", "/assets?page=abc&limit=xyz", DefaultPage, DefaultLimit},
		{"zero page clamped", "/assets?page=0", DefaultPage, DefaultLimit},
		{"negative limit clamped", "/assets?limit=-5", DefaultPage, DefaultLimit},
		{"excessive limit clamped", "/assets?limit=10000", DefaultPage, DefaultLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tc.target, nil)
			params := FromRequest(request)
			assert.Equal(t, tc.wantPage, params.Page)
			assert.Equal(t, tc.wantLimit, params.Limit)
		})
	}
}

func TestWindow_BoundsNeverExceedTotal(t *testing.T) {
	params := Params{Page: 2, Limit: 2}

	start, end := params.Window(5)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	// A page past the end yields an empty window, not a panic.
	start, end = Params{Page: 9, Limit: 2}.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestMeta_Navigation(t *testing.T) {
	meta := NewMeta(2, 10, 35)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasPrev())
	assert.True(t, meta.HasNext())

	last := NewMeta(4, 10, 35)
	assert.False(t, last.HasNext())
}
