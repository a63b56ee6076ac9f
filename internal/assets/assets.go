// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package assets implements the asset CRUD screens and their data access.

The remote API owns every asset; this layer holds no authoritative copy and
re-fetches on every screen load. Reads are normalized into a stable
date-descending order before rendering, and writes are validated locally
before any network dispatch.
*/
package assets

import (
	"sort"
	"time"
)

// # Domain Entities

// Category groups assets for filtering and the dashboard counters.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Department is an organizational unit an asset is assigned to.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Status is the lifecycle state of an asset.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusBooked      Status = "Booked"
	StatusInUse       Status = "In use"
	StatusArchived    Status = "Archived"
)

// Statuses lists every selectable status in form-option order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusMaintenance, StatusBooked, StatusInUse, StatusArchived}
}

// statusStrings returns the statuses as plain strings for validation chains.
func statusStrings() []string {
	options := Statuses()
	out := make([]string, len(options))
	for index, option := range options {
		out[index] = string(option)
	}
	return out
}

// Asset is the managed entity as the backend represents it.
type Asset struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// SerialNumber is assigned by the backend on creation and immutable
	// afterwards. It never appears in a write payload.
	SerialNumber string `json:"serialNumber"`

	AssetType      string    `json:"assetType"`
	Category       Category  `json:"category"`
	DepartmentName string    `json:"departmentName"`
	Status         Status    `json:"status"`
	DateRecorded   time.Time `json:"dateRecorded"`
}

// Input carries the writable asset fields from a create or edit form.
type Input struct {
	Name           string
	Description    string
	AssetType      string
	CategoryName   string
	DepartmentName string
	Status         string
}

// # Ordering

// SortByDateRecorded orders newest-first. The sort is stable so assets
// sharing a timestamp keep the server's original order.
func SortByDateRecorded(list []Asset) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DateRecorded.After(list[j].DateRecorded)
	})
}
