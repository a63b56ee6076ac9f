// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package assets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/assetdeck/assetdeck/internal/backend"
)

// # Remote Endpoints

const (
	pathAssets           = "/assets/"
	pathAssetsByCategory = "/assets-by-category/"
	pathAssetDetail      = "/assets/detail/%d/"
	pathCategories       = "/categories/"
	pathDepartments      = "/departments/"
)

// BackendStore implements [Store] over the asset-management API.
type BackendStore struct {
	client *backend.Client
}

// NewBackendStore constructs a [BackendStore].
func NewBackendStore(client *backend.Client) *BackendStore {
	return &BackendStore{client: client}
}

var _ Store = (*BackendStore)(nil)

// writePayload is the wire shape of a create or update submission. There is
// deliberately no serial number field: the backend assigns it on creation
// and refuses edits afterwards.
type writePayload struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	AssetType      string `json:"assetType"`
	Category       string `json:"category"`
	DepartmentName string `json:"departmentName"`
	Status         string `json:"status"`
}

func payloadFrom(input Input) writePayload {
	return writePayload{
		Name:           input.Name,
		Description:    input.Description,
		AssetType:      input.AssetType,
		Category:       input.CategoryName,
		DepartmentName: input.DepartmentName,
		Status:         input.Status,
	}
}

// categoryEnvelope is the paginated shape of the by-category listing.
type categoryEnvelope struct {
	Count   int     `json:"count"`
	Results []Asset `json:"results"`
}

// List fetches every asset.
func (store *BackendStore) List(context context.Context, token string) ([]Asset, error) {
	var list []Asset
	if err := store.client.Do(context, http.MethodGet, pathAssets, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByCategory fetches the assets of a single category.
func (store *BackendStore) ListByCategory(context context.Context, token, categoryName string) ([]Asset, int, error) {
	path := pathAssetsByCategory + "?category_name=" + url.QueryEscape(categoryName)

	var envelope categoryEnvelope
	if err := store.client.Do(context, http.MethodGet, path, token, nil, &envelope); err != nil {
		return nil, 0, err
	}
	return envelope.Results, envelope.Count, nil
}

// Get fetches a single asset.
func (store *BackendStore) Get(context context.Context, token string, id int) (*Asset, error) {
	var asset Asset
	if err := store.client.Do(context, http.MethodGet, fmt.Sprintf(pathAssetDetail, id), token, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Create submits a new asset.
func (store *BackendStore) Create(context context.Context, token string, input Input) (*Asset, error) {
	var created Asset
	if err := store.client.Do(context, http.MethodPost, pathAssets, token, payloadFrom(input), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the writable fields of an existing asset.
func (store *BackendStore) Update(context context.Context, token string, id int, input Input) (*Asset, error) {
	var updated Asset
	if err := store.client.Do(context, http.MethodPut, fmt.Sprintf(pathAssetDetail, id), token, payloadFrom(input), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an asset.
func (store *BackendStore) Delete(context context.Context, token string, id int) error {
	return store.client.Do(context, http.MethodDelete, fmt.Sprintf(pathAssetDetail, id), token, nil, nil)
}

// Categories lists the selectable categories.
func (store *BackendStore) Categories(context context.Context, token string) ([]Category, error) {
	var list []Category
	if err := store.client.Do(context, http.MethodGet, pathCategories, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Departments lists the selectable departments.
func (store *BackendStore) Departments(context context.Context, token string) ([]Department, error) {
	var list []Department
	if err := store.client.Do(context, http.MethodGet, pathDepartments, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
