// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package assets

import (
	"context"
	"log/slog"

	"github.com/assetdeck/assetdeck/internal/platform/validate"
	"github.com/assetdeck/assetdeck/pkg/pagination"
)

// # Service Layer

// Service applies presentation ordering, pagination, and form validation on
// top of the remote collection. It never caches: every call re-fetches.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Page is one screen of the asset listing.
type Page struct {
	Assets []Asset
	Meta   pagination.Meta

	// CategoryFilter is the active category name, empty for the full listing.
	CategoryFilter string
}

// FormOptions holds the select-box choices for the create and edit screens.
type FormOptions struct {
	Categories  []Category
	Departments []Department
	Statuses    []Status
}

/*
List returns one page of assets, newest first.

Description: An optional category filter narrows the fetch to the dedicated
by-category endpoint. The result is stably sorted by recording date before
the page window is cut, so pagination never reorders ties. An empty result
is a valid page, not an error.

Parameters:
  - context: context.Context
  - token: string
  - categoryName: string (empty for all assets)
  - params: pagination.Params

Returns:
  - Page: The window plus pagination metadata
  - error: Normalized remote failure
*/
func (service *Service) List(context context.Context, token, categoryName string, params pagination.Params) (Page, error) {
	var (
		list []Asset
		err  error
	)
	if categoryName == "" {
		list, err = service.store.List(context, token)
	} else {
		list, _, err = service.store.ListByCategory(context, token, categoryName)
	}
	if err != nil {
		return Page{}, err
	}

	SortByDateRecorded(list)

	total := len(list)
	start, end := params.Window(total)

	return Page{
		Assets:         list[start:end],
		Meta:           pagination.NewMeta(params.Page, params.Limit, total),
		CategoryFilter: categoryName,
	}, nil
}

/*
Get returns a single asset.

Description: An unknown id surfaces as apperr.NotFound, which the screen
renders as a dedicated not-found affordance; transport trouble stays a
generic failure.
*/
func (service *Service) Get(context context.Context, token string, id int) (*Asset, error) {
	return service.store.Get(context, token, id)
}

/*
Create validates the form and submits a new asset.

Description: Validation failures block the dispatch entirely; the remote API
is never reached with invalid data. The serial number is assigned by the
backend, never submitted.

Returns:
  - *Asset: The created asset as the server echoed it
  - error: apperr.AppError with VALIDATION_ERROR details, or a normalized remote failure
*/
func (service *Service) Create(context context.Context, token string, input Input) (*Asset, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return service.store.Create(context, token, input)
}

/*
Update validates the form and replaces an existing asset's writable fields.

Description: Identical validation to create. Whatever the browser posted for
the read-only serial number field is discarded before this layer; the update
payload never contains one.
*/
func (service *Service) Update(context context.Context, token string, id int, input Input) (*Asset, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return service.store.Update(context, token, id, input)
}

// Delete removes an asset. Confirmation happens at the screen boundary;
// by the time this runs the user already said yes.
func (service *Service) Delete(context context.Context, token string, id int) error {
	return service.store.Delete(context, token, id)
}

// Options fetches the select-box choices for the asset forms.
func (service *Service) Options(context context.Context, token string) (FormOptions, error) {
	categories, err := service.store.Categories(context, token)
	if err != nil {
		return FormOptions{}, err
	}
	departments, err := service.store.Departments(context, token)
	if err != nil {
		return FormOptions{}, err
	}
	return FormOptions{
		Categories:  categories,
		Departments: departments,
		Statuses:    Statuses(),
	}, nil
}

// # Validation

// Form field identifiers shared with template redisplay.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldAssetType   = "asset_type"
	FieldCategory    = "category"
	FieldDepartment  = "department"
	FieldStatus      = "status"
)

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.
		MinLen(FieldName, input.Name, 3).
		MinLen(FieldDescription, input.Description, 10).
		Required(FieldAssetType, input.AssetType).
		Selected(FieldCategory, input.CategoryName).
		Selected(FieldDepartment, input.DepartmentName).
		OneOf(FieldStatus, input.Status, statusStrings()...)
	return validator.Err()
}
