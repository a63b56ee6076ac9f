// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package assets

import "context"

// # Store Contract

// Store abstracts the remote asset collection. The production implementation
// proxies the asset-management API; tests substitute an in-memory fake.
type Store interface {
	/*
		List fetches every asset.

		Parameters:
		  - context: context.Context
		  - token: string (bearer credential for this call)

		Returns:
		  - []Asset: Unordered server sequence; empty is a valid result
		  - error: Normalized remote failure
	*/
	List(context context.Context, token string) ([]Asset, error)

	/*
		ListByCategory fetches the assets of a single category.

		Parameters:
		  - context: context.Context
		  - token: string
		  - categoryName: string

		Returns:
		  - []Asset: Matching assets; empty is a valid result
		  - int: Server-reported total for the category
		  - error: Normalized remote failure
	*/
	ListByCategory(context context.Context, token, categoryName string) ([]Asset, int, error)

	/*
		Get fetches a single asset.

		Parameters:
		  - context: context.Context
		  - token: string
		  - id: int

		Returns:
		  - *Asset: The asset
		  - error: apperr.NotFound when the id is unknown; other normalized failures otherwise
	*/
	Get(context context.Context, token string, id int) (*Asset, error)

	/*
		Create submits a new asset. The backend assigns the id, serial number,
		and recording timestamp.

		Returns:
		  - *Asset: The created asset as the server echoed it
		  - error: Normalized remote failure
	*/
	Create(context context.Context, token string, input Input) (*Asset, error)

	/*
		Update replaces the writable fields of an existing asset. The payload
		never carries a serial number.

		Returns:
		  - *Asset: The updated asset as the server echoed it
		  - error: apperr.NotFound when the id is unknown; other normalized failures otherwise
	*/
	Update(context context.Context, token string, id int, input Input) (*Asset, error)

	/*
		Delete removes an asset.

		Returns:
		  - error: apperr.NotFound when the id is unknown; other normalized failures otherwise
	*/
	Delete(context context.Context, token string, id int) error

	/*
		Categories lists the selectable categories.
	*/
	Categories(context context.Context, token string) ([]Category, error)

	/*
		Departments lists the selectable departments.
	*/
	Departments(context context.Context, token string) ([]Department, error)
}
