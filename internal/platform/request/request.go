// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
form decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/assetdeck/assetdeck/internal/platform/validate"
)

/*
ParseForm parses an application/x-www-form-urlencoded body.

Parameters:
  - request: *http.Request

Returns:
  - error: validate.ErrInvalidForm if parsing fails, otherwise nil
*/
func ParseForm(request *http.Request) error {
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
Field returns a trimmed form value.
*/
func Field(request *http.Request, name string) string {
	return strings.TrimSpace(request.PostFormValue(name))
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query returns a trimmed query-string value.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}
