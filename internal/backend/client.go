// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package backend implements the HTTP client adapter for the remote
asset-management REST API.

It provides uniform request dispatch with bearer-token attachment. The
adapter is purely transport: it never logs or transforms business data, and
it surfaces every failure as a normalized [apperr.AppError] carrying the
backend's message (if any) and HTTP status.

# Architecture

Domain packages define their own store interfaces and bind them to this
client, mirroring how a database-backed service binds stores to a connection
pool. The adapter itself knows nothing about assets or sessions.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	"github.com/assetdeck/assetdeck/internal/platform/constants"
)

// maxErrorBody bounds how much of a failed response is read while looking
// for a backend-provided message.
const maxErrorBody = 64 << 10

// Client is the HTTP client for the remote asset-management API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a [Client] rooted at baseURL.
//
// The timeout bounds every outbound call in addition to whatever deadline
// the per-request context carries.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// errorBody captures the message field variants the backend uses across
// endpoints. Only one of them is populated per response.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Error != "":
		return b.Error
	case b.Detail != "":
		return b.Detail
	}
	return ""
}

/*
Do dispatches a single request to the remote API.

Parameters:
  - ctx: Request-scoped context. Cancellation (e.g. the browser closing the
    connection) aborts the in-flight call.
  - method: HTTP method.
  - path: API path relative to the base URL (e.g. "/assets/").
  - token: Access token, attached as "Authorization: Bearer <token>" when
    non-empty.
  - body: Optional request payload, JSON-encoded. Nil means no body.
  - out: Optional destination for the decoded success payload. Nil discards it.

Returns:
  - error: nil on 2xx; otherwise a normalized [apperr.AppError]:
    network/timeout → TRANSPORT_ERROR, 401/403 → UNAUTHENTICATED,
    404 → NOT_FOUND, other non-2xx → REMOTE_ERROR with the backend message.
*/
func (c *Client) Do(ctx context.Context, method, path, token string, body, out any) error {

	// Encode the payload, if any
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("backend: encode request body: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("backend: create request: %w", err))
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		// Connection refused, DNS failure, timeout, cancelled context.
		c.logger.WarnContext(ctx, "backend_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperr.Transport(err)
	}
	defer response.Body.Close()

	c.logger.DebugContext(ctx, "backend_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			// A 2xx with an undecodable body is a transport-level defect.
			return apperr.Transport(fmt.Errorf("backend: decode response: %w", err))
		}
		return nil
	}

	return c.normalizeFailure(response)
}

// normalizeFailure maps a non-2xx response onto the failure taxonomy.
func (c *Client) normalizeFailure(response *http.Response) error {
	var parsed errorBody
	raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &parsed)
	message := parsed.text()

	switch response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.Unauthenticated(message)
	case http.StatusNotFound:
		return apperr.NotFound("Resource")
	default:
		return apperr.Remote(response.StatusCode, message)
	}
}

// Ping issues a minimal unauthenticated request to verify the API is reachable.
//
// Used by the readiness probe only.
func (c *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("backend: create ping request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("backend: ping failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 500 {
		return fmt.Errorf("backend: ping status %d", response.StatusCode)
	}
	return nil
}
