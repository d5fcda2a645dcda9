// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rest provides a managed client for a PostgREST-style tabular endpoint.

It is the transport half of the remote store: it knows how to address one
table, attach the static credentials, and turn non-2xx responses into
display-safe [apperr.AppError] values. It knows nothing about the rows it moves.

Core Responsibilities:

  - Credentials: every request carries the key as "apikey" and as a bearer token.
  - Errors: non-2xx bodies are reduced to their "message" field, or kept verbatim.
  - Decoding: responses are decoded as rows whether the store sent an array or a
    single object.

The client is stateless per call and safe for unlimited concurrent use.
*/
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
	"github.com/taibuivan/creatorverse/internal/platform/config"
	"github.com/taibuivan/creatorverse/internal/platform/constants"
	"github.com/taibuivan/creatorverse/internal/platform/ctxutil"
)

// maxBodyBytes bounds how much of a store response is read into memory.
const maxBodyBytes = 8 << 20

// # Client

// Client addresses a single table of the REST store.
type Client struct {
	settings config.Store
	endpoint string
	http     *http.Client
}

// Request describes one call against the table endpoint.
type Request struct {
	// Method is the HTTP verb (GET, POST, PATCH, DELETE).
	Method string
	// Query holds filter, ordering and projection parameters.
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Prefer is sent as the Prefer header when non-empty.
	Prefer string
}

// NewClient builds a client for the table named in settings.
//
// httpClient may be nil, in which case a client bounded by settings.Timeout is used.
func NewClient(settings config.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: settings.Timeout}
	}
	return &Client{
		settings: settings,
		endpoint: settings.BaseURL + constants.RESTPathPrefix + url.PathEscape(settings.Table),
		http:     httpClient,
	}
}

// Endpoint returns the table URL without query parameters.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do sends req and returns the raw response body of a 2xx response.
//
// Any other status is returned as an [apperr.AppError] (STORE_ERROR) whose
// message is extracted with [ErrorMessage]. Transport failures are reported
// the same way, carrying the transport error text.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	target := c.endpoint
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("rest: encode body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("rest: build request: %w", err))
	}

	c.authorize(httpReq)
	if req.Body != nil {
		httpReq.Header.Set(constants.HeaderContentType, "application/json")
	}
	if req.Prefer != "" {
		httpReq.Header.Set(constants.HeaderPrefer, req.Prefer)
	}

	logger := ctxutil.GetLogger(ctx)
	startTime := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.WarnContext(ctx, "store_request_failed",
			slog.String("method", req.Method),
			slog.Any("error", err),
		)
		return nil, apperr.Store(err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Store(err.Error(), err)
	}

	logger.DebugContext(ctx, "store_request_finished",
		slog.String("method", req.Method),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Store(ErrorMessage(raw), fmt.Errorf("rest: %s %s: status %d", req.Method, c.endpoint, resp.StatusCode))
	}

	return raw, nil
}

// Ping issues a one-row projection to check that the table is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Query:  url.Values{"select": {"*"}, "limit": {"1"}},
	})
	return err
}

// authorize attaches the static key both as a custom header and a bearer token.
func (c *Client) authorize(req *http.Request) {
	req.Header.Set(constants.HeaderAPIKey, c.settings.APIKey)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+c.settings.APIKey)
}

// # Response Helpers

// ErrorMessage extracts a human-readable message from an error body.
//
// A JSON object with a non-null "message" yields that message; anything else
// (non-JSON text, arrays, objects without a message) yields the body verbatim.
func ErrorMessage(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}

	switch message := parsed[constants.FieldMessage].(type) {
	case nil:
		return string(body)
	case string:
		return message
	default:
		return fmt.Sprint(message)
	}
}

// DecodeRows decodes a response body into rows.
//
// An empty body or JSON null yields no rows; a single object yields one row.
// Numbers are kept as [json.Number] so identifiers survive unchanged.
func DecodeRows(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	if trimmed[0] == '{' {
		var row map[string]any
		if err := decoder.Decode(&row); err != nil {
			return nil, apperr.Store("The store returned an unreadable response.", err)
		}
		return []map[string]any{row}, nil
	}

	var rows []map[string]any
	if err := decoder.Decode(&rows); err != nil {
		return nil, apperr.Store("The store returned an unreadable response.", err)
	}
	return rows, nil
}
