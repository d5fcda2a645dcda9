// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package resttest provides an in-memory PostgREST table for tests.
//
// It understands the subset of the protocol the creator store uses: select,
// order=id.asc, id=eq. filters, Prefer return=representation, and the apikey
// header. Columns can be declared missing to reproduce schema-cache errors.
package resttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/taibuivan/creatorverse/internal/platform/config"
	"github.com/taibuivan/creatorverse/internal/platform/constants"
)

// APIKey is the only key the fake store accepts.
const APIKey = "test-key"

// Table is the table name the fake store serves.
const Table = "creators"

// Request is a call received by the fake store.
type Request struct {
	Method string
	Query  string
	Prefer string
}

// Server is a fake PostgREST endpoint backed by a slice of rows.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	rows     []map[string]any
	nextID   int64
	missing  map[string]bool
	failure  *failure
	requests []Request
}

type failure struct {
	status int
	body   string
}

// Option configures a [Server].
type Option func(*Server)

// WithoutColumn makes the table reject writes that name column.
func WithoutColumn(column string) Option {
	return func(server *Server) {
		server.missing[column] = true
	}
}

// New starts a fake store and stops it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	server := &Server{nextID: 1, missing: make(map[string]bool)}
	for _, opt := range opts {
		opt(server)
	}

	server.Server = httptest.NewServer(http.HandlerFunc(server.serve))
	t.Cleanup(server.Close)
	return server
}

// Settings returns store settings pointing at the fake.
func (server *Server) Settings() config.Store {
	return config.Store{
		BaseURL: server.URL,
		APIKey:  APIKey,
		Table:   Table,
		Timeout: 2 * time.Second,
	}
}

// Seed appends rows, assigning ids to rows that have none.
func (server *Server) Seed(rows ...map[string]any) {
	server.mu.Lock()
	defer server.mu.Unlock()

	for _, row := range rows {
		stored := clone(row)
		if _, ok := stored["id"]; !ok {
			stored["id"] = server.nextID
		}
		if id, ok := stored["id"].(int64); ok && id >= server.nextID {
			server.nextID = id + 1
		}
		server.rows = append(server.rows, stored)
	}
}

// Fail makes every following request answer with status and body.
func (server *Server) Fail(status int, body string) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.failure = &failure{status: status, body: body}
}

// Rows returns a copy of the stored rows.
func (server *Server) Rows() []map[string]any {
	server.mu.Lock()
	defer server.mu.Unlock()

	rows := make([]map[string]any, 0, len(server.rows))
	for _, row := range server.rows {
		rows = append(rows, clone(row))
	}
	return rows
}

// Requests returns the calls received so far.
func (server *Server) Requests() []Request {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]Request(nil), server.requests...)
}

func (server *Server) serve(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	server.requests = append(server.requests, Request{
		Method: request.Method,
		Query:  request.URL.RawQuery,
		Prefer: request.Header.Get(constants.HeaderPrefer),
	})

	if server.failure != nil {
		writer.WriteHeader(server.failure.status)
		_, _ = writer.Write([]byte(server.failure.body))
		return
	}

	if request.Header.Get(constants.HeaderAPIKey) != APIKey ||
		request.Header.Get(constants.HeaderAuthorization) != "Bearer "+APIKey {
		writeJSON(writer, http.StatusUnauthorized, map[string]any{"message": "Invalid API key"})
		return
	}

	if request.URL.Path != constants.RESTPathPrefix+Table {
		writeJSON(writer, http.StatusNotFound, map[string]any{
			"code":    "42P01",
			"message": fmt.Sprintf("relation %q does not exist", strings.TrimPrefix(request.URL.Path, constants.RESTPathPrefix)),
		})
		return
	}

	filter, hasFilter := idFilter(request)

	switch request.Method {
	case http.MethodGet:
		matched := make([]map[string]any, 0)
		for _, row := range server.rows {
			if !hasFilter || idString(row["id"]) == filter {
				matched = append(matched, row)
			}
		}
		if limit, err := strconv.Atoi(request.URL.Query().Get("limit")); err == nil && limit < len(matched) {
			matched = matched[:limit]
		}
		writeJSON(writer, http.StatusOK, matched)

	case http.MethodPost:
		payload, ok := server.decode(writer, request)
		if !ok {
			return
		}
		row := clone(payload)
		row["id"] = server.nextID
		server.nextID++
		server.rows = append(server.rows, row)
		server.echo(writer, request, http.StatusCreated, []map[string]any{row})

	case http.MethodPatch:
		payload, ok := server.decode(writer, request)
		if !ok {
			return
		}
		updated := make([]map[string]any, 0)
		for _, row := range server.rows {
			if hasFilter && idString(row["id"]) != filter {
				continue
			}
			for key, value := range payload {
				row[key] = value
			}
			updated = append(updated, row)
		}
		server.echo(writer, request, http.StatusOK, updated)

	case http.MethodDelete:
		kept := server.rows[:0]
		for _, row := range server.rows {
			if !hasFilter || idString(row["id"]) != filter {
				kept = append(kept, row)
			}
		}
		server.rows = kept
		writer.WriteHeader(http.StatusNoContent)

	default:
		writer.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// decode reads a write payload and rejects columns the table lacks.
func (server *Server) decode(writer http.ResponseWriter, request *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		writeJSON(writer, http.StatusBadRequest, map[string]any{"code": "PGRST102", "message": "Empty or invalid json"})
		return nil, false
	}

	for key := range payload {
		if server.missing[key] {
			writeJSON(writer, http.StatusBadRequest, map[string]any{
				"code":    "PGRST204",
				"message": fmt.Sprintf("Could not find the '%s' column of '%s' in the schema cache", key, Table),
			})
			return nil, false
		}
	}
	return payload, true
}

func (server *Server) echo(writer http.ResponseWriter, request *http.Request, status int, rows []map[string]any) {
	if request.Header.Get(constants.HeaderPrefer) == constants.PreferRepresentation {
		writeJSON(writer, status, rows)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

func idFilter(request *http.Request) (string, bool) {
	value := request.URL.Query().Get("id")
	if value == "" {
		return "", false
	}
	return strings.TrimPrefix(value, "eq."), true
}

func idString(value any) string {
	return fmt.Sprint(value)
}

func clone(row map[string]any) map[string]any {
	copied := make(map[string]any, len(row))
	for key, value := range row {
		copied[key] = value
	}
	return copied
}

func writeJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}
