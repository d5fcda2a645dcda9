// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/creatorverse/internal/platform/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	return recorder.Body.String()
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(metrics.Middleware())
	router.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Get("/silent", func(w http.ResponseWriter, r *http.Request) {})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/widgets/42", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/silent", nil))

	body := scrape(t)
	assert.Contains(t, body, `creatorverse_http_requests_total{method="GET",route="/widgets/{id}",status="418"}`)
	assert.Contains(t, body, `creatorverse_http_requests_total{method="GET",route="/silent",status="200"}`)
	assert.NotContains(t, body, `route="/widgets/42"`)
}

func TestObserveStoreRequest(t *testing.T) {
	metrics.ObserveStoreRequest("test", "list", nil)
	metrics.ObserveStoreRequest("test", "insert", errors.New("boom"))
	metrics.RecordWriteFallback("testField")

	body := scrape(t)
	assert.Contains(t, body, `creatorverse_store_requests_total{backend="test",operation="list",outcome="ok"} 1`)
	assert.Contains(t, body, `creatorverse_store_requests_total{backend="test",operation="insert",outcome="error"} 1`)
	assert.Contains(t, body, `creatorverse_store_write_fallbacks_total{field="testField"} 1`)
}
