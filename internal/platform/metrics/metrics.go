// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics holds the Prometheus collectors exported at /metrics.

All collectors are registered once on the default registry and prefixed with
"creatorverse_".

Metrics:

  - creatorverse_http_requests_total{method,route,status}
  - creatorverse_http_request_duration_seconds{method,route}
  - creatorverse_store_requests_total{backend,operation,outcome}
  - creatorverse_store_write_fallbacks_total{field}
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "creatorverse"

// Store call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// unmatchedRoute labels requests that no route pattern claimed.
const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	storeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_requests_total",
			Help:      "Total number of calls made to the creator store",
		},
		[]string{"backend", "operation", "outcome"},
	)

	writeFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_write_fallbacks_total",
			Help:      "Total number of writes retried under an alternate column name",
		},
		[]string{"field"},
	)
)

// # Recording

// ObserveStoreRequest counts one store call and its outcome.
func ObserveStoreRequest(backend, operation string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	storeRequestsTotal.WithLabelValues(backend, operation, outcome).Inc()
}

// RecordWriteFallback counts one write retried with field under its alias.
func RecordWriteFallback(field string) {
	writeFallbacksTotal.WithLabelValues(field).Inc()
}

// # HTTP

// Middleware records request count and latency labelled by the chi route
// pattern, so path parameters never explode the label set.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)

			next.ServeHTTP(wrapped, request)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := routePattern(request)
			httpRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
		})
	}
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func routePattern(request *http.Request) string {
	routeCtx := chi.RouteContext(request.Context())
	if routeCtx == nil {
		return unmatchedRoute
	}
	if pattern := routeCtx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
