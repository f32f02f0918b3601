// Package observability содержит метрики Prometheus и HTTP-middleware для их сбора.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	PageGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_generations_total",
			Help: "Total number of on-demand page generations by outcome",
		},
		[]string{"outcome"},
	)

	PageGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_generation_duration_seconds",
			Help:    "Duration of page generations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PageCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_lookups_total",
			Help: "Page cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
