// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics declares the Prometheus collectors exported at /metrics.

HTTP Metrics:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total

Cache Metrics:
  - stats_cache_requests_total{result} where result is hit, miss or error
  - stats_recompute_duration_seconds
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
	)

	// Stats Cache Metrics
	StatsCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_requests_total",
			Help: "Stats snapshot cache lookups by result",
		},
		[]string{"result"},
	)

	StatsRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stats_recompute_duration_seconds",
			Help:    "Time spent aggregating a fresh stats snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Cache lookup results for [StatsCacheRequests].
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
