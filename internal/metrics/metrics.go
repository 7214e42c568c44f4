// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package metrics provides Prometheus metrics collection for the service:
// HTTP traffic, recommendation pipeline outcomes, energy cost estimates,
// outbound client calls, circuit breaker state, and the geocode cache.
// Metrics are exposed at the /metrics endpoint in Prometheus text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
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

	// Recommendation pipeline metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "success", "empty", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Eligible candidate count per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Energy cost estimation metrics
	EnergyEstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_estimates_total",
			Help: "Total number of energy cost estimates by heating mode",
		},
		[]string{"heating_mode"},
	)

	// Outbound client metrics
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_requests_total",
			Help: "Total number of outbound client requests",
		},
		[]string{"client", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Outbound client request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"client"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Geocode cache metrics
	GeocodeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_hits_total",
			Help: "Total number of geocode cache hits",
		},
	)

	GeocodeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_misses_total",
			Help: "Total number of geocode cache misses",
		},
	)

	// Background worker metrics
	GeocodeBackfillTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_backfill_total",
			Help: "Total number of backfill geocoding attempts by outcome",
		},
		[]string{"outcome"}, // "resolved", "failed"
	)
)

// RecordAPIRequest records one HTTP request observation.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordClientRequest records one outbound client call observation.
func RecordClientRequest(client, outcome string, duration time.Duration) {
	ClientRequestsTotal.WithLabelValues(client, outcome).Inc()
	ClientRequestDuration.WithLabelValues(client).Observe(duration.Seconds())
}
