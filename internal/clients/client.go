// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package clients contains the outbound HTTP clients for the collaborator
// services: the electricity rate provider, the Nominatim geocoder, the
// user-listing relation service, and the relevance ranking service.
//
// Every client runs behind a circuit breaker and maps upstream failures
// onto the apperr error kinds the rest of the service understands.
package clients

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/logging"
	"github.com/loftmatch/loftmatch/internal/metrics"
)

// maxResponseBytes caps upstream response bodies. Collaborator payloads are
// small; anything larger indicates a misbehaving upstream.
const maxResponseBytes = 1 << 20

// httpResult carries the status and body of an upstream response through
// the circuit breaker so each client can map statuses onto its own errors.
type httpResult struct {
	status int
	body   []byte
}

// newCircuitBreaker builds a breaker with the shared settings: at most 3
// probes in half-open state, a one minute measurement window, two minutes
// before recovery attempts, tripping at a 60% failure rate over at least
// 10 requests.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker[httpResult] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[httpResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// executeRequest issues the request through the breaker and records the
// observation. Transport failures and breaker rejections come back wrapped
// as apperr.ErrUnavailable; HTTP status mapping is the caller's job.
func executeRequest(cb *gobreaker.CircuitBreaker[httpResult], hc *http.Client, name string, req *http.Request) (httpResult, error) {
	start := time.Now()

	result, err := cb.Execute(func() (httpResult, error) {
		resp, err := hc.Do(req)
		if err != nil {
			return httpResult{}, err
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return httpResult{}, fmt.Errorf("reading response body: %w", err)
		}
		return httpResult{status: resp.StatusCode, body: body}, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordClientRequest(name, "rejected", time.Since(start))
			return httpResult{}, fmt.Errorf("%s circuit open: %w", name, apperr.ErrUnavailable)
		}
		metrics.RecordClientRequest(name, "failure", time.Since(start))
		return httpResult{}, fmt.Errorf("%s request failed: %v: %w", name, err, apperr.ErrUnavailable)
	}

	metrics.RecordClientRequest(name, "success", time.Since(start))
	return result, nil
}
