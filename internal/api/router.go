// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loftmatch/loftmatch/internal/auth"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/middleware"
)

// Health endpoints get a permissive limit so monitoring can poll freely.
const healthRateLimit = 1000

// Router wires handlers, middleware and the Chi mux.
type Router struct {
	config  *config.Config
	handler *Handler
	jwt     *auth.JWTManager
}

// NewRouter creates a router for the given handler and JWT manager.
func NewRouter(cfg *config.Config, handler *Handler, jwt *auth.JWTManager) *Router {
	return &Router{
		config:  cfg,
		handler: handler,
		jwt:     jwt,
	}
}

// Setup builds the full route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.corsHandler())
	r.Use(middleware.RequestLogging)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(healthRateLimit, time.Minute))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Data endpoints require a valid access token.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Authenticate(router.jwt))

		r.Post("/listings", router.handler.CreateListing)
		r.Get("/listings", router.handler.ListListings)
		r.Get("/listings/{id}", router.handler.GetListing)
		r.Put("/listings/{id}", router.handler.UpdateListing)
		r.Delete("/listings/{id}", router.handler.DeleteListing)
		r.Get("/listings/{id}/coordinates", router.handler.ListingCoordinates)

		r.Get("/me/listings", router.handler.MyListings)

		r.Post("/estimate", router.handler.Estimate)
		r.Post("/recommendations", router.handler.Recommend)
	})

	return r
}

// corsHandler builds the CORS middleware from configuration.
func (router *Router) corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   router.config.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}

// rateLimit builds the per-IP rate limiter for data endpoints. A no-op when
// disabled in configuration.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	if router.config.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		router.config.Security.RateLimitReqs,
		router.config.Security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
