// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/models"
	"github.com/loftmatch/loftmatch/internal/recommend"
)

// Version is the reported service version.
const Version = "1.0.0"

// ListingService is the listings surface the handlers call. Implemented by
// listings.Service.
type ListingService interface {
	Create(ctx context.Context, ownerID string, l *models.Listing) (*models.Listing, error)
	Get(ctx context.Context, id int64) (*models.Listing, error)
	List(ctx context.Context, offset, limit int) ([]models.Listing, int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	Coordinates(ctx context.Context, listingID int64) (models.Coordinates, error)
	Estimate(ctx context.Context, attrs models.EnergyAttributes) (float64, error)
	Update(ctx context.Context, userID string, l *models.Listing) (*models.Listing, error)
	Delete(ctx context.Context, userID string, id int64) error
}

// Recommender produces ranked listing short-lists. Implemented by
// recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Pinger reports connectivity of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	config      *config.Config
	listings    ListingService
	recommender Recommender
	db          Pinger
	startTime   time.Time
}

// NewHandler creates a handler with the given dependencies.
func NewHandler(cfg *config.Config, listings ListingService, recommender Recommender, db Pinger) *Handler {
	return &Handler{
		config:      cfg,
		listings:    listings,
		recommender: recommender,
		db:          db,
		startTime:   time.Now(),
	}
}

// healthStatus is the payload of the health endpoint.
type healthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Health reports overall service health. Degraded when the database is
// unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	respondSuccess(w, http.StatusOK, healthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	})
}

// HealthLive is the liveness probe. Always 200 while the process serves.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. 503 until the database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database not configured", nil)
		return
	}
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database not reachable", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
