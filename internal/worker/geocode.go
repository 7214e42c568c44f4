// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package worker provides supervised background workers. The geocode
// backfiller re-resolves listings whose geocoding failed at creation time so
// they become eligible for distance filtering.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/metrics"
	"github.com/loftmatch/loftmatch/internal/models"
)

// GeocodeStore is the storage surface the backfiller needs.
type GeocodeStore interface {
	ListingsWithoutCoordinates(ctx context.Context, limit int) ([]models.Listing, error)
	SetCoordinates(ctx context.Context, listingID int64, coords models.Coordinates) error
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (models.Coordinates, error)
}

// GeocodeBackfiller periodically resolves coordinates for listings that have
// none. It implements suture.Service.
type GeocodeBackfiller struct {
	store    GeocodeStore
	geocoder Geocoder
	interval time.Duration
	batch    int
	logger   zerolog.Logger
	name     string
}

// NewGeocodeBackfiller creates a backfiller from the worker configuration.
func NewGeocodeBackfiller(cfg *config.WorkerConfig, store GeocodeStore, geocoder Geocoder, logger zerolog.Logger) (*GeocodeBackfiller, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if geocoder == nil {
		return nil, errors.New("geocoder is required")
	}

	interval := 5 * time.Minute
	batch := 50
	if cfg != nil {
		if cfg.GeocodeInterval > 0 {
			interval = cfg.GeocodeInterval
		}
		if cfg.GeocodeBatchSize > 0 {
			batch = cfg.GeocodeBatchSize
		}
	}

	return &GeocodeBackfiller{
		store:    store,
		geocoder: geocoder,
		interval: interval,
		batch:    batch,
		logger:   logger.With().Str("service", "geocode-backfill").Logger(),
		name:     "geocode-backfill",
	}, nil
}

// Serve implements the suture.Service interface. It runs one pass
// immediately, then one per interval, until the context is canceled.
func (g *GeocodeBackfiller) Serve(ctx context.Context) error {
	g.logger.Info().
		Dur("interval", g.interval).
		Int("batch_size", g.batch).
		Msg("geocode backfiller starting")

	if err := g.runOnce(ctx); err != nil {
		g.logger.Warn().Err(err).Msg("initial backfill pass failed (will retry on schedule)")
	}

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info().Msg("geocode backfiller shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := g.runOnce(ctx); err != nil {
				g.logger.Warn().Err(err).Msg("backfill pass failed")
			}
		}
	}
}

// runOnce processes a single batch. Per-listing failures are counted and
// skipped; only batch-level failures (query errors, canceled context) abort
// the pass.
func (g *GeocodeBackfiller) runOnce(ctx context.Context) error {
	listings, err := g.store.ListingsWithoutCoordinates(ctx, g.batch)
	if err != nil {
		return fmt.Errorf("query ungeocoded listings: %w", err)
	}
	if len(listings) == 0 {
		return nil
	}

	resolved := 0
	for i := range listings {
		l := &listings[i]

		coords, err := g.geocoder.Resolve(ctx, l.Location)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.GeocodeBackfillTotal.WithLabelValues("failed").Inc()
			// Unresolvable addresses stay unresolved until edited; upstream
			// outages clear on a later pass.
			if !apperr.IsNotFound(err) {
				g.logger.Debug().Err(err).Int64("listing_id", l.ID).Msg("geocoding failed")
			}
			continue
		}

		if err := g.store.SetCoordinates(ctx, l.ID, coords); err != nil {
			metrics.GeocodeBackfillTotal.WithLabelValues("failed").Inc()
			g.logger.Warn().Err(err).Int64("listing_id", l.ID).Msg("persisting coordinates failed")
			continue
		}

		metrics.GeocodeBackfillTotal.WithLabelValues("resolved").Inc()
		resolved++
	}

	g.logger.Info().
		Int("batch", len(listings)).
		Int("resolved", resolved).
		Msg("backfill pass complete")
	return nil
}

// String implements fmt.Stringer for supervision logs.
func (g *GeocodeBackfiller) String() string {
	return g.name
}
