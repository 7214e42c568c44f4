// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/geo"
	"github.com/loftmatch/loftmatch/internal/models"
)

// Engine runs the candidate-selection pipeline: resolve the reference
// location, collect the user's exclusion set, query and filter candidates,
// rank them through the external relevance service, and materialize the
// final short-list.
type Engine struct {
	cfg        *Config
	geocoder   Geocoder
	relations  RelationSource
	candidates CandidateSource
	ranking    RankingSource
	filter     *CandidateFilter
	logger     zerolog.Logger
}

// NewEngine creates a recommendation engine. All collaborators are required.
func NewEngine(cfg *Config, geocoder Geocoder, relations RelationSource, candidates CandidateSource, ranking RankingSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}
	if geocoder == nil || relations == nil || candidates == nil || ranking == nil {
		return nil, fmt.Errorf("recommendation engine requires all collaborators")
	}
	return &Engine{
		cfg:        cfg.Clone(),
		geocoder:   geocoder,
		relations:  relations,
		candidates: candidates,
		ranking:    ranking,
		filter:     NewCandidateFilter(geo.NewCalculator(geo.DefaultConfig()), cfg.MaxDistanceKm),
		logger:     logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend produces a ranked short-list of listings for the request.
// It returns apperr.ErrNotFound when no eligible candidate remains after
// filtering; collaborator failures are returned unchanged, wrapped with
// pipeline context.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	limit := e.clampLimit(req.Limit)

	reference, err := e.geocoder.Resolve(ctx, req.Filters.Location)
	if err != nil {
		return nil, fmt.Errorf("resolving reference location: %w", err)
	}

	relations, err := e.relations.AllRelations(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching user relations: %w", err)
	}
	excluded := make(map[int64]struct{}, len(relations))
	excludedIDs := make([]int64, 0, len(relations))
	for _, r := range relations {
		if _, dup := excluded[r.ListingID]; dup {
			continue
		}
		excluded[r.ListingID] = struct{}{}
		excludedIDs = append(excludedIDs, r.ListingID)
	}

	pool, err := e.candidates.CandidateListings(ctx, req.Filters, excludedIDs, limit*e.cfg.OverfetchFactor)
	if err != nil {
		return nil, fmt.Errorf("querying candidate listings: %w", err)
	}

	eligible := e.filter.Filter(pool, excluded, reference, req.Filters)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("no eligible listings for user %s: %w", req.UserID, apperr.ErrNotFound)
	}

	candidateIDs := make([]int64, len(eligible))
	byID := make(map[int64]models.Listing, len(eligible))
	for i, l := range eligible {
		candidateIDs[i] = l.ID
		byID[l.ID] = l
	}

	order, err := e.ranking.Rank(ctx, req.UserID, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("ranking candidates: %w", err)
	}

	merged, ranked := MergeRanked(candidateIDs, order, limit)
	listings := make([]models.Listing, len(merged))
	for i, id := range merged {
		listings[i] = byID[id]
	}

	e.logger.Debug().
		Str("user_id", req.UserID).
		Int("pool", len(pool)).
		Int("eligible", len(eligible)).
		Int("returned", len(listings)).
		Int("ranked", ranked).
		Msg("Recommendation pipeline completed")

	return &Response{
		Listings:        listings,
		TotalCandidates: len(eligible),
		Ranked:          ranked,
	}, nil
}

// clampLimit normalizes the requested result count: non-positive values use
// the default, values above the maximum are clamped.
func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		return e.cfg.MaxLimit
	}
	return limit
}
