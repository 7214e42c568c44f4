// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import (
	"context"

	"github.com/loftmatch/loftmatch/internal/models"
)

// Note: collaborator interfaces are declared here, on the consumer side, so
// the pipeline has no dependency on the storage or client packages that
// implement them.

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	// Resolve returns the coordinates for the address, or an error if the
	// address cannot be resolved.
	Resolve(ctx context.Context, address string) (models.Coordinates, error)
}

// RelationSource lists the listings a user has already been shown or acted
// on. These form the exclusion set for recommendations.
type RelationSource interface {
	AllRelations(ctx context.Context, userID string) ([]models.Relation, error)
}

// CandidateSource queries the listing pool. The source may pre-apply the
// criteria and exclusion list (the storage layer does); the pipeline
// re-filters regardless, so the contract only requires a candidate superset
// of at most limit listings.
type CandidateSource interface {
	CandidateListings(ctx context.Context, criteria models.Filters, excludedIDs []int64, limit int) ([]models.Listing, error)
}

// RankingSource obtains a preference ordering over candidate listing IDs
// from the external relevance service. The returned order may contain IDs
// outside the candidate set and may cover only part of it.
type RankingSource interface {
	Rank(ctx context.Context, userID string, candidateIDs []int64) ([]int64, error)
}

// Request is a recommendation request.
type Request struct {
	// UserID is the user to recommend listings to.
	UserID string `json:"user_id"`

	// Filters is the user-supplied search criteria, including the
	// reference location.
	Filters models.Filters `json:"filters"`

	// Limit is the number of listings to return. Non-positive values use
	// the configured default; values above the configured maximum are
	// clamped.
	Limit int `json:"limit,omitempty"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Listings is the ranked short-list, best match first.
	Listings []models.Listing `json:"listings"`

	// TotalCandidates is the number of eligible candidates considered
	// before ranking and truncation.
	TotalCandidates int `json:"total_candidates"`

	// Ranked is the number of returned listings placed by the external
	// ranking; the remainder were appended unranked.
	Ranked int `json:"ranked"`
}
