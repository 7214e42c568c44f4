// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import (
	"github.com/loftmatch/loftmatch/internal/geo"
	"github.com/loftmatch/loftmatch/internal/models"
)

// CandidateFilter retains the listings that are eligible for ranking:
// not already related to the user, within the proximity radius of the
// reference location, and matching the user's criteria.
//
// The storage layer may have applied some or all of these conditions
// already; the filter is idempotent, so re-filtering a pre-filtered pool
// changes nothing. Output order follows pool order but is not part of the
// contract; ranking happens downstream.
type CandidateFilter struct {
	distance      *geo.Calculator
	maxDistanceKm float64
}

// NewCandidateFilter creates a filter with the given distance calculator and
// proximity radius in kilometers.
func NewCandidateFilter(distance *geo.Calculator, maxDistanceKm float64) *CandidateFilter {
	return &CandidateFilter{distance: distance, maxDistanceKm: maxDistanceKm}
}

// Filter returns the eligible subset of pool. Listings without stored
// coordinates are excluded: their proximity cannot be verified.
func (f *CandidateFilter) Filter(pool []models.Listing, excluded map[int64]struct{}, reference models.Coordinates, criteria models.Filters) []models.Listing {
	out := make([]models.Listing, 0, len(pool))
	for _, l := range pool {
		if _, skip := excluded[l.ID]; skip {
			continue
		}
		if !f.withinRadius(&l, reference) {
			continue
		}
		if !matchesCriteria(&l, criteria) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// withinRadius reports whether the listing's stored coordinates lie within
// the proximity radius of the reference point.
func (f *CandidateFilter) withinRadius(l *models.Listing, reference models.Coordinates) bool {
	if l.Coordinates == nil {
		return false
	}
	return f.distance.Distance(reference, *l.Coordinates) <= f.maxDistanceKm
}

// matchesCriteria reports whether the listing satisfies the user criteria.
// Zero-valued bounds are not applied.
func matchesCriteria(l *models.Listing, criteria models.Filters) bool {
	if criteria.MaxRent > 0 && l.Rent > criteria.MaxRent {
		return false
	}
	if criteria.MinSurface > 0 && l.Surface < criteria.MinSurface {
		return false
	}
	if criteria.MaxSurface > 0 && l.Surface > criteria.MaxSurface {
		return false
	}
	if criteria.Furnished != nil && l.Furnished != *criteria.Furnished {
		return false
	}
	return true
}
