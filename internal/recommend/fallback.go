// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import (
	"context"

	"github.com/loftmatch/loftmatch/internal/models"
)

// NoRelations is the RelationSource used when no relation graph service is
// configured: nothing is excluded, every user sees the full pool.
type NoRelations struct{}

// AllRelations returns an empty relation set.
func (NoRelations) AllRelations(context.Context, string) ([]models.Relation, error) {
	return nil, nil
}

// PassthroughRanker is the RankingSource used when no relevance service is
// configured. It endorses the candidate order as-is, so results keep the
// pool's recency ordering and every returned listing counts as ranked.
type PassthroughRanker struct{}

// Rank returns the candidate IDs unchanged.
func (PassthroughRanker) Rank(_ context.Context, _ string, candidateIDs []int64) ([]int64, error) {
	return candidateIDs, nil
}
