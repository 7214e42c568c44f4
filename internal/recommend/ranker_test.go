// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import (
	"reflect"
	"testing"
)

func TestMergeRanked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []int64
		order      []int64
		count      int
		wantIDs    []int64
		wantRanked int
	}{
		{
			name:       "ranked prefix then stable padding",
			candidates: []int64{1, 2, 3},
			order:      []int64{3, 1},
			count:      3,
			wantIDs:    []int64{3, 1, 2},
			wantRanked: 2,
		},
		{
			name:       "full external order",
			candidates: []int64{1, 2, 3},
			order:      []int64{2, 3, 1},
			count:      3,
			wantIDs:    []int64{2, 3, 1},
			wantRanked: 3,
		},
		{
			name:       "empty external order keeps pool order",
			candidates: []int64{7, 5, 9},
			order:      nil,
			count:      3,
			wantIDs:    []int64{7, 5, 9},
			wantRanked: 0,
		},
		{
			name:       "non-candidate ids in order ignored",
			candidates: []int64{1, 2},
			order:      []int64{42, 2, 99, 1},
			count:      2,
			wantIDs:    []int64{2, 1},
			wantRanked: 2,
		},
		{
			name:       "duplicates in order ignored",
			candidates: []int64{1, 2, 3},
			order:      []int64{2, 2, 2},
			count:      3,
			wantIDs:    []int64{2, 1, 3},
			wantRanked: 1,
		},
		{
			name:       "count truncates ranked prefix",
			candidates: []int64{1, 2, 3, 4},
			order:      []int64{4, 3, 2, 1},
			count:      2,
			wantIDs:    []int64{4, 3},
			wantRanked: 2,
		},
		{
			name:       "count larger than pool returns all",
			candidates: []int64{1, 2},
			order:      []int64{2},
			count:      10,
			wantIDs:    []int64{2, 1},
			wantRanked: 1,
		},
		{
			name:       "zero count",
			candidates: []int64{1, 2},
			order:      []int64{2},
			count:      0,
			wantIDs:    []int64{},
			wantRanked: 0,
		},
		{
			name:       "empty candidates",
			candidates: nil,
			order:      []int64{1, 2},
			count:      5,
			wantIDs:    []int64{},
			wantRanked: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ids, ranked := MergeRanked(tt.candidates, tt.order, tt.count)
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("MergeRanked() ids = %v, want %v", ids, tt.wantIDs)
			}
			if ranked != tt.wantRanked {
				t.Errorf("MergeRanked() ranked = %d, want %d", ranked, tt.wantRanked)
			}
		})
	}
}

func TestMergeRankedNoDuplicates(t *testing.T) {
	t.Parallel()

	candidates := []int64{1, 2, 3, 4, 5}
	order := []int64{5, 3, 5, 3, 1}

	ids, _ := MergeRanked(candidates, order, len(candidates))

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d in %v", id, ids)
		}
		seen[id] = struct{}{}
	}
	if len(ids) != len(candidates) {
		t.Errorf("expected %d ids, got %d", len(candidates), len(ids))
	}
}
