// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

// MergeRanked materializes an external preference order against a candidate
// set, in two phases:
//
//  1. the subsequence of externalOrder restricted to candidateIDs, in
//     externalOrder's relative order (the ranked prefix);
//  2. remaining candidates not covered by the external order, appended in
//     their original, stable order.
//
// The result contains no duplicates and at most count identifiers. When
// count exceeds the candidate set, all candidates are returned; identifiers
// in externalOrder that are not candidates are ignored. The returned ranked
// value is the length of the ranked prefix actually included.
func MergeRanked(candidateIDs, externalOrder []int64, count int) (ids []int64, ranked int) {
	if count <= 0 || len(candidateIDs) == 0 {
		return []int64{}, 0
	}
	if count > len(candidateIDs) {
		count = len(candidateIDs)
	}

	candidates := make(map[int64]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		candidates[id] = struct{}{}
	}

	ids = make([]int64, 0, count)
	seen := make(map[int64]struct{}, count)

	for _, id := range externalOrder {
		if len(ids) == count {
			break
		}
		if _, ok := candidates[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		ids = append(ids, id)
		seen[id] = struct{}{}
	}
	ranked = len(ids)

	for _, id := range candidateIDs {
		if len(ids) == count {
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		ids = append(ids, id)
		seen[id] = struct{}{}
	}

	return ids, ranked
}
