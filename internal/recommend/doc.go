// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package recommend implements the candidate-selection pipeline that turns a
// user's search filters into a ranked short-list of unseen listings.
//
// The pipeline is an explicit sequence of typed steps, each a pure function
// of its inputs plus at most one collaborator call:
//
//	geocode reference -> fetch relations -> query candidates ->
//	filter -> external ranking -> merge -> materialize
//
// The filtering and ranking steps (CandidateFilter, MergeRanked) are pure
// and stateless; only the Engine orchestration performs I/O. Collaborators
// are consumed through narrow interfaces so the pipeline is testable without
// any network or storage.
package recommend
