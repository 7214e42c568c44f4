// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package api provides the HTTP surface: Chi routing, request decoding and
// validation, and the JSON response envelope. Handlers delegate to the
// listings service and the recommendation engine and never touch storage
// directly.
package api
