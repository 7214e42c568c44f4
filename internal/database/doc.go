// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

/*
Package database provides DuckDB-backed persistence for listings and their
geocoded coordinates.

The schema has two tables:

  - listings: the property records, created through the listings service
  - listing_coordinates: geocoded positions, written asynchronously by the
    coordinates service and the backfill worker

Coordinates are kept in a separate table because geocoding is asynchronous
and may never succeed; reads LEFT JOIN the two so listings without a
position are still returned, with a nil Coordinates field.

The candidate query used by the recommendation pipeline pre-applies the
user criteria and exclusion list in SQL for efficiency. The pipeline
re-filters the pool regardless, so the query only has to return a superset.
*/
package database
