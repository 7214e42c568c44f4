// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with a timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS listings_id_seq`,

		// Listings table. Coordinates live in a separate table since
		// geocoding is asynchronous and may never succeed.
		`CREATE TABLE IF NOT EXISTS listings (
			id BIGINT PRIMARY KEY DEFAULT nextval('listings_id_seq'),
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			surface DOUBLE NOT NULL DEFAULT 0,
			rent DOUBLE NOT NULL DEFAULT 0,
			monthly_charges DOUBLE NOT NULL DEFAULT 0,
			include_charges BOOLEAN NOT NULL DEFAULT FALSE,
			rooms INTEGER NOT NULL DEFAULT 0,
			bedrooms INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			floor INTEGER NOT NULL DEFAULT 0,
			floors_total INTEGER NOT NULL DEFAULT 0,
			parking_spaces INTEGER NOT NULL DEFAULT 0,
			construction_year INTEGER NOT NULL DEFAULT 0,
			energy_class TEXT NOT NULL DEFAULT '',
			ghg_class TEXT NOT NULL DEFAULT '',
			heating_type TEXT NOT NULL DEFAULT '',
			heating_mode TEXT NOT NULL DEFAULT '',
			orientation TEXT NOT NULL DEFAULT '',
			is_furnished BOOLEAN NOT NULL DEFAULT FALSE,
			has_elevator BOOLEAN NOT NULL DEFAULT FALSE,
			available_from TEXT NOT NULL DEFAULT '',
			estimated_cost DOUBLE NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS listing_coordinates (
			listing_id BIGINT PRIMARY KEY,
			lat DOUBLE NOT NULL,
			lon DOUBLE NOT NULL,
			resolved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// createIndexes creates indexes for common query patterns: owner-scoped
// listings and the candidate query's rent/surface/furnished predicates.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_rent ON listings(rent)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_surface ON listings(surface)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_furnished ON listings(is_furnished)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_created ON listings(created_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
