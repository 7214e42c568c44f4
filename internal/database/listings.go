// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/models"
)

// listingColumns is the SELECT column list shared by all listing reads.
// The LEFT JOIN keeps listings whose geocoding has not succeeded yet.
const listingColumns = `
	l.id, l.owner_id, l.name, l.description, l.location, l.type,
	l.surface, l.rent, l.monthly_charges, l.include_charges,
	l.rooms, l.bedrooms, l.bathrooms, l.floor, l.floors_total, l.parking_spaces,
	l.construction_year, l.energy_class, l.ghg_class,
	l.heating_type, l.heating_mode, l.orientation,
	l.is_furnished, l.has_elevator, l.available_from,
	l.estimated_cost, l.created_at,
	c.lat, c.lon`

const listingFrom = ` FROM listings l LEFT JOIN listing_coordinates c ON c.listing_id = l.id`

// scanListing scans one joined listing row.
func scanListing(scan func(dest ...any) error) (models.Listing, error) {
	var l models.Listing
	var lat, lon sql.NullFloat64

	err := scan(
		&l.ID, &l.OwnerID, &l.Name, &l.Description, &l.Location, &l.Type,
		&l.Surface, &l.Rent, &l.MonthlyCharges, &l.IncludeCharges,
		&l.Rooms, &l.Bedrooms, &l.Bathrooms, &l.Floor, &l.FloorsTotal, &l.ParkingSpaces,
		&l.ConstructionYear, &l.EnergyClass, &l.GHGClass,
		&l.HeatingType, &l.HeatingMode, &l.Orientation,
		&l.Furnished, &l.HasElevator, &l.AvailableFrom,
		&l.EstimatedCost, &l.CreatedAt,
		&lat, &lon,
	)
	if err != nil {
		return models.Listing{}, err
	}

	if lat.Valid && lon.Valid {
		l.Coordinates = &models.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	return l, nil
}

// InsertListing inserts a new listing and assigns its identifier and
// creation timestamp. Coordinates are stored separately via SetCoordinates.
func (db *DB) InsertListing(ctx context.Context, l *models.Listing) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO listings (
		owner_id, name, description, location, type,
		surface, rent, monthly_charges, include_charges,
		rooms, bedrooms, bathrooms, floor, floors_total, parking_spaces,
		construction_year, energy_class, ghg_class,
		heating_type, heating_mode, orientation,
		is_furnished, has_elevator, available_from,
		estimated_cost, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id`

	err := db.conn.QueryRowContext(ctx, query,
		l.OwnerID, l.Name, l.Description, l.Location, l.Type,
		l.Surface, l.Rent, l.MonthlyCharges, l.IncludeCharges,
		l.Rooms, l.Bedrooms, l.Bathrooms, l.Floor, l.FloorsTotal, l.ParkingSpaces,
		l.ConstructionYear, l.EnergyClass, l.GHGClass,
		l.HeatingType, l.HeatingMode, l.Orientation,
		l.Furnished, l.HasElevator, l.AvailableFrom,
		l.EstimatedCost, l.CreatedAt,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// GetListing returns a single listing by ID, with coordinates when known.
// Returns apperr.ErrNotFound when the listing does not exist.
func (db *DB) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	query := `SELECT` + listingColumns + listingFrom + ` WHERE l.id = ?`

	row := db.conn.QueryRowContext(ctx, query, id)
	l, err := scanListing(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return &l, nil
}

// ListListings returns one page of listings ordered by creation time,
// newest first, together with the total listing count.
func (db *DB) ListListings(ctx context.Context, offset, limit int) ([]models.Listing, int, error) {
	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	query := `SELECT` + listingColumns + listingFrom + ` ORDER BY l.created_at DESC, l.id DESC LIMIT ? OFFSET ?`
	rows, err := db.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer closeWithLog(rows, "listings rows")

	listings, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ListingsByOwner returns all listings belonging to the owner, newest first.
func (db *DB) ListingsByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	query := `SELECT` + listingColumns + listingFrom + ` WHERE l.owner_id = ? ORDER BY l.created_at DESC, l.id DESC`
	rows, err := db.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner listings: %w", err)
	}
	defer closeWithLog(rows, "owner listings rows")

	return collectListings(rows)
}

// UpdateListing rewrites all mutable fields of a listing. Returns
// apperr.ErrNotFound when the listing does not exist. The owner check
// belongs to the service layer, not here.
func (db *DB) UpdateListing(ctx context.Context, l *models.Listing) error {
	query := `UPDATE listings SET
		name = ?, description = ?, location = ?, type = ?,
		surface = ?, rent = ?, monthly_charges = ?, include_charges = ?,
		rooms = ?, bedrooms = ?, bathrooms = ?, floor = ?, floors_total = ?, parking_spaces = ?,
		construction_year = ?, energy_class = ?, ghg_class = ?,
		heating_type = ?, heating_mode = ?, orientation = ?,
		is_furnished = ?, has_elevator = ?, available_from = ?,
		estimated_cost = ?
	WHERE id = ?`

	res, err := db.conn.ExecContext(ctx, query,
		l.Name, l.Description, l.Location, l.Type,
		l.Surface, l.Rent, l.MonthlyCharges, l.IncludeCharges,
		l.Rooms, l.Bedrooms, l.Bathrooms, l.Floor, l.FloorsTotal, l.ParkingSpaces,
		l.ConstructionYear, l.EnergyClass, l.GHGClass,
		l.HeatingType, l.HeatingMode, l.Orientation,
		l.Furnished, l.HasElevator, l.AvailableFrom,
		l.EstimatedCost,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %d: %w", l.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for listing %d: %w", l.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("listing %d: %w", l.ID, apperr.ErrNotFound)
	}
	return nil
}

// DeleteListing removes a listing and its coordinates. Returns
// apperr.ErrNotFound when the listing does not exist.
func (db *DB) DeleteListing(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM listing_coordinates WHERE listing_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete listing coordinates %d: %w", id, err)
	}

	res, err := db.conn.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for listing %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("listing %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// SetCoordinates stores or replaces the geocoded position of a listing.
func (db *DB) SetCoordinates(ctx context.Context, listingID int64, coords models.Coordinates) error {
	query := `INSERT INTO listing_coordinates (listing_id, lat, lon, resolved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (listing_id) DO UPDATE SET lat = excluded.lat, lon = excluded.lon, resolved_at = excluded.resolved_at`

	if _, err := db.conn.ExecContext(ctx, query, listingID, coords.Lat, coords.Lon, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set coordinates for listing %d: %w", listingID, err)
	}
	return nil
}

// GetCoordinates returns the stored coordinates of a listing. Returns
// apperr.ErrNotFound when no coordinates have been resolved yet.
func (db *DB) GetCoordinates(ctx context.Context, listingID int64) (models.Coordinates, error) {
	var c models.Coordinates
	err := db.conn.QueryRowContext(ctx,
		`SELECT lat, lon FROM listing_coordinates WHERE listing_id = ?`, listingID).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Coordinates{}, fmt.Errorf("coordinates for listing %d: %w", listingID, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to get coordinates for listing %d: %w", listingID, err)
	}
	return c, nil
}

// ListingsWithoutCoordinates returns up to limit listings whose geocoding
// has not succeeded yet, oldest first. The backfill worker scans these.
func (db *DB) ListingsWithoutCoordinates(ctx context.Context, limit int) ([]models.Listing, error) {
	query := `SELECT` + listingColumns + listingFrom + ` WHERE c.listing_id IS NULL ORDER BY l.created_at ASC, l.id ASC LIMIT ?`
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ungeocoded listings: %w", err)
	}
	defer closeWithLog(rows, "ungeocoded listings rows")

	return collectListings(rows)
}

// CandidateListings returns up to limit listings matching the criteria,
// skipping the excluded IDs. Zero-valued criteria bounds are not applied.
// The result is a candidate pool, not a final answer; the recommendation
// pipeline re-filters for proximity and criteria.
func (db *DB) CandidateListings(ctx context.Context, criteria models.Filters, excludedIDs []int64, limit int) ([]models.Listing, error) {
	var (
		conditions []string
		args       []any
	)

	if criteria.MaxRent > 0 {
		conditions = append(conditions, "l.rent <= ?")
		args = append(args, criteria.MaxRent)
	}
	if criteria.MinSurface > 0 {
		conditions = append(conditions, "l.surface >= ?")
		args = append(args, criteria.MinSurface)
	}
	if criteria.MaxSurface > 0 {
		conditions = append(conditions, "l.surface <= ?")
		args = append(args, criteria.MaxSurface)
	}
	if criteria.Furnished != nil {
		conditions = append(conditions, "l.is_furnished = ?")
		args = append(args, *criteria.Furnished)
	}
	if len(excludedIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(excludedIDs)), ", ")
		conditions = append(conditions, fmt.Sprintf("l.id NOT IN (%s)", placeholders))
		for _, id := range excludedIDs {
			args = append(args, id)
		}
	}

	query := `SELECT` + listingColumns + listingFrom
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY l.created_at DESC, l.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate listings: %w", err)
	}
	defer closeWithLog(rows, "candidate listings rows")

	return collectListings(rows)
}

// collectListings drains a joined listing result set.
func collectListings(rows *sql.Rows) ([]models.Listing, error) {
	listings := make([]models.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return listings, nil
}
