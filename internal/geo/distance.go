// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package geo computes great-circle distances between coordinates.
package geo

import (
	"math"

	"github.com/loftmatch/loftmatch/internal/models"
)

// Config holds the constants of the distance calculation. Injected rather
// than package-level so tests can override the radius.
type Config struct {
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	// Default: 6371.
	EarthRadiusKm float64
}

// DefaultConfig returns the production distance configuration.
func DefaultConfig() Config {
	return Config{EarthRadiusKm: 6371.0}
}

// Calculator computes great-circle distances. It is stateless and safe for
// concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator. A zero radius falls back to the
// default.
func NewCalculator(cfg Config) *Calculator {
	if cfg.EarthRadiusKm <= 0 {
		cfg.EarthRadiusKm = DefaultConfig().EarthRadiusKm
	}
	return &Calculator{cfg: cfg}
}

// Distance returns the Haversine great-circle distance in kilometers between
// origin and destination.
//
// Inputs are taken as plain decimal degrees. NaN or out-of-range coordinates
// propagate as NaN in the result; the function never panics and never
// returns an error.
func (c *Calculator) Distance(origin, destination models.Coordinates) float64 {
	lat1 := origin.Lat * math.Pi / 180.0
	lon1 := origin.Lon * math.Pi / 180.0
	lat2 := destination.Lat * math.Pi / 180.0
	lon2 := destination.Lon * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	ch := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c.cfg.EarthRadiusKm * ch
}
