// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import "fmt"

// Config contains the operational parameters of the recommendation pipeline.
type Config struct {
	// MaxDistanceKm is the proximity radius around the reference location.
	// Default: 30.
	MaxDistanceKm float64 `json:"max_distance_km"`

	// OverfetchFactor multiplies the requested limit when querying
	// candidates, leaving room for ranking and padding losses.
	// Default: 5.
	OverfetchFactor int `json:"overfetch_factor"`

	// DefaultLimit is the result count used when a request does not
	// specify one. Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the requested result count. Default: 50.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxDistanceKm:   30,
		OverfetchFactor: 5,
		DefaultLimit:    10,
		MaxLimit:        50,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxDistanceKm <= 0 {
		return fmt.Errorf("max_distance_km must be positive, got %f", c.MaxDistanceKm)
	}
	if c.OverfetchFactor < 1 {
		return fmt.Errorf("overfetch_factor must be at least 1, got %d", c.OverfetchFactor)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
