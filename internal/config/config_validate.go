// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateUpstreams(); err != nil {
		return err
	}
	if err := c.validateWorker(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging, or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	// A JWT secret is mandatory in production; development may run open.
	if c.Server.Environment == "production" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQS must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.MaxDistanceKm <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_DISTANCE_KM must be positive, got %f", c.Recommend.MaxDistanceKm)
	}
	if c.Recommend.OverfetchFactor < 1 {
		return fmt.Errorf("RECOMMEND_OVERFETCH_FACTOR must be at least 1, got %d", c.Recommend.OverfetchFactor)
	}
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be positive, got %d", c.Recommend.DefaultLimit)
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be >= RECOMMEND_DEFAULT_LIMIT, got %d < %d",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	return nil
}

func (c *Config) validateUpstreams() error {
	if err := validateHTTPURL(c.Energy.RateURL, "ENERGY_RATE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Geocoder.URL, "GEOCODER_URL"); err != nil {
		return err
	}
	if c.Geocoder.RatePerSecond <= 0 {
		return fmt.Errorf("GEOCODER_RATE_PER_SECOND must be positive, got %f", c.Geocoder.RatePerSecond)
	}
	// Relations and ranking URLs are optional; when empty the service falls
	// back to local implementations.
	if c.Relations.URL != "" {
		if err := validateHTTPURL(c.Relations.URL, "RELATIONS_URL"); err != nil {
			return err
		}
	}
	if c.Ranking.URL != "" {
		if err := validateHTTPURL(c.Ranking.URL, "RANKING_URL"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateWorker() error {
	if c.Worker.GeocodeInterval <= 0 {
		return fmt.Errorf("GEOCODE_INTERVAL must be positive, got %s", c.Worker.GeocodeInterval)
	}
	if c.Worker.GeocodeBatchSize < 1 {
		return fmt.Errorf("GEOCODE_BATCH_SIZE must be positive, got %d", c.Worker.GeocodeBatchSize)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE, got %d < %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that value is a well-formed http or https URL.
func validateHTTPURL(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
