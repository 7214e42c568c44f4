// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package config

import "time"

// Config is the root configuration for the service. Values are loaded in
// layers: built-in defaults, then an optional YAML file, then environment
// variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Energy    EnergyConfig    `koanf:"energy"`
	Geocoder  GeocoderConfig  `koanf:"geocoder"`
	Relations RelationsConfig `koanf:"relations"`
	Ranking   RankingConfig   `koanf:"ranking"`
	Worker    WorkerConfig    `koanf:"worker"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB connection and tuning settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB worker thread count. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// CacheConfig holds settings for the Badger-backed coordinates cache.
type CacheConfig struct {
	Path string        `koanf:"path"`
	TTL  time.Duration `koanf:"ttl"`

	// InMemory runs Badger without a backing directory. Used by tests.
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig holds authentication and rate limit settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation pipeline parameters.
type RecommendConfig struct {
	MaxDistanceKm   float64 `koanf:"max_distance_km"`
	OverfetchFactor int     `koanf:"overfetch_factor"`
	DefaultLimit    int     `koanf:"default_limit"`
	MaxLimit        int     `koanf:"max_limit"`
}

// EnergyConfig holds energy cost estimation settings.
type EnergyConfig struct {
	// Tariff is the electricity tariff code sent to the rate provider.
	Tariff string `koanf:"tariff"`

	// RateURL is the electricity rate API base URL.
	RateURL string `koanf:"rate_url"`

	Timeout time.Duration `koanf:"timeout"`
}

// GeocoderConfig holds geocoding provider settings.
type GeocoderConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`

	// RatePerSecond limits outbound geocoding requests. Public Nominatim
	// instances require at most one request per second.
	RatePerSecond float64 `koanf:"rate_per_second"`
}

// RelationsConfig holds the user-listing relation graph service settings.
type RelationsConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// RankingConfig holds the external relevance ranking service settings.
type RankingConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// WorkerConfig holds background worker settings.
type WorkerConfig struct {
	// GeocodeInterval is how often the backfill worker scans for listings
	// without coordinates.
	GeocodeInterval time.Duration `koanf:"geocode_interval"`

	// GeocodeBatchSize is the maximum number of listings resolved per scan.
	GeocodeBatchSize int `koanf:"geocode_batch_size"`
}

// APIConfig holds API pagination settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}
