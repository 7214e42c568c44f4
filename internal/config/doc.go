// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

/*
Package config provides centralized configuration management for Loftmatch.

Configuration is loaded with Koanf in three layers, later layers overriding
earlier ones:

 1. Built-in defaults
 2. Optional YAML config file (CONFIG_PATH or the default search paths)
 3. Environment variables

# Configuration Structure

The configuration is organized into logical groups:

  - ServerConfig: HTTP server settings (host, port, timeouts)
  - DatabaseConfig: DuckDB path and performance tuning
  - CacheConfig: Badger coordinates cache
  - SecurityConfig: JWT authentication and rate limits
  - LoggingConfig: structured logging (level, format)
  - RecommendConfig: recommendation pipeline parameters
  - EnergyConfig: energy cost estimation and electricity rate provider
  - GeocoderConfig: address resolution provider
  - RelationsConfig, RankingConfig: external collaborator services
  - WorkerConfig: background geocode backfill
  - APIConfig: pagination limits

# Environment Variables

Common variables:

  - HTTP_HOST, HTTP_PORT: bind address and port (default 0.0.0.0:3000)
  - DUCKDB_PATH: database file location
  - JWT_SECRET: token signing secret (required in production)
  - LOG_LEVEL, LOG_FORMAT: logging controls
  - GEOCODER_URL, ENERGY_RATE_URL, RELATIONS_URL, RANKING_URL: upstreams

See envTransformFunc in koanf.go for the full mapping.
*/
package config
