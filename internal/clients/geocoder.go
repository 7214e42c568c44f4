// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/cache"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/logging"
	"github.com/loftmatch/loftmatch/internal/metrics"
	"github.com/loftmatch/loftmatch/internal/models"
)

// userAgent identifies the service to Nominatim, whose usage policy
// requires a meaningful User-Agent.
const userAgent = "loftmatch/1.0 (https://github.com/loftmatch/loftmatch)"

// NominatimClient resolves free-text addresses through a Nominatim
// instance. It implements recommend.Geocoder.
//
// Requests are throttled client-side; the public openstreetmap.org instance
// allows at most one request per second. Resolved addresses are cached so
// repeated lookups skip the network entirely.
type NominatimClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[httpResult]
	limiter *rate.Limiter
	cache   *cache.GeocodeCache
	logger  zerolog.Logger
}

// nominatimResult is one entry of the Nominatim search response. The
// coordinates arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimClient creates a geocoder client. The cache is optional; a
// nil cache disables caching.
func NewNominatimClient(cfg *config.GeocoderConfig, geocodeCache *cache.GeocodeCache) *NominatimClient {
	return &NominatimClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      newCircuitBreaker("geocoder"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		cache:   geocodeCache,
		logger:  logging.Logger().With().Str("component", "geocoder-client").Logger(),
	}
}

// Resolve returns the coordinates of the best match for the address.
// Returns apperr.ErrNotFound when the geocoder has no result for it.
func (c *NominatimClient) Resolve(ctx context.Context, address string) (models.Coordinates, error) {
	if address == "" {
		return models.Coordinates{}, fmt.Errorf("empty address: %w", apperr.ErrBadRequest)
	}

	if c.cache != nil {
		coords, ok, err := c.cache.Get(address)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Geocode cache read failed")
		} else if ok {
			metrics.GeocodeCacheHits.Inc()
			return coords, nil
		}
		metrics.GeocodeCacheMisses.Inc()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, fmt.Errorf("waiting for geocoder rate limit: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	result, err := executeRequest(c.cb, c.http, "geocoder", req)
	if err != nil {
		return models.Coordinates{}, err
	}
	if result.status < 200 || result.status > 299 {
		return models.Coordinates{}, fmt.Errorf("geocoder returned status %d: %w", result.status, apperr.ErrUnavailable)
	}

	var results []nominatimResult
	if err := json.Unmarshal(result.body, &results); err != nil {
		return models.Coordinates{}, fmt.Errorf("decoding geocode response: %v: %w", err, apperr.ErrUnavailable)
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("no geocoding result for %q: %w", address, apperr.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("parsing geocode latitude %q: %w", results[0].Lat, apperr.ErrUnavailable)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("parsing geocode longitude %q: %w", results[0].Lon, apperr.ErrUnavailable)
	}

	coords := models.Coordinates{Lat: lat, Lon: lon}

	if c.cache != nil {
		if err := c.cache.Put(address, coords); err != nil {
			c.logger.Warn().Err(err).Msg("Geocode cache write failed")
		}
	}

	c.logger.Debug().
		Str("address", address).
		Float64("lat", lat).
		Float64("lon", lon).
		Msg("Resolved address")

	return coords, nil
}
