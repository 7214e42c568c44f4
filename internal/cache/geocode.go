// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package cache provides a BadgerDB-backed cache for geocoding results.
// Geocoding providers are slow and rate limited; addresses rarely move, so
// resolved coordinates are kept with a long TTL.
package cache

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/models"
)

const geocodeKeyPrefix = "geocode:"

// GeocodeCache stores resolved address coordinates in BadgerDB with a TTL.
type GeocodeCache struct {
	db  *badger.DB
	ttl time.Duration
}

// NewGeocodeCache opens the cache database. When cfg.InMemory is set the
// cache lives in memory only; tests use this mode.
func NewGeocodeCache(cfg *config.CacheConfig) (*GeocodeCache, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger's own logger is noisy at INFO; the service logs cache errors
	// where they happen.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &GeocodeCache{db: db, ttl: ttl}, nil
}

// Get returns the cached coordinates for an address. The second return
// value reports whether the address was present and unexpired.
func (c *GeocodeCache) Get(address string) (models.Coordinates, bool, error) {
	var coords models.Coordinates

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(address))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &coords)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Coordinates{}, false, nil
	}
	if err != nil {
		return models.Coordinates{}, false, fmt.Errorf("failed to read cached coordinates: %w", err)
	}

	return coords, true, nil
}

// Put stores the coordinates for an address with the configured TTL.
func (c *GeocodeCache) Put(address string, coords models.Coordinates) error {
	data, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("failed to marshal coordinates: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(address), data).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to cache coordinates: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *GeocodeCache) Close() error {
	return c.db.Close()
}

// cacheKey normalizes an address into a cache key. Case and surrounding
// whitespace do not change where an address is.
func cacheKey(address string) []byte {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	return []byte(geocodeKeyPrefix + normalized)
}
