// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package cache

import (
	"testing"
	"time"

	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/models"
)

func newTestCache(t *testing.T) *GeocodeCache {
	t.Helper()

	c, err := NewGeocodeCache(&config.CacheConfig{
		InMemory: true,
		TTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("NewGeocodeCache() error = %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return c
}

func TestGeocodeCachePutGet(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	want := models.Coordinates{Lat: 48.8566, Lon: 2.3522}

	if err := c.Put("12 Rue de la Paix, Paris", want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.Get("12 Rue de la Paix, Paris")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGeocodeCacheMiss(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)

	_, ok, err := c.Get("never stored")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent key")
	}
}

func TestGeocodeCacheKeyNormalization(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	want := models.Coordinates{Lat: 45.7640, Lon: 4.8357}

	if err := c.Put("  10 Place Bellecour,   Lyon ", want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.Get("10 PLACE BELLECOUR, LYON")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() missed despite equivalent address")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGeocodeCacheOverwrite(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)

	if err := c.Put("addr", models.Coordinates{Lat: 1, Lon: 1}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put("addr", models.Coordinates{Lat: 2, Lon: 2}); err != nil {
		t.Fatalf("Put() second error = %v", err)
	}

	got, ok, err := c.Get("addr")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Lat != 2 || got.Lon != 2 {
		t.Errorf("Get() = %+v, want overwritten value", got)
	}
}
