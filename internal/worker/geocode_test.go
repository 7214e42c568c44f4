// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/logging"
	"github.com/loftmatch/loftmatch/internal/models"
)

type stubStore struct {
	pending  []models.Listing
	queryErr error

	saved   map[int64]models.Coordinates
	saveErr error
}

func (s *stubStore) ListingsWithoutCoordinates(_ context.Context, limit int) ([]models.Listing, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *stubStore) SetCoordinates(_ context.Context, listingID int64, coords models.Coordinates) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.saved == nil {
		s.saved = make(map[int64]models.Coordinates)
	}
	s.saved[listingID] = coords
	return nil
}

type stubGeocoder struct {
	coords  map[string]models.Coordinates
	failing map[string]error
	calls   int
}

func (s *stubGeocoder) Resolve(_ context.Context, address string) (models.Coordinates, error) {
	s.calls++
	if err, ok := s.failing[address]; ok {
		return models.Coordinates{}, err
	}
	if c, ok := s.coords[address]; ok {
		return c, nil
	}
	return models.Coordinates{}, fmt.Errorf("address %q: %w", address, apperr.ErrNotFound)
}

func newBackfiller(t *testing.T, store *stubStore, geocoder *stubGeocoder, cfg *config.WorkerConfig) *GeocodeBackfiller {
	t.Helper()
	b, err := NewGeocodeBackfiller(cfg, store, geocoder, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewGeocodeBackfiller: %v", err)
	}
	return b
}

func TestRunOnceResolvesPending(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		pending: []models.Listing{
			{ID: 1, Location: "Paris"},
			{ID: 2, Location: "Lyon"},
			{ID: 3, Location: "nowhere"},
		},
	}
	geocoder := &stubGeocoder{
		coords: map[string]models.Coordinates{
			"Paris": {Lat: 48.85, Lon: 2.35},
			"Lyon":  {Lat: 45.76, Lon: 4.83},
		},
	}

	b := newBackfiller(t, store, geocoder, nil)
	if err := b.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce: %v", err)
	}

	if len(store.saved) != 2 {
		t.Fatalf("saved %d coordinates, want 2", len(store.saved))
	}
	if got := store.saved[1]; got.Lat != 48.85 {
		t.Errorf("listing 1 coords = %+v", got)
	}
	if _, ok := store.saved[3]; ok {
		t.Error("unresolvable listing 3 should not be saved")
	}
}

func TestRunOnceBatchLimit(t *testing.T) {
	t.Parallel()

	var pending []models.Listing
	coords := make(map[string]models.Coordinates)
	for i := 1; i <= 10; i++ {
		addr := fmt.Sprintf("addr-%d", i)
		pending = append(pending, models.Listing{ID: int64(i), Location: addr})
		coords[addr] = models.Coordinates{Lat: float64(i), Lon: float64(i)}
	}

	store := &stubStore{pending: pending}
	geocoder := &stubGeocoder{coords: coords}

	cfg := &config.WorkerConfig{GeocodeInterval: time.Minute, GeocodeBatchSize: 4}
	b := newBackfiller(t, store, geocoder, cfg)

	if err := b.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if geocoder.calls != 4 {
		t.Errorf("geocoder calls = %d, want batch size 4", geocoder.calls)
	}
}

func TestRunOnceQueryError(t *testing.T) {
	t.Parallel()

	store := &stubStore{queryErr: errors.New("db gone")}
	b := newBackfiller(t, store, &stubGeocoder{}, nil)

	if err := b.runOnce(context.Background()); err == nil {
		t.Fatal("expected error from failing query")
	}
}

func TestRunOnceStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		pending: []models.Listing{{ID: 1, Location: "Paris"}, {ID: 2, Location: "Lyon"}},
	}
	geocoder := &stubGeocoder{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newBackfiller(t, store, geocoder, nil)
	if err := b.runOnce(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	b := newBackfiller(t, store, &stubGeocoder{}, &config.WorkerConfig{GeocodeInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- b.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}

func TestRequiredDependencies(t *testing.T) {
	t.Parallel()

	logger := logging.NewTestLogger(io.Discard)
	if _, err := NewGeocodeBackfiller(nil, nil, &stubGeocoder{}, logger); err == nil {
		t.Error("expected error for nil store")
	}
	if _, err := NewGeocodeBackfiller(nil, &stubStore{}, nil, logger); err == nil {
		t.Error("expected error for nil geocoder")
	}
}
