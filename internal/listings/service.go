// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package listings implements the listing lifecycle: creation with derived
// cost estimation and geocoding, reads, owner-checked updates and deletes.
package listings

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/metrics"
	"github.com/loftmatch/loftmatch/internal/models"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertListing(ctx context.Context, l *models.Listing) error
	GetListing(ctx context.Context, id int64) (*models.Listing, error)
	ListListings(ctx context.Context, offset, limit int) ([]models.Listing, int, error)
	ListingsByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	UpdateListing(ctx context.Context, l *models.Listing) error
	DeleteListing(ctx context.Context, id int64) error
	SetCoordinates(ctx context.Context, listingID int64, coords models.Coordinates) error
	GetCoordinates(ctx context.Context, listingID int64) (models.Coordinates, error)
}

// Estimator computes the fully-loaded monthly cost of a listing.
type Estimator interface {
	EstimateMonthlyCost(ctx context.Context, attrs models.EnergyAttributes) (float64, error)
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (models.Coordinates, error)
}

// RelationRegistrar maintains the listing nodes of the relation graph.
type RelationRegistrar interface {
	RegisterListing(ctx context.Context, listingID int64) error
	UnregisterListing(ctx context.Context, listingID int64) error
}

// Service orchestrates listing operations across the store, the cost
// estimator, the geocoder and the relation graph.
type Service struct {
	store     Store
	estimator Estimator
	geocoder  Geocoder
	relations RelationRegistrar
	logger    zerolog.Logger
}

// NewService creates a listings service. Store and estimator are required;
// geocoder and relations may be nil, which disables the respective step.
func NewService(store Store, estimator Estimator, geocoder Geocoder, relations RelationRegistrar, logger zerolog.Logger) (*Service, error) {
	if store == nil || estimator == nil {
		return nil, fmt.Errorf("listings service requires a store and an estimator")
	}
	return &Service{
		store:     store,
		estimator: estimator,
		geocoder:  geocoder,
		relations: relations,
		logger:    logger.With().Str("component", "listings").Logger(),
	}, nil
}

// Create persists a new listing owned by ownerID. The estimated monthly
// cost is computed before the write; geocoding and relation registration
// happen after it. Geocoding failures do not abort creation, the backfill
// worker resolves them later. A relation registration failure rolls the
// listing back, since recommendations would otherwise never exclude it.
func (s *Service) Create(ctx context.Context, ownerID string, l *models.Listing) (*models.Listing, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("missing owner: %w", apperr.ErrUnauthorized)
	}
	l.OwnerID = ownerID

	cost, err := s.estimator.EstimateMonthlyCost(ctx, l.EnergyAttrs())
	if err != nil {
		return nil, fmt.Errorf("estimating listing cost: %w", err)
	}
	l.EstimatedCost = cost
	metrics.EnergyEstimatesTotal.WithLabelValues(heatingModeLabel(l.HeatingMode)).Inc()

	if err := s.store.InsertListing(ctx, l); err != nil {
		return nil, fmt.Errorf("storing listing: %w", err)
	}

	if s.geocoder != nil {
		coords, err := s.geocoder.Resolve(ctx, l.Location)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("listing_id", l.ID).
				Str("location", l.Location).
				Msg("Geocoding failed at creation, deferring to backfill")
		} else if err := s.store.SetCoordinates(ctx, l.ID, coords); err != nil {
			s.logger.Warn().Err(err).Int64("listing_id", l.ID).Msg("Storing coordinates failed")
		} else {
			l.Coordinates = &coords
		}
	}

	if s.relations != nil {
		if err := s.relations.RegisterListing(ctx, l.ID); err != nil {
			// Without a graph node the listing can never be excluded from
			// recommendations, so roll the creation back.
			if delErr := s.store.DeleteListing(ctx, l.ID); delErr != nil {
				s.logger.Error().
					Err(delErr).
					Int64("listing_id", l.ID).
					Msg("Rollback after relation registration failure also failed")
			}
			return nil, fmt.Errorf("registering listing in relation graph: %w", err)
		}
	}

	s.logger.Info().
		Int64("listing_id", l.ID).
		Str("owner_id", ownerID).
		Float64("estimated_cost", l.EstimatedCost).
		Msg("Listing created")

	return l, nil
}

// Get returns a listing by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Listing, error) {
	return s.store.GetListing(ctx, id)
}

// List returns one page of all listings together with the total count.
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.Listing, int, error) {
	return s.store.ListListings(ctx, offset, limit)
}

// ListByOwner returns the listings owned by ownerID.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	return s.store.ListingsByOwner(ctx, ownerID)
}

// Coordinates returns the geocoded position of a listing.
func (s *Service) Coordinates(ctx context.Context, listingID int64) (models.Coordinates, error) {
	return s.store.GetCoordinates(ctx, listingID)
}

// Estimate computes the fully-loaded monthly cost for the given attributes
// without persisting anything.
func (s *Service) Estimate(ctx context.Context, attrs models.EnergyAttributes) (float64, error) {
	cost, err := s.estimator.EstimateMonthlyCost(ctx, attrs)
	if err != nil {
		return 0, err
	}
	metrics.EnergyEstimatesTotal.WithLabelValues(heatingModeLabel(attrs.HeatingMode)).Inc()
	return cost, nil
}

// Update rewrites a listing's mutable fields and re-estimates its cost.
// Only the owner may update a listing; anyone else gets Unauthorized.
func (s *Service) Update(ctx context.Context, userID string, l *models.Listing) (*models.Listing, error) {
	existing, err := s.store.GetListing(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != userID {
		return nil, fmt.Errorf("user %s does not own listing %d: %w", userID, l.ID, apperr.ErrUnauthorized)
	}

	l.OwnerID = existing.OwnerID
	l.CreatedAt = existing.CreatedAt

	cost, err := s.estimator.EstimateMonthlyCost(ctx, l.EnergyAttrs())
	if err != nil {
		return nil, fmt.Errorf("re-estimating listing cost: %w", err)
	}
	l.EstimatedCost = cost
	metrics.EnergyEstimatesTotal.WithLabelValues(heatingModeLabel(l.HeatingMode)).Inc()

	if err := s.store.UpdateListing(ctx, l); err != nil {
		return nil, err
	}

	// A changed address invalidates the stored coordinates; re-resolve
	// inline and fall back to the backfill worker on failure.
	if s.geocoder != nil && l.Location != existing.Location {
		if coords, err := s.geocoder.Resolve(ctx, l.Location); err != nil {
			s.logger.Warn().Err(err).Int64("listing_id", l.ID).Msg("Re-geocoding failed after address change")
		} else if err := s.store.SetCoordinates(ctx, l.ID, coords); err != nil {
			s.logger.Warn().Err(err).Int64("listing_id", l.ID).Msg("Storing coordinates failed")
		} else {
			l.Coordinates = &coords
		}
	}

	s.logger.Info().Int64("listing_id", l.ID).Msg("Listing updated")
	return l, nil
}

// Delete removes a listing. Only the owner may delete; anyone else gets
// Forbidden. The relation graph node is removed best-effort.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	existing, err := s.store.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return fmt.Errorf("user %s does not own listing %d: %w", userID, id, apperr.ErrForbidden)
	}

	if err := s.store.DeleteListing(ctx, id); err != nil {
		return err
	}

	if s.relations != nil {
		if err := s.relations.UnregisterListing(ctx, id); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn().Err(err).Int64("listing_id", id).Msg("Removing relation graph node failed")
		}
	}

	s.logger.Info().Int64("listing_id", id).Msg("Listing deleted")
	return nil
}

// heatingModeLabel normalizes the heating mode for the metrics label.
// Missing modes count as individual, matching the cost model's treatment.
func heatingModeLabel(mode string) string {
	if mode == models.HeatingModeCollective {
		return models.HeatingModeCollective
	}
	return models.HeatingModeIndividual
}
