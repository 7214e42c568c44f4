// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loftmatch/loftmatch/internal/auth"
	"github.com/loftmatch/loftmatch/internal/models"
)

// listingPayload is the create/update request body. Owner, identifier and
// derived fields are never client-settable.
type listingPayload struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Location    string `json:"location" validate:"required,max=500"`
	Type        string `json:"type" validate:"max=50"`

	Surface        float64 `json:"surface" validate:"required,gt=0"`
	Rent           float64 `json:"rent" validate:"required,gt=0"`
	MonthlyCharges float64 `json:"monthly_charges" validate:"gte=0"`
	IncludeCharges bool    `json:"include_charges"`

	Rooms         int `json:"number_of_rooms" validate:"gte=0"`
	Bedrooms      int `json:"number_of_bedrooms" validate:"gte=0"`
	Bathrooms     int `json:"number_of_bathrooms" validate:"gte=0"`
	Floor         int `json:"floor" validate:"gte=0"`
	FloorsTotal   int `json:"number_of_floors" validate:"gte=0"`
	ParkingSpaces int `json:"parking_spaces" validate:"gte=0"`

	ConstructionYear int `json:"construction_year" validate:"omitempty,gte=1500,lte=2100"`

	EnergyClass string `json:"energy_class" validate:"max=2"`
	GHGClass    string `json:"ges" validate:"max=2"`
	HeatingType string `json:"heating_type" validate:"max=50"`
	HeatingMode string `json:"heating_mode" validate:"omitempty,oneof=individual collective"`
	Orientation string `json:"orientation" validate:"max=20"`

	Furnished   bool `json:"is_furnished"`
	HasElevator bool `json:"has_elevator"`

	AvailableFrom string `json:"available_from" validate:"omitempty,datetime=2006-01-02"`
}

func (p *listingPayload) toModel() *models.Listing {
	return &models.Listing{
		Name:             p.Name,
		Description:      p.Description,
		Location:         p.Location,
		Type:             p.Type,
		Surface:          p.Surface,
		Rent:             p.Rent,
		MonthlyCharges:   p.MonthlyCharges,
		IncludeCharges:   p.IncludeCharges,
		Rooms:            p.Rooms,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		Floor:            p.Floor,
		FloorsTotal:      p.FloorsTotal,
		ParkingSpaces:    p.ParkingSpaces,
		ConstructionYear: p.ConstructionYear,
		EnergyClass:      p.EnergyClass,
		GHGClass:         p.GHGClass,
		HeatingType:      p.HeatingType,
		HeatingMode:      p.HeatingMode,
		Orientation:      p.Orientation,
		Furnished:        p.Furnished,
		HasElevator:      p.HasElevator,
		AvailableFrom:    p.AvailableFrom,
	}
}

// listingsPage is the paginated list response.
type listingsPage struct {
	Listings []models.Listing `json:"listings"`
	Total    int              `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// CreateListing handles POST /api/v1/listings.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var payload listingPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&payload); apiErr != nil {
		respondJSONError(w, apiErr)
		return
	}

	ownerID := auth.UserIDFromContext(r.Context())
	created, err := h.listings.Create(r.Context(), ownerID, payload.toModel())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, created)
}

// GetListing handles GET /api/v1/listings/{id}.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Listing id must be a positive integer", nil)
		return
	}

	listing, err := h.listings.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, listing)
}

// ListListings handles GET /api/v1/listings with offset/limit pagination.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	offset := getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	limit := getIntParam(r, "limit", h.config.API.DefaultPageSize)
	if limit <= 0 {
		limit = h.config.API.DefaultPageSize
	}
	if limit > h.config.API.MaxPageSize {
		limit = h.config.API.MaxPageSize
	}

	listings, total, err := h.listings.List(r.Context(), offset, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, listingsPage{
		Listings: listings,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// MyListings handles GET /api/v1/me/listings.
func (h *Handler) MyListings(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	listings, err := h.listings.ListByOwner(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, listingsPage{
		Listings: listings,
		Total:    len(listings),
		Limit:    len(listings),
	})
}

// UpdateListing handles PUT /api/v1/listings/{id}. Only the owner may
// update; ownership is checked by the service.
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Listing id must be a positive integer", nil)
		return
	}

	var payload listingPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&payload); apiErr != nil {
		respondJSONError(w, apiErr)
		return
	}

	listing := payload.toModel()
	listing.ID = id

	updated, err := h.listings.Update(r.Context(), auth.UserIDFromContext(r.Context()), listing)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, updated)
}

// DeleteListing handles DELETE /api/v1/listings/{id}.
func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Listing id must be a positive integer", nil)
		return
	}

	if err := h.listings.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}

// ListingCoordinates handles GET /api/v1/listings/{id}/coordinates.
func (h *Handler) ListingCoordinates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Listing id must be a positive integer", nil)
		return
	}

	coords, err := h.listings.Coordinates(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, coords)
}

// estimatePayload is the standalone cost-estimate request body.
type estimatePayload struct {
	EnergyClass string  `json:"energy_class" validate:"max=2"`
	HeatingType string  `json:"heating_type" validate:"max=50"`
	HeatingMode string  `json:"heating_mode" validate:"omitempty,oneof=individual collective"`
	Surface     float64 `json:"surface" validate:"required,gt=0"`
	Rent        float64 `json:"rent" validate:"required,gt=0"`
}

// Estimate handles POST /api/v1/estimate: the monthly cost model without
// creating a listing.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var payload estimatePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&payload); apiErr != nil {
		respondJSONError(w, apiErr)
		return
	}

	cost, err := h.listings.Estimate(r.Context(), models.EnergyAttributes{
		EnergyClass: payload.EnergyClass,
		HeatingType: payload.HeatingType,
		HeatingMode: payload.HeatingMode,
		Surface:     payload.Surface,
		Rent:        payload.Rent,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]float64{"estimated_price": cost})
}
