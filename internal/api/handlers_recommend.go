// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package api

import (
	"net/http"
	"time"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/auth"
	"github.com/loftmatch/loftmatch/internal/metrics"
	"github.com/loftmatch/loftmatch/internal/models"
	"github.com/loftmatch/loftmatch/internal/recommend"
)

// recommendPayload is the recommendation request body. The user comes from
// the access token, never from the body.
type recommendPayload struct {
	Filters models.Filters `json:"filters"`
	Limit   int            `json:"limit" validate:"gte=0"`
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var payload recommendPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&payload); apiErr != nil {
		respondJSONError(w, apiErr)
		return
	}
	if payload.Filters.Location == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "filters.location is required", nil)
		return
	}
	if payload.Filters.MaxSurface > 0 && payload.Filters.MinSurface > payload.Filters.MaxSurface {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "filters.min_size must not exceed filters.max_size", nil)
		return
	}

	start := time.Now()
	resp, err := h.recommender.Recommend(r.Context(), recommend.Request{
		UserID:  auth.UserIDFromContext(r.Context()),
		Filters: payload.Filters,
		Limit:   payload.Limit,
	})
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if apperr.IsNotFound(err) {
			metrics.RecommendationRequests.WithLabelValues("empty").Inc()
			respondError(w, http.StatusNotFound, "NO_ELIGIBLE_LISTINGS", "No listings match the given criteria", err)
			return
		}
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		respondServiceError(w, err)
		return
	}

	metrics.RecommendationRequests.WithLabelValues("success").Inc()
	metrics.RecommendationCandidates.Observe(float64(resp.TotalCandidates))

	respondSuccess(w, http.StatusOK, resp)
}
