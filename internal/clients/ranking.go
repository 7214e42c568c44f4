// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package clients

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/logging"
)

// RankingClient asks the external relevance service to order candidate
// listings for a user. It implements recommend.RankingSource.
type RankingClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[httpResult]
	logger  zerolog.Logger
}

type rankRequest struct {
	UserID     string  `json:"user_id"`
	ListingIDs []int64 `json:"listing_ids"`
}

type rankResponse struct {
	ListingIDs []int64 `json:"listing_ids"`
}

// NewRankingClient creates a ranking client from configuration.
func NewRankingClient(cfg *config.RankingConfig) *RankingClient {
	return &RankingClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      newCircuitBreaker("ranking"),
		logger:  logging.Logger().With().Str("component", "ranking-client").Logger(),
	}
}

// Rank returns the service's preference order over the candidate IDs. The
// order may cover only part of the candidates; the pipeline pads the rest.
func (c *RankingClient) Rank(ctx context.Context, userID string, candidateIDs []int64) ([]int64, error) {
	body, err := json.Marshal(rankRequest{UserID: userID, ListingIDs: candidateIDs})
	if err != nil {
		return nil, fmt.Errorf("encoding rank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building rank request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	result, err := executeRequest(c.cb, c.http, "ranking", req)
	if err != nil {
		return nil, err
	}
	if result.status < 200 || result.status > 299 {
		return nil, fmt.Errorf("ranking service returned status %d: %w", result.status, apperr.ErrUnavailable)
	}

	var payload rankResponse
	if err := json.Unmarshal(result.body, &payload); err != nil {
		return nil, fmt.Errorf("decoding rank response: %v: %w", err, apperr.ErrUnavailable)
	}

	c.logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidateIDs)).
		Int("ranked", len(payload.ListingIDs)).
		Msg("Fetched ranking")

	return payload.ListingIDs, nil
}
