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
	"net/url"
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/logging"
	"github.com/loftmatch/loftmatch/internal/models"
)

// RelationsClient talks to the relation graph service that records which
// listings a user has already been shown or acted on. It implements
// recommend.RelationSource.
type RelationsClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[httpResult]
	logger  zerolog.Logger
}

// NewRelationsClient creates a relations client from configuration.
func NewRelationsClient(cfg *config.RelationsConfig) *RelationsClient {
	return &RelationsClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      newCircuitBreaker("relations"),
		logger:  logging.Logger().With().Str("component", "relations-client").Logger(),
	}
}

// AllRelations returns every relation edge the user has.
func (c *RelationsClient) AllRelations(ctx context.Context, userID string) ([]models.Relation, error) {
	endpoint := fmt.Sprintf("%s/relations/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building relations request: %w", err)
	}
	c.setHeaders(req)

	result, err := executeRequest(c.cb, c.http, "relations", req)
	if err != nil {
		return nil, err
	}

	switch {
	case result.status == http.StatusNotFound:
		// An unknown user simply has no relations yet.
		return []models.Relation{}, nil
	case result.status < 200 || result.status > 299:
		return nil, fmt.Errorf("relation service returned status %d: %w", result.status, apperr.ErrUnavailable)
	}

	var relations []models.Relation
	if err := json.Unmarshal(result.body, &relations); err != nil {
		return nil, fmt.Errorf("decoding relations response: %v: %w", err, apperr.ErrUnavailable)
	}
	return relations, nil
}

// RegisterListing creates the graph node for a new listing so relations can
// attach to it.
func (c *RelationsClient) RegisterListing(ctx context.Context, listingID int64) error {
	body, err := json.Marshal(map[string]int64{"listing_id": listingID})
	if err != nil {
		return fmt.Errorf("encoding listing node: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/nodes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building listing node request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	result, err := executeRequest(c.cb, c.http, "relations", req)
	if err != nil {
		return err
	}
	if result.status < 200 || result.status > 299 {
		return fmt.Errorf("relation service rejected listing node with status %d: %w", result.status, apperr.ErrUnavailable)
	}

	c.logger.Debug().Int64("listing_id", listingID).Msg("Registered listing node")
	return nil
}

// UnregisterListing removes the graph node of a deleted listing, along with
// its relation edges. Missing nodes are not an error.
func (c *RelationsClient) UnregisterListing(ctx context.Context, listingID int64) error {
	endpoint := fmt.Sprintf("%s/nodes/%d", c.baseURL, listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building listing node delete request: %w", err)
	}
	c.setHeaders(req)

	result, err := executeRequest(c.cb, c.http, "relations", req)
	if err != nil {
		return err
	}
	if result.status != http.StatusNotFound && (result.status < 200 || result.status > 299) {
		return fmt.Errorf("relation service rejected listing node delete with status %d: %w", result.status, apperr.ErrUnavailable)
	}
	return nil
}

func (c *RelationsClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
