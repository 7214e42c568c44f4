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
	"strings"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/logging"
)

// ElectricityRateClient fetches the live electricity price from the energy
// rate API. It implements energy.RateSource.
type ElectricityRateClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[httpResult]
	logger  zerolog.Logger
}

// rateResponse is the rate API payload. The price per kWh of the base
// subscription option lives at options.base.prix_kWh.
type rateResponse struct {
	Error   string `json:"error,omitempty"`
	Options struct {
		Base struct {
			PrixKwh float64 `json:"prix_kWh"`
		} `json:"base"`
	} `json:"options"`
}

// NewElectricityRateClient creates a rate client from configuration.
func NewElectricityRateClient(cfg *config.EnergyConfig) *ElectricityRateClient {
	return &ElectricityRateClient{
		baseURL: strings.TrimSuffix(cfg.RateURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      newCircuitBreaker("electricity-rate"),
		logger:  logging.Logger().With().Str("component", "rate-client").Logger(),
	}
}

// RatePerKwh returns the current electricity price per kWh for the tariff.
//
// Error mapping: 403 responses become apperr.ErrForbidden, payloads with an
// error field become apperr.ErrBadRequest, everything else non-2xx and all
// transport failures become apperr.ErrUnavailable.
func (c *ElectricityRateClient) RatePerKwh(ctx context.Context, tariff string) (float64, error) {
	endpoint := fmt.Sprintf("%s/tarifs?nom_tarif=%s", c.baseURL, url.QueryEscape(tariff))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	result, err := executeRequest(c.cb, c.http, "electricity-rate", req)
	if err != nil {
		return 0, err
	}

	switch {
	case result.status == http.StatusForbidden:
		return 0, fmt.Errorf("rate API refused tariff %q: %w", tariff, apperr.ErrForbidden)
	case result.status < 200 || result.status > 299:
		return 0, fmt.Errorf("rate API returned status %d: %w", result.status, apperr.ErrUnavailable)
	}

	var payload rateResponse
	if err := json.Unmarshal(result.body, &payload); err != nil {
		return 0, fmt.Errorf("decoding rate response: %v: %w", err, apperr.ErrUnavailable)
	}
	if payload.Error != "" {
		return 0, fmt.Errorf("rate API error %q: %w", payload.Error, apperr.ErrBadRequest)
	}
	if payload.Options.Base.PrixKwh <= 0 {
		return 0, fmt.Errorf("rate API returned non-positive price for tariff %q: %w", tariff, apperr.ErrUnavailable)
	}

	c.logger.Debug().
		Str("tariff", tariff).
		Float64("price_per_kwh", payload.Options.Base.PrixKwh).
		Msg("Fetched electricity rate")

	return payload.Options.Base.PrixKwh, nil
}
