// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package energy estimates the fully-loaded monthly cost of a listing
// (rent plus utilities) from its energy attributes and a live per-kWh
// electricity rate.
package energy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loftmatch/loftmatch/internal/models"
)

// RateSource provides the live electricity price for a tariff.
// Implemented by the electricity-rate HTTP client.
type RateSource interface {
	// RatePerKwh returns the current price per kWh for the named tariff.
	RatePerKwh(ctx context.Context, tariff string) (float64, error)
}

// Tables holds the consumption baselines and fixed prices of the cost model.
// All consumption figures are annual kWh for a single-occupant unit.
// Injected rather than package-level so tests can override them.
type Tables struct {
	// HotWaterElectricKwh is the annual hot-water consumption when heated
	// electrically. Default: 689.
	HotWaterElectricKwh float64

	// HotWaterGasKwh is the annual hot-water consumption when heated by
	// gas. Default: 1269.
	HotWaterGasKwh float64

	// CookingElectricKwh is the annual electric cooking consumption.
	// Default: 250.
	CookingElectricKwh float64

	// OtherUsesKwh covers lighting, appliances and other electric uses.
	// Default: 884.
	OtherUsesKwh float64

	// GasPricePerKwh is the fixed gas price; unlike electricity it is not
	// fetched live. Default: 0.11.
	GasPricePerKwh float64

	// HeatingKwhPerM2 maps the A-G energy class to annual heating
	// intensity in kWh/m².
	HeatingKwhPerM2 map[string]float64

	// DefaultClass is the tier substituted for missing or unrecognized
	// energy classes. Energy-class data is often absent on older listings,
	// so an unknown class must not abort estimation. Default: E.
	DefaultClass string

	// Tariff is the electricity tariff identifier passed to the rate
	// source. Default: EDF_bleu.
	Tariff string
}

// DefaultTables returns the production cost tables.
func DefaultTables() Tables {
	return Tables{
		HotWaterElectricKwh: 689,
		HotWaterGasKwh:      1269,
		CookingElectricKwh:  250,
		OtherUsesKwh:        884,
		GasPricePerKwh:      0.11,
		HeatingKwhPerM2: map[string]float64{
			"A": 50,
			"B": 90,
			"C": 150,
			"D": 230,
			"E": 330,
			"F": 450,
			"G": 550,
		},
		DefaultClass: "E",
		Tariff:       "EDF_bleu",
	}
}

// Validate checks the tables for errors.
func (t Tables) Validate() error {
	if t.GasPricePerKwh <= 0 {
		return fmt.Errorf("gas price per kWh must be positive, got %f", t.GasPricePerKwh)
	}
	if len(t.HeatingKwhPerM2) == 0 {
		return fmt.Errorf("heating intensity table is empty")
	}
	if _, ok := t.HeatingKwhPerM2[t.DefaultClass]; !ok {
		return fmt.Errorf("default class %q missing from heating intensity table", t.DefaultClass)
	}
	return nil
}

// Model estimates monthly costs. It is stateless apart from its immutable
// tables and is safe for concurrent use.
type Model struct {
	tables Tables
	rates  RateSource
	logger zerolog.Logger
}

// NewModel creates a cost model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModel(tables Tables, rates RateSource, logger zerolog.Logger) (*Model, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cost tables: %w", err)
	}
	return &Model{
		tables: tables,
		rates:  rates,
		logger: logger.With().Str("component", "energy").Logger(),
	}, nil
}

// EstimateMonthlyCost returns the estimated fully-loaded monthly cost for
// the given attributes: the rent plus one twelfth of the estimated annual
// utility spend.
//
// The branch is keyed on heating mode: collectively heated units return the
// rent unchanged, since heating and hot water are billed through building
// charges that this model does not cover. The same formula applies at
// listing creation and update.
//
// Estimation fails only when the live electricity rate lookup fails; that
// error propagates unchanged.
func (m *Model) EstimateMonthlyCost(ctx context.Context, attrs models.EnergyAttributes) (float64, error) {
	if attrs.HeatingMode == models.HeatingModeCollective {
		return attrs.Rent, nil
	}

	heatingKwh := m.heatingIntensity(attrs.EnergyClass)

	elecPrice, err := m.rates.RatePerKwh(ctx, m.tables.Tariff)
	if err != nil {
		return 0, fmt.Errorf("electricity rate lookup: %w", err)
	}
	m.logger.Debug().
		Float64("price_per_kwh", elecPrice).
		Str("tariff", m.tables.Tariff).
		Msg("fetched electricity rate")

	if attrs.HeatingType == models.HeatingTypeElectric {
		baseline := m.tables.OtherUsesKwh + m.tables.HotWaterElectricKwh + m.tables.CookingElectricKwh
		annual := baseline*elecPrice + heatingKwh*attrs.Surface*elecPrice
		return attrs.Rent + annual/12, nil
	}

	// Non-electric heating: heating and hot water priced at the gas rate,
	// remaining uses at the electricity rate.
	elecBaseline := m.tables.OtherUsesKwh + m.tables.CookingElectricKwh
	annual := m.tables.HotWaterGasKwh*m.tables.GasPricePerKwh +
		heatingKwh*attrs.Surface*m.tables.GasPricePerKwh +
		elecBaseline*elecPrice
	return attrs.Rent + annual/12, nil
}

// heatingIntensity maps an energy class letter to annual kWh/m², falling
// back to the default tier for missing or unrecognized classes.
func (m *Model) heatingIntensity(class string) float64 {
	if kwh, ok := m.tables.HeatingKwhPerM2[class]; ok {
		return kwh
	}
	if class != "" {
		m.logger.Debug().Str("energy_class", class).Str("fallback", m.tables.DefaultClass).
			Msg("unrecognized energy class, using default tier")
	}
	return m.tables.HeatingKwhPerM2[m.tables.DefaultClass]
}
