// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package models contains the shared data types for Loftmatch: listings,
// coordinates, search filters, relations and the API response envelope.
package models

import "time"

// HeatingMode describes how heating is billed for a unit.
const (
	// HeatingModeIndividual means heating is billed per unit; utility costs
	// are estimated from the listing's energy attributes.
	HeatingModeIndividual = "individual"

	// HeatingModeCollective means heating is billed centrally by the
	// building; no per-unit utility estimate is added.
	HeatingModeCollective = "collective"
)

// HeatingTypeElectric is the heating type that prices heating consumption at
// the electricity rate instead of the gas rate.
const HeatingTypeElectric = "electric"

// Listing is a rentable property record. Records are owned by the storage
// layer; identifiers are assigned on creation.
type Listing struct {
	ID          int64  `json:"listing_id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Location is the free-text address; geocoded to Coordinates when the
	// listing is created.
	Location string `json:"location"`

	// Type is the property category (apartment, house, studio...).
	Type string `json:"type,omitempty"`

	Surface        float64 `json:"surface"`
	Rent           float64 `json:"rent"`
	MonthlyCharges float64 `json:"monthly_charges,omitempty"`
	IncludeCharges bool    `json:"include_charges,omitempty"`

	Rooms         int `json:"number_of_rooms,omitempty"`
	Bedrooms      int `json:"number_of_bedrooms,omitempty"`
	Bathrooms     int `json:"number_of_bathrooms,omitempty"`
	Floor         int `json:"floor,omitempty"`
	FloorsTotal   int `json:"number_of_floors,omitempty"`
	ParkingSpaces int `json:"parking_spaces,omitempty"`

	ConstructionYear int `json:"construction_year,omitempty"`

	// EnergyClass and GHGClass are the A-G performance letter grades.
	// Unrecognized values are tolerated; cost estimation substitutes a
	// documented default tier.
	EnergyClass string `json:"energy_class,omitempty"`
	GHGClass    string `json:"ges,omitempty"`

	HeatingType string `json:"heating_type,omitempty"`
	HeatingMode string `json:"heating_mode,omitempty"`
	Orientation string `json:"orientation,omitempty"`

	Furnished   bool `json:"is_furnished"`
	HasElevator bool `json:"has_elevator,omitempty"`

	AvailableFrom string `json:"available_from,omitempty"`

	// EstimatedCost is the derived fully-loaded monthly cost
	// (rent + estimated utilities), computed at create and update time.
	EstimatedCost float64 `json:"estimated_price"`

	CreatedAt time.Time `json:"created_at,omitempty"`

	// Coordinates is the geocoded position of Location, when known.
	// Nil for listings whose geocoding has not succeeded yet.
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Coordinates is a (latitude, longitude) pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Filters is a user-supplied recommendation query.
type Filters struct {
	// MaxRent is the upper bound on rent; zero means unbounded.
	MaxRent float64 `json:"rent"`

	// MinSurface and MaxSurface bound the surface area in m²; zero means
	// the bound is not applied.
	MinSurface float64 `json:"min_size"`
	MaxSurface float64 `json:"max_size"`

	// Furnished, when non-nil, requires the listing's furnished flag to
	// match.
	Furnished *bool `json:"is_furnished,omitempty"`

	// Location is the free-text reference address the search centers on.
	Location string `json:"location"`
}

// Relation is an edge recording that a user has already been shown or acted
// on a listing. A user's relation set is the exclusion set for
// recommendations.
type Relation struct {
	UserID    string `json:"user_id"`
	ListingID int64  `json:"listing_id"`
}

// EnergyAttributes is the subset of listing attributes the cost model reads.
type EnergyAttributes struct {
	EnergyClass string
	HeatingType string
	HeatingMode string
	Surface     float64
	Rent        float64
}

// EnergyAttrs extracts the cost-model inputs from a listing.
func (l *Listing) EnergyAttrs() EnergyAttributes {
	return EnergyAttributes{
		EnergyClass: l.EnergyClass,
		HeatingType: l.HeatingType,
		HeatingMode: l.HeatingMode,
		Surface:     l.Surface,
		Rent:        l.Rent,
	}
}
