// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package geo

import (
	"math"
	"testing"

	"github.com/loftmatch/loftmatch/internal/models"
)

var (
	paris = models.Coordinates{Lat: 48.8566, Lon: 2.3522}
	lyon  = models.Coordinates{Lat: 45.7640, Lon: 4.8357}
)

func TestDistanceParisLyon(t *testing.T) {
	t.Parallel()

	c := NewCalculator(DefaultConfig())
	got := c.Distance(paris, lyon)

	// Known reference distance, generous tolerance for the spherical model.
	if math.Abs(got-392.0) > 5.0 {
		t.Errorf("Distance(paris, lyon) = %.2f km, want 392 +/- 5", got)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	t.Parallel()

	c := NewCalculator(DefaultConfig())

	tests := []struct {
		name string
		a, b models.Coordinates
	}{
		{"paris-lyon", paris, lyon},
		{"equator", models.Coordinates{Lat: 0, Lon: 0}, models.Coordinates{Lat: 0, Lon: 90}},
		{"antipodal-ish", models.Coordinates{Lat: 51.5, Lon: -0.12}, models.Coordinates{Lat: -33.86, Lon: 151.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ab := c.Distance(tt.a, tt.b)
			ba := c.Distance(tt.b, tt.a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestDistanceIdentityIsZero(t *testing.T) {
	t.Parallel()

	c := NewCalculator(DefaultConfig())
	if got := c.Distance(paris, paris); got != 0 {
		t.Errorf("Distance(a, a) = %v, want 0", got)
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	t.Parallel()

	c := NewCalculator(DefaultConfig())
	got := c.Distance(models.Coordinates{Lat: math.NaN(), Lon: 2.0}, lyon)
	if !math.IsNaN(got) {
		t.Errorf("Distance with NaN input = %v, want NaN", got)
	}
}

func TestNewCalculatorZeroRadiusUsesDefault(t *testing.T) {
	t.Parallel()

	c := NewCalculator(Config{})
	got := c.Distance(paris, lyon)
	if math.Abs(got-392.0) > 5.0 {
		t.Errorf("zero-config Distance = %.2f, want default radius behavior", got)
	}
}

func TestCustomRadiusScalesDistance(t *testing.T) {
	t.Parallel()

	std := NewCalculator(DefaultConfig())
	half := NewCalculator(Config{EarthRadiusKm: 6371.0 / 2})

	want := std.Distance(paris, lyon) / 2
	got := half.Distance(paris, lyon)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("half-radius Distance = %v, want %v", got, want)
	}
}
