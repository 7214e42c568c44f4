// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package recommend

import "testing"

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero radius",
			mutate:  func(c *Config) { c.MaxDistanceKm = 0 },
			wantErr: true,
		},
		{
			name:    "negative radius",
			mutate:  func(c *Config) { c.MaxDistanceKm = -5 },
			wantErr: true,
		},
		{
			name:    "zero overfetch",
			mutate:  func(c *Config) { c.OverfetchFactor = 0 },
			wantErr: true,
		},
		{
			name:    "zero default limit",
			mutate:  func(c *Config) { c.DefaultLimit = 0 },
			wantErr: true,
		},
		{
			name:    "max limit below default",
			mutate:  func(c *Config) { c.MaxLimit = c.DefaultLimit - 1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	clone := orig.Clone()
	clone.MaxDistanceKm = 99

	if orig.MaxDistanceKm == 99 {
		t.Error("Clone() shares state with original")
	}
}
