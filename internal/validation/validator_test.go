// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package validation

import (
	"strings"
	"testing"
)

type testPayload struct {
	Name    string  `validate:"required"`
	Rent    float64 `validate:"gte=0"`
	MinSize float64 `validate:"gte=0"`
	MaxSize float64 `validate:"omitempty,gtefield=MinSize"`
	Limit   int     `validate:"omitempty,min=1,max=50"`
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	payload := testPayload{Name: "flat", Rent: 900, MinSize: 20, MaxSize: 60, Limit: 10}
	if err := ValidateStruct(&payload); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   testPayload
		wantField string
	}{
		{
			name:      "missing required name",
			payload:   testPayload{Rent: 900},
			wantField: "Name",
		},
		{
			name:      "negative rent",
			payload:   testPayload{Name: "flat", Rent: -1},
			wantField: "Rent",
		},
		{
			name:      "max below min",
			payload:   testPayload{Name: "flat", MinSize: 50, MaxSize: 20},
			wantField: "MaxSize",
		},
		{
			name:      "limit above cap",
			payload:   testPayload{Name: "flat", Limit: 500},
			wantField: "Limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.payload)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if _, ok := err.Details()[tt.wantField]; !ok {
				t.Errorf("Details() = %v, want entry for %s", err.Details(), tt.wantField)
			}
		})
	}
}

func TestRequestErrorCombinesMessages(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&testPayload{Rent: -1})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(err.Fields()) != 2 {
		t.Fatalf("Fields() = %v, want 2 failures", err.Fields())
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("Error() = %q, want combined message", err.Error())
	}
}
