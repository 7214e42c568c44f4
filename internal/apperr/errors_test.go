// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsSurviveWrapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sentinel error
		check    func(error) bool
	}{
		{"not found", ErrNotFound, IsNotFound},
		{"unauthorized", ErrUnauthorized, IsUnauthorized},
		{"forbidden", ErrForbidden, IsForbidden},
		{"unavailable", ErrUnavailable, IsUnavailable},
		{"bad request", ErrBadRequest, IsBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("listing 42: %w", tt.sentinel)
			double := fmt.Errorf("recommend: %w", wrapped)

			if !tt.check(wrapped) {
				t.Error("single wrap not detected")
			}
			if !tt.check(double) {
				t.Error("double wrap not detected")
			}
			if tt.check(errors.New("unrelated")) {
				t.Error("unrelated error misclassified")
			}
		})
	}
}

func TestKindsAreDistinct(t *testing.T) {
	t.Parallel()

	if IsNotFound(ErrForbidden) || IsForbidden(ErrNotFound) {
		t.Error("error kinds overlap")
	}
	if IsUnavailable(ErrBadRequest) || IsBadRequest(ErrUnavailable) {
		t.Error("error kinds overlap")
	}
}
