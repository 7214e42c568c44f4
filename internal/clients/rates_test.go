// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
)

func newRateClient(url string) *ElectricityRateClient {
	return NewElectricityRateClient(&config.EnergyConfig{
		Tariff:  "EDF_bleu",
		RateURL: url,
		Timeout: 5 * time.Second,
	})
}

func TestRatePerKwh(t *testing.T) {
	t.Parallel()

	var gotTariff string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTariff = r.URL.Query().Get("nom_tarif")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"options":{"base":{"prix_kWh":0.2516}}}`))
	}))
	defer server.Close()

	rate, err := newRateClient(server.URL).RatePerKwh(context.Background(), "EDF_bleu")
	if err != nil {
		t.Fatalf("RatePerKwh() error = %v", err)
	}
	if rate != 0.2516 {
		t.Errorf("RatePerKwh() = %f, want 0.2516", rate)
	}
	if gotTariff != "EDF_bleu" {
		t.Errorf("request tariff = %q, want EDF_bleu", gotTariff)
	}
}

func TestRatePerKwhErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{}`,
			wantErr: apperr.ErrForbidden,
		},
		{
			name:    "api error field",
			status:  http.StatusOK,
			body:    `{"error":"unknown tariff"}`,
			wantErr: apperr.ErrBadRequest,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: apperr.ErrUnavailable,
		},
		{
			name:    "garbage body",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: apperr.ErrUnavailable,
		},
		{
			name:    "zero price",
			status:  http.StatusOK,
			body:    `{"options":{"base":{"prix_kWh":0}}}`,
			wantErr: apperr.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newRateClient(server.URL).RatePerKwh(context.Background(), "EDF_bleu")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RatePerKwh() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRatePerKwhTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse all connections

	_, err := newRateClient(server.URL).RatePerKwh(context.Background(), "EDF_bleu")
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("RatePerKwh() error = %v, want ErrUnavailable", err)
	}
}
