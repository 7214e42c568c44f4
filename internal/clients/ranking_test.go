// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/loftmatch/loftmatch/internal/apperr"
	"github.com/loftmatch/loftmatch/internal/config"
)

func newRankingClient(url string) *RankingClient {
	return NewRankingClient(&config.RankingConfig{
		URL:     url,
		Timeout: 5 * time.Second,
	})
}

func TestRank(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rank" {
			t.Errorf("request = %s %s, want POST /rank", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"user_id":"user-1","listing_ids":[1,2,3]}` {
			t.Errorf("body = %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"listing_ids":[3,1,2]}`))
	}))
	defer server.Close()

	order, err := newRankingClient(server.URL).Rank(context.Background(), "user-1", []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !reflect.DeepEqual(order, []int64{3, 1, 2}) {
		t.Errorf("Rank() = %v, want [3 1 2]", order)
	}
}

func TestRankServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newRankingClient(server.URL).Rank(context.Background(), "user-1", []int64{1})
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("Rank() error = %v, want ErrUnavailable", err)
	}
}

func TestRankPartialOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"listing_ids":[2]}`))
	}))
	defer server.Close()

	order, err := newRankingClient(server.URL).Rank(context.Background(), "user-1", []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !reflect.DeepEqual(order, []int64{2}) {
		t.Errorf("Rank() = %v, want partial order [2]", order)
	}
}
