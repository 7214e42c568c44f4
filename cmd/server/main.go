// Loftmatch - Rental Listings and Recommendation Service
// Copyright 2026 Loftmatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/loftmatch/loftmatch

// Package main is the entry point for the Loftmatch server.
//
// Loftmatch is a rental listings platform: owners publish listings, the
// service derives a fully-loaded monthly cost estimate for each one, and
// users get ranked recommendations filtered by budget, surface and distance
// to a reference address.
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and config file (Koanf v2)
//  2. Database: DuckDB listing and coordinate storage
//  3. Geocode cache: BadgerDB address cache backing the Nominatim client
//  4. Outbound clients: electricity rates, geocoding, relations, ranking
//  5. Domain services: energy cost model, listings service, recommendation
//     engine
//  6. HTTP server and geocode backfill worker, under Suture supervision
//
// Shutdown is graceful on SIGINT and SIGTERM: in-flight requests get a
// bounded drain window, the worker stops at the next safe point, and the
// database is checkpointed before close.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loftmatch/loftmatch/internal/api"
	"github.com/loftmatch/loftmatch/internal/auth"
	"github.com/loftmatch/loftmatch/internal/cache"
	"github.com/loftmatch/loftmatch/internal/clients"
	"github.com/loftmatch/loftmatch/internal/config"
	"github.com/loftmatch/loftmatch/internal/database"
	"github.com/loftmatch/loftmatch/internal/energy"
	"github.com/loftmatch/loftmatch/internal/listings"
	"github.com/loftmatch/loftmatch/internal/logging"
	"github.com/loftmatch/loftmatch/internal/recommend"
	"github.com/loftmatch/loftmatch/internal/supervisor"
	"github.com/loftmatch/loftmatch/internal/worker"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Loftmatch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === STORAGE ===

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Database close failed")
		}
	}()

	geocodeCache, err := cache.NewGeocodeCache(&cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open geocode cache")
	}
	defer func() {
		if err := geocodeCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Geocode cache close failed")
		}
	}()

	// === OUTBOUND CLIENTS ===

	geocoder := clients.NewNominatimClient(&cfg.Geocoder, geocodeCache)
	rates := clients.NewElectricityRateClient(&cfg.Energy)

	var relationSource recommend.RelationSource = recommend.NoRelations{}
	var relationRegistrar listings.RelationRegistrar
	if cfg.Relations.URL != "" {
		relationsClient := clients.NewRelationsClient(&cfg.Relations)
		relationSource = relationsClient
		relationRegistrar = relationsClient
		logging.Info().Str("url", cfg.Relations.URL).Msg("Relation graph service configured")
	} else {
		logging.Info().Msg("No relation graph service configured, recommendations exclude nothing")
	}

	var rankingSource recommend.RankingSource = recommend.PassthroughRanker{}
	if cfg.Ranking.URL != "" {
		rankingSource = clients.NewRankingClient(&cfg.Ranking)
		logging.Info().Str("url", cfg.Ranking.URL).Msg("Relevance ranking service configured")
	} else {
		logging.Info().Msg("No ranking service configured, results keep pool order")
	}

	// === DOMAIN SERVICES ===

	model, err := energy.NewModel(energy.DefaultTables(), rates, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build energy cost model")
	}

	listingService, err := listings.NewService(db, model, geocoder, relationRegistrar, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build listings service")
	}

	engine, err := recommend.NewEngine(&recommend.Config{
		MaxDistanceKm:   cfg.Recommend.MaxDistanceKm,
		OverfetchFactor: cfg.Recommend.OverfetchFactor,
		DefaultLimit:    cfg.Recommend.DefaultLimit,
		MaxLimit:        cfg.Recommend.MaxLimit,
	}, geocoder, relationSource, db, rankingSource, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	// === HTTP SURFACE ===

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	handler := api.NewHandler(cfg, listingService, engine, db)
	router := api.NewRouter(cfg, handler, jwtManager)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	backfiller, err := worker.NewGeocodeBackfiller(&cfg.Worker, db, geocoder, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build geocode backfiller")
	}
	tree.AddWorker(backfiller)

	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}
