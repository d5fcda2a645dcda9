// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/creatorverse/db/migrations"
	"github.com/taibuivan/creatorverse/internal/core/creator"
	"github.com/taibuivan/creatorverse/internal/platform/config"
	"github.com/taibuivan/creatorverse/internal/platform/migration"
	pgstore "github.com/taibuivan/creatorverse/internal/platform/postgres"
	"github.com/taibuivan/creatorverse/internal/platform/rest"
)

// backend is the creator store selected by STORE_BACKEND.
type backend struct {
	name       string
	repository creator.Repository
	close      func()
}

// openBackend connects to the configured store.
//
// For the postgres backend, RUN_MIGRATIONS applies the embedded migrations first.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendREST:
		client := rest.NewClient(cfg.Store(), nil)
		log.Info("rest_store_configured", slog.String("endpoint", client.Endpoint()))
		return &backend{
			name:       config.BackendREST,
			repository: creator.Instrument(creator.NewRESTRepository(client), config.BackendREST),
			close:      func() {},
		}, nil

	case config.BackendPostgres:
		if cfg.RunMigrations {
			if err := migration.RunUp(cfg.DatabaseURL, migrations.FS, log); err != nil {
				return nil, err
			}
		}

		pool, err := pgstore.NewPool(ctx, cfg.Database(), log)
		if err != nil {
			return nil, err
		}
		return &backend{
			name:       config.BackendPostgres,
			repository: creator.Instrument(creator.NewPostgresRepository(pool, cfg.StoreTable), config.BackendPostgres),
			close: func() {
				log.Info("closing postgres pool")
				pool.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
