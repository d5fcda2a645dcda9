// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/creatorverse/internal/api"
	"github.com/taibuivan/creatorverse/internal/core/creator"
	"github.com/taibuivan/creatorverse/internal/platform/constants"
	"github.com/taibuivan/creatorverse/internal/web"
	"github.com/taibuivan/creatorverse/internal/web/templates"
)

func newServeCmd(logOutput io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the HTML pages, the JSON API under /api/v1/creators and the
/health and /ready probes until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), logOutput)
		},
	}
}

// # Startup Sequence
//
//  1. Load configuration and build the logger.
//  2. Connect to the store (and migrate, for postgres).
//  3. Wire service, pages, API and health handlers.
//  4. Serve until a shutdown signal, then drain in-flight requests.
func runServe(parent context.Context, logOutput io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}

	// ── 1. Configuration & Logger ──────────────────────────────────────────
	cfg, log, err := loadConfig(logOutput)
	if err != nil {
		log.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		return err
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_backend", cfg.StoreBackend),
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 2. Store ───────────────────────────────────────────────────────────
	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	store, err := openBackend(startupCtx, cfg, log)
	if err != nil {
		log.Error("startup failure", slog.String("context", "open store"), slog.Any("error", err))
		return err
	}
	defer store.close()

	// ── 3. Wiring ──────────────────────────────────────────────────────────
	service := creator.NewService(store.repository, log)

	pages, err := web.NewServer(service, templates.FS, log)
	if err != nil {
		return fmt.Errorf("build pages: %w", err)
	}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  store.name,
		CheckStore: service.Ping,
	}, log)

	server := api.NewServer(ctx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Creator:   creator.NewHandler(service),
		Pages:     pages.Routes(),
	})

	// ── 4. Graceful Shutdown ───────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
		return err
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		return err
	}

	log.Info("server stopped cleanly")
	return nil
}
