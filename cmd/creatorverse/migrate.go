// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/creatorverse/db/migrations"
	"github.com/taibuivan/creatorverse/internal/platform/config"
	"github.com/taibuivan/creatorverse/internal/platform/migration"
)

func newMigrateCmd(logOutput io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations",
		Long: `Apply every pending migration to DATABASE_URL.

Only the postgres backend owns its schema; a hosted REST table is managed
outside this program.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(logOutput)
			if err != nil {
				return err
			}
			if cfg.StoreBackend != config.BackendPostgres {
				return fmt.Errorf("migrate requires STORE_BACKEND=%s (got %q)", config.BackendPostgres, cfg.StoreBackend)
			}
			return migration.RunUp(cfg.DatabaseURL, migrations.FS, log)
		},
	}
}
