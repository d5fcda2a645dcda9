// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command creatorverse runs the CreatorVerse web server and its operator tools.
//
// # Commands
//
//	creatorverse serve                  run the HTML pages and JSON API
//	creatorverse migrate                apply the embedded SQL migrations (postgres backend)
//	creatorverse creators list          print every creator as JSON
//	creatorverse creators get <id>      print one creator as JSON
//	creatorverse creators delete <id>   delete one creator
//
// All settings come from environment variables (see internal/platform/config).
package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/creatorverse/internal/platform/config"
	"github.com/taibuivan/creatorverse/internal/platform/constants"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Logs go to logOutput.
func newRootCmd(logOutput io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   constants.AppName,
		Short: "Catalog manager for content creators",
		Long: `creatorverse serves a small catalog of content creators backed by a
PostgREST table (or the Postgres database behind it).

Configuration is read from the environment: STORE_BACKEND, STORE_URL,
STORE_API_KEY, STORE_TABLE, DATABASE_URL, SERVER_PORT and friends.`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCmd(logOutput),
		newMigrateCmd(logOutput),
		newCreatorsCmd(logOutput),
	)
	return root
}

// loadConfig reads the configuration and builds the logger it asks for.
func loadConfig(logOutput io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, newLogger(logOutput, "json", false), err
	}

	log := newLogger(logOutput, cfg.LogFormat, cfg.Debug)
	slog.SetDefault(log)

	log.Debug("debug_logging_enabled")
	return cfg, log, nil
}

// newLogger returns the structured logger every entry of which carries the app name.
func newLogger(output io.Writer, format string, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(output, options)
	} else {
		handler = slog.NewJSONHandler(output, options)
	}

	return slog.New(handler).With(slog.String("app", constants.AppName))
}
