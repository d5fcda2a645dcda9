// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/creatorverse/internal/core/creator"
	"github.com/taibuivan/creatorverse/internal/platform/constants"
)

func newCreatorsCmd(logOutput io.Writer) *cobra.Command {
	creators := &cobra.Command{
		Use:   "creators",
		Short: "Inspect and manage creators from the command line",
		Long: `Run the catalog operations directly against the configured store.

Examples:
  creatorverse creators list
  creatorverse creators get 42
  creatorverse creators delete 42`,
	}

	creators.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every creator as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withService(cmd, logOutput, func(ctx context.Context, service *creator.Service) error {
					list, err := service.ListCreators(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), list)
				})
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Print one creator as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd, logOutput, func(ctx context.Context, service *creator.Service) error {
					found, err := service.GetCreator(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), found)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one creator",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd, logOutput, func(ctx context.Context, service *creator.Service) error {
					if err := service.DeleteCreator(ctx, args[0]); err != nil {
						return err
					}
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted creator %s\n", args[0])
					return err
				})
			},
		},
	)

	return creators
}

// withService opens the configured store and runs fn with a creator service.
func withService(cmd *cobra.Command, logOutput io.Writer, fn func(ctx context.Context, service *creator.Service) error) error {
	cfg, log, err := loadConfig(logOutput)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	return fn(ctx, creator.NewService(store.repository, log))
}

func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
