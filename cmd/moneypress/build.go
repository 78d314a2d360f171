package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/workflow"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run the static site build and write crawler files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cfg *config.Config, manager *workflow.Manager, _ *ledger.Store) error {
				if err := manager.Build(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Site built in %s\n", cfg.Paths.SiteDir)
				return nil
			})
		},
	}
}
