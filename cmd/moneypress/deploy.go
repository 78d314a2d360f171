package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/workflow"
)

func newDeployCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Run the configured deployment command",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cfg *config.Config, manager *workflow.Manager, _ *ledger.Store) error {
				if err := manager.Deploy(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deployment complete")
				return nil
			})
		},
	}
}
