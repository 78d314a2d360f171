package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"moneypress/internal/autorun"
	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the publishing workflow continuously",
		Long: "Run the publishing workflow in a loop: generate when the publish " +
			"interval elapses, process images, rebuild the site, post backlinks, " +
			"and deploy when auto-deploy is enabled. Only one instance may run at a time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cfg *config.Config, manager *workflow.Manager, _ *ledger.Store) error {
				runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()

				runner, err := autorun.New(cfg, manager.Logger(), uuid.New().String())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Starting continuous mode (session %s)\n", runner.SessionID())
				return runner.Run(runCtx, manager)
			})
		},
	}
}
