package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/workflow"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show ledger and scheduling status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cfg *config.Config, manager *workflow.Manager, _ *ledger.Store) error {
				status, err := manager.Status(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, status)
				}
				renderStatus(cmd, cfg, status)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}

func renderStatus(cmd *cobra.Command, cfg *config.Config, status *workflow.Status) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range sectionHeader("Content", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, statusLine("Articles", toneNeutral, strconv.Itoa(status.TotalArticles), colorize))
	fmt.Fprintln(out, statusLine("Published today", toneNeutral, strconv.Itoa(status.ArticlesToday), colorize))
	if status.LastPublished != nil {
		fmt.Fprintln(out, statusLine("Last published", toneNeutral, status.LastPublished.Format("2006-01-02 15:04 MST"), colorize))
	}
	fmt.Fprintln(out, statusLine("Next publish", toneNeutral, status.NextPublish.Format("2006-01-02 15:04 MST"), colorize))

	for _, line := range sectionHeader("Backlinks", colorize) {
		fmt.Fprintln(out, line)
	}
	kind := toneGood
	detail := "enabled"
	if !status.CreateBacklinks {
		kind = toneCaution
		detail = "disabled"
	}
	fmt.Fprintln(out, statusLine("Posting", kind, detail, colorize))
	fmt.Fprintln(out, statusLine("Total posts", toneNeutral, strconv.Itoa(status.TotalBacklinks), colorize))

	if len(status.PlatformBreakdown) > 0 {
		fmt.Fprintln(out, renderPlatformTable(cfg.Platforms.Rotation, status.PlatformBreakdown))
	}

	for _, line := range sectionHeader("Deployment", colorize) {
		fmt.Fprintln(out, line)
	}
	kind = toneCaution
	detail = "manual"
	if status.AutoDeploy {
		kind = toneGood
		detail = "automatic"
	}
	fmt.Fprintln(out, statusLine("Mode", kind, detail, colorize))
}
