package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/workflow"
)

func newBacklinksCommand(ctx *commandContext) *cobra.Command {
	var maxPosts int

	cmd := &cobra.Command{
		Use:   "backlinks",
		Short: "Post backlink drafts for articles without them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cfg *config.Config, manager *workflow.Manager, _ *ledger.Store) error {
				if !cfg.Content.CreateBacklinks {
					fmt.Fprintln(cmd.OutOrStdout(), "Backlink posting is disabled (content.create_backlinks)")
					return nil
				}
				created := manager.Backlinks(cmd.Context(), maxPosts)
				fmt.Fprintf(cmd.OutOrStdout(), "Posted %d backlink draft(s)\n", created)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&maxPosts, "max", 0, "Maximum posts this run (0 uses content.max_backlinks_per_run)")
	return cmd
}
