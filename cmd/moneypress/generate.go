package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/workflow"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate articles from the topic backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			return ctx.withManager(func(_ *config.Config, manager *workflow.Manager, _ *ledger.Store) error {
				generated, err := manager.Generate(cmd.Context(), count)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, article := range generated {
					fmt.Fprintf(out, "Generated %s (%s, %d words)\n", article.Slug, article.CategoryName, article.WordCount)
				}
				if len(generated) == 0 {
					fmt.Fprintln(out, "No articles generated (topic backlog exhausted and no variation produced)")
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of articles to generate")
	return cmd
}
