package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneypress/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate directories, credentials, and the topic catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range sectionHeader("Preflight", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, result := range results {
					kind := toneGood
					if !result.Passed {
						kind = toneBad
						if result.Optional {
							kind = toneCaution
						}
					}
					fmt.Fprintln(out, statusLine(result.Name, kind, result.Detail, colorize))
				}
			}

			if preflight.HasFailures(results) {
				return fmt.Errorf("preflight failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}
