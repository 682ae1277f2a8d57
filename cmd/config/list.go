// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configuration values",
		Long: `List all configuration values with their sources.

Output format: key = value (source)`,
		Example: `  marx config list

  # Example output:
  # api.timeout = 30s (default)
  # api.url = https://staging.example.com (from ./marx.yaml)
  # log-level = info (default)
  # output.format = json (from ~/.config/marx/config.yaml)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := config.ListConfigValues()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(values) == 0 {
				fmt.Fprintln(out, "No configuration set")
				return nil
			}

			for _, cv := range values {
				fmt.Fprintf(out, "%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			}

			fmt.Fprintln(out, "\n"+config.CurrentTheme.SubtleStyle().Render("Configuration precedence: flags > ENV > local config > user config > defaults"))
			return nil
		},
	}

	return cmd
}
