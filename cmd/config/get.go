// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get a configuration value and show its source.

The source indicates where the value comes from in precedence order:
  - ENV: Environment variable (MARX_*)
  - Local: Local config file (./marx.yaml)
  - User: User config file (~/.config/marx/config.yaml)
  - Default: Built-in default value

Secrets such as api.token are masked.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.RegisteredKeys(),
		Example: `  marx config get api.url

  # Output shows value and source:
  # api.url = http://127.0.0.1:8000 (default)
  # quiz.debounce = 1s (from ./marx.yaml)
  # use-tui = false (from ENV: MARX_USE_TUI)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := config.GetConfigValue(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			return nil
		},
	}

	return cmd
}
