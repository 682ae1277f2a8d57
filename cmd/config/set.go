// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set configuration value",
		Long: `Set a configuration key to a value.

Keys use dot notation for nested values (e.g., api.url).

Boolean values support natural language:
  - true:  true, yes, on, enable, enabled
  - false: false, no, off, disable, disabled

Durations use Go syntax (700ms, 30s, 2m). api.token may only be
stored in the user config.`,
		Args: cobra.ExactArgs(2),
		Example: `  marx config set use-tui no
  marx config set log-level debug
  marx config set quiz.debounce 1s
  marx config set output.format json

  # Set in user config instead of local
  marx config set --global api.token s3cr3t`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			scope, scopeName, configFile := targetScope()

			if err := config.SetConfigValue(key, value, scope); err != nil {
				return err
			}

			shown := value
			if config.IsSecret(key) {
				shown = config.MaskSecret(value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s: %s)\n", key, shown, scopeName, configFile)
			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
