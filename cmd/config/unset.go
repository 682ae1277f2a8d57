// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove configuration value",
		Long: `Remove a configuration key from a config file.

Removing a parent key removes all nested values (e.g., unsetting 'api'
removes 'api.url', 'api.token' and 'api.timeout'). Environment variables
and defaults still apply after removal.`,
		Args: cobra.ExactArgs(1),
		Example: `  marx config unset quiz.debounce
  marx config unset --global api.token

  # Remove parent (removes all children)
  marx config unset api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			scope, scopeName, configFile := targetScope()

			if err := config.UnsetConfigValue(key, scope); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s config (%s)\n", key, scopeName, configFile)
			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
