// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// globalFlag selects the user config instead of ./marx.yaml
	globalFlag bool
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage marx configuration",
		Long: `Manage marx configuration settings.

Configuration precedence (highest to lowest):
  1. Flags (--api-url, --log-level, --use-tui)
  2. Environment variables (MARX_*)
  3. Local config (./marx.yaml)
  4. User config (~/.config/marx/config.yaml)
  5. Defaults

By default, config commands operate on local config (./marx.yaml).
Use --global to operate on user config instead.`,
		Example: `  # Point a project at a staging service
  marx config set api.url https://staging.example.com

  # Personal preferences
  marx config set --global api.token s3cr3t
  marx config set --global quiz.auto-advance false

  # Get configuration value
  marx config get api.url

  # Remove configuration value
  marx config unset api.url
  marx config unset --global api.token

  # List all configuration
  marx config list`,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// addGlobalFlag adds the --global flag to a command
func addGlobalFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&globalFlag, "global", false, "Operate on user config instead of local config")
}

// targetScope returns the scope picked by --global with its name and file for messages
func targetScope() (config.ConfigScope, string, string) {
	if globalFlag {
		return config.ScopeUser, "global", config.UserConfigDisplay()
	}
	return config.ScopeLocal, "local", config.LocalConfigDisplay()
}
