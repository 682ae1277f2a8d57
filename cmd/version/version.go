// SPDX-License-Identifier: Apache-2.0
package version

import (
	"fmt"

	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version of marx and the analysis service it talks to.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if version == "" {
				version = "dev"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "marx version %s\n", version)
			fmt.Fprintln(out, config.CurrentTheme.SubtleStyle().Render("analysis service: "+config.GetAPIURL()))
		},
	}
}
