// SPDX-License-Identifier: Apache-2.0
package options

import (
	"fmt"
	"io"

	"github.com/marx-labs/marx/cmd/cmdutil"
	"github.com/marx-labs/marx/pkg/catalog"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/wizard"
	"github.com/spf13/cobra"
)

var flagJSON bool

// categoryJSON is the scripting view of one category
type categoryJSON struct {
	ID      string          `json:"id"`
	Key     string          `json:"key"`
	Flag    string          `json:"flag"`
	Title   string          `json:"title"`
	Kind    string          `json:"kind"`
	Default string          `json:"default,omitempty"`
	Options []catalog.Entry `json:"options"`
}

// NewOptionsCmd returns the options command
func NewOptionsCmd() *cobra.Command {
	var ids []string
	for _, c := range catalog.Categories() {
		ids = append(ids, c.ID)
	}

	cmd := &cobra.Command{
		Use:   "options [category]",
		Short: "List the quiz options",
		Long: `List every category of the quiz with its option ids.

The ids are the values accepted by the answer flags of 'marx quiz'
and by answers files.`,
		Example: `  marx options
  marx options kpi
  marx options --json`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: ids,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := catalog.Categories()
			if len(args) == 1 {
				c, err := catalog.ByID(args[0])
				if err != nil {
					return err
				}
				cats = []catalog.Category{c}
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), cats)
			}
			List(cmd.OutOrStdout(), cats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagJSON, "json", false, "Print the options as JSON")
	return cmd
}

// List prints a styled listing of the categories
func List(w io.Writer, cats []catalog.Category) {
	theme := config.CurrentTheme
	titleStyle := theme.InfoStyle().Bold(true)
	markerStyle := theme.SuccessStyle()
	idStyle := theme.InfoStyle()
	subtleStyle := theme.SubtleStyle()

	defaults := wizard.NewState()

	for _, c := range cats {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(c.Title),
			subtleStyle.Render(fmt.Sprintf("(--%s, %s)", cmdutil.FlagName(c.Key), c.Kind)))
		fmt.Fprintln(w)

		def := defaults.Get(wizard.Key(c.Key))
		for _, e := range c.Entries {
			if e.ID == def && def != "" {
				fmt.Fprintf(w, "  %s %s %s %s\n",
					markerStyle.Render("●"),
					idStyle.Render(e.ID),
					subtleStyle.Render(e.Title),
					subtleStyle.Render("(default)"))
				continue
			}
			fmt.Fprintf(w, "    %s %s\n", idStyle.Render(e.ID), subtleStyle.Render(e.Title))
		}
	}
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, cats []catalog.Category) error {
	defaults := wizard.NewState()
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON{
			ID:      c.ID,
			Key:     c.Key,
			Flag:    cmdutil.FlagName(c.Key),
			Title:   c.Title,
			Kind:    c.Kind.String(),
			Default: defaults.Get(wizard.Key(c.Key)),
			Options: c.Entries,
		})
	}
	return cmdutil.WriteJSON(w, out)
}
