// SPDX-License-Identifier: Apache-2.0
package init

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/marx-labs/marx/cmd/cmdutil"
	"github.com/marx-labs/marx/pkg/config"
	initpkg "github.com/marx-labs/marx/pkg/init"
	"github.com/spf13/cobra"
)

// package-level flag variables bound to cobra flags
var (
	flagAnswersTemplate string
	flagFormat          string
	flagDebounce        time.Duration
	flagNoAutoAdvance   bool
	flagForce           bool
)

// NewInitCmd returns the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a marx.yaml in the current directory",
		Long: `Sets up the current directory for marx.

Creates:
  - marx.yaml (service URL, quiz behaviour, report format)
  - optionally an answers template listing every option id

Interactive mode (default when stdin is a terminal and use-tui is true):
  Asks for the settings in a short form.

Non-interactive mode:
  Writes the values given as flags, falling back to the current configuration.`,
		Example: `  # Interactive
  marx init

  # Non-interactive, with an answers template for scripted runs
  marx init --use-tui=false --api-url https://analysis.example.com \
    --format json --answers-template`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringVar(&flagAnswersTemplate, "answers-template", "", "Also write an answers template to this path")
	cmd.Flags().Lookup("answers-template").NoOptDefVal = config.AnswersFileName
	cmd.Flags().StringVar(&flagFormat, "format", "", "Report format: markdown, json (default from output.format)")
	cmd.Flags().DurationVar(&flagDebounce, "debounce", 0, "Budget input debounce (default from quiz.debounce)")
	cmd.Flags().BoolVar(&flagNoAutoAdvance, "no-auto-advance", false, "Do not scroll to the next section after a choice")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	settings := settingsFromFlags()

	if cmdutil.IsInteractive() {
		if err := runForm(&settings); err != nil {
			return err
		}
	}

	if err := config.ValidateValue("output.format", settings.OutputFormat, config.ScopeLocal); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if err := config.ValidateValue("api.url", settings.APIURL, config.ScopeLocal); err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}

	files, err := initpkg.GenerateProjectFiles(settings)
	if err != nil {
		return err
	}
	printCreated(cmd.OutOrStdout(), files)
	return nil
}

// settingsFromFlags starts from the effective configuration and applies flags
func settingsFromFlags() initpkg.ProjectSettings {
	s := initpkg.ProjectSettings{
		APIURL:       config.GetAPIURL(),
		APITimeout:   config.GetAPITimeout(),
		Debounce:     config.GetDebounce(),
		AutoAdvance:  config.GetAutoAdvance() && !flagNoAutoAdvance,
		OutputFormat: config.GetOutputFormat(),
		AnswersFile:  flagAnswersTemplate,
		Force:        flagForce,
	}
	if flagFormat != "" {
		s.OutputFormat = flagFormat
	}
	if flagDebounce > 0 {
		s.Debounce = flagDebounce
	}
	return s
}

// runForm lets the user adjust the settings before anything is written
func runForm(s *initpkg.ProjectSettings) error {
	debounce := s.Debounce.String()
	writeAnswers := s.AnswersFile != ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Analysis service URL").
				Value(&s.APIURL).
				Validate(func(v string) error {
					return config.ValidateValue("api.url", v, config.ScopeLocal)
				}),
			huh.NewSelect[string]().
				Title("Report format for non-interactive runs").
				Options(huh.NewOptions("markdown", "json")...).
				Value(&s.OutputFormat),
			huh.NewInput().
				Title("Budget input debounce").
				Value(&debounce).
				Validate(func(v string) error {
					_, err := time.ParseDuration(v)
					return err
				}),
			huh.NewConfirm().
				Title("Scroll to the next question after a choice?").
				Value(&s.AutoAdvance),
			huh.NewConfirm().
				Title("Write an answers template?").
				Value(&writeAnswers),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("init cancelled: %w", err)
	}

	d, err := time.ParseDuration(debounce)
	if err != nil {
		return fmt.Errorf("invalid debounce %s: %w", strconv.Quote(debounce), err)
	}
	s.Debounce = d

	switch {
	case writeAnswers && s.AnswersFile == "":
		s.AnswersFile = config.AnswersFileName
	case !writeAnswers:
		s.AnswersFile = ""
	}
	return nil
}

func printCreated(w io.Writer, files []string) {
	theme := config.CurrentTheme
	fmt.Fprintln(w, theme.SuccessMessage("Project initialised"))
	for _, f := range files {
		fmt.Fprintf(w, "  %s %s\n", theme.SuccessStyle().Render("●"), f)
	}
	fmt.Fprintln(w, theme.SubtleStyle().Render("Run 'marx quiz' to start"))
}
