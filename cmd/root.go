// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/cmd/cmdutil"
	configCmd "github.com/marx-labs/marx/cmd/config"
	initcmd "github.com/marx-labs/marx/cmd/init"
	"github.com/marx-labs/marx/cmd/options"
	"github.com/marx-labs/marx/cmd/quiz"
	"github.com/marx-labs/marx/cmd/version"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags
	// -ldflags "-X github.com/marx-labs/marx/cmd.Version=x.y.z"
	Version string

	logLevel    string
	useTUI      bool
	apiURL      string
	debugLogger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "marx",
	Short: "Marketing strategy quiz",
	Long: `marx - marketing strategy quiz

Answer eight questions about your budget, product, customers and team,
then get a recommended channel mix with a budget split and an action
plan from the analysis service.

Running marx without a command starts the quiz.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize directories before any command runs
		if err := config.InitDirs(); err != nil {
			return err
		}

		if err := config.LoadConfig(); err != nil {
			return err
		}

		// Update flag values from Viper (respects config file and env vars)
		useTUI = config.GetUseTUI()
		logLevel = config.GetLogLevel()

		return setupLogging(logLevel)
	},
}

// setupLogging points the default logger at the JSON debug log
func setupLogging(level string) error {
	if level == "disabled" {
		log.SetOutput(io.Discard)
		return nil
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	// Always log to file in JSON format; the terminal belongs to the TUI
	f, err := os.OpenFile(config.GlobalPaths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	debugLogger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05.000Z07:00",
		Level:           lvl,
		ReportCaller:    true,
		Formatter:       log.JSONFormatter,
	})
	log.SetDefault(debugLogger)
	log.Debug("logging initialised", "level", lvl.String(), "file", config.GlobalPaths.LogFile)

	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorStyle := config.CurrentTheme.ErrorStyle()
		fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), err.Error())
		os.Exit(1)
	}
}

func init() {
	// Configure logging - will be redirected to file in PersistentPreRunE
	log.SetReportTimestamp(false)
	log.SetLevel(log.InfoLevel)

	config.InitViper()

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: disabled, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&useTUI, "use-tui", true, "Enable terminal UI mode")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", config.DefaultAPIURL, "Base URL of the analysis service")

	// Bind flags to Viper for config file and environment variable support
	if err := config.BindFlags(rootCmd.PersistentFlags()); err != nil {
		log.Warn("flag binding failed", "err", err)
	}

	quizCmd := quiz.NewQuizCmd()
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(options.NewOptionsCmd())
	rootCmd.AddCommand(configCmd.NewConfigCmd())
	rootCmd.AddCommand(initcmd.NewInitCmd())
	rootCmd.AddCommand(version.NewVersionCmd(Version))

	// Bare `marx` starts the quiz with no pre-filled answers
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		quizCmd.SetOut(cmd.OutOrStdout())
		return quizCmd.RunE(quizCmd, args)
	}

	rootCmd.SetHelpFunc(styledHelpFunc)
	rootCmd.SetUsageFunc(styledUsageFunc)
	rootCmd.SilenceUsage = true  // Don't show usage on errors
	rootCmd.SilenceErrors = true // We'll handle error printing ourselves

	// Linux shells only, no powershell
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	initCompletionCmd()
}

// completionShells lists the supported shells with their setup instructions
var completionShells = []struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer, desc bool) error
}{
	{
		name:    "bash",
		install: "source <(%[1]s completion bash)\n\nTo load completions for every new session, execute once:\n\n\t%[1]s completion bash > /etc/bash_completion.d/%[1]s",
		gen: func(root *cobra.Command, w io.Writer, desc bool) error {
			return root.GenBashCompletionV2(w, desc)
		},
	},
	{
		name:    "zsh",
		install: "source <(%[1]s completion zsh)\n\nTo load completions for every new session, execute once:\n\n\t%[1]s completion zsh > \"${fpath[1]}/_%[1]s\"",
		gen: func(root *cobra.Command, w io.Writer, desc bool) error {
			if !desc {
				return root.GenZshCompletionNoDesc(w)
			}
			return root.GenZshCompletion(w)
		},
	},
	{
		name:    "fish",
		install: "%[1]s completion fish | source\n\nTo load completions for every new session, execute once:\n\n\t%[1]s completion fish > ~/.config/fish/completions/%[1]s.fish",
		gen: func(root *cobra.Command, w io.Writer, desc bool) error {
			return root.GenFishCompletion(w, desc)
		},
	},
}

// initCompletionCmd adds a completion command for bash, zsh and fish
func initCompletionCmd() {
	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate the autocompletion script for the specified shell",
		Long: fmt.Sprintf(`Generate the autocompletion script for %s for the specified shell.
See each sub-command's help for details on how to use the generated script.
`, rootCmd.Name()),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
	}

	for _, sh := range completionShells {
		noDesc := false
		shellCmd := &cobra.Command{
			Use:   sh.name,
			Short: fmt.Sprintf("Generate the autocompletion script for %s", sh.name),
			Long: fmt.Sprintf("Generate the autocompletion script for the %s shell.\n\nTo load completions in your current shell session:\n\n\t"+sh.install+"\n\nYou will need to start a new shell for this setup to take effect.\n",
				rootCmd.Name()),
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			ValidArgsFunction:     cobra.NoFileCompletions,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sh.gen(cmd.Root(), cmd.OutOrStdout(), !noDesc)
			},
		}
		shellCmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "disable completion descriptions")
		completionCmd.AddCommand(shellCmd)
	}

	rootCmd.AddCommand(completionCmd)
}

// styledHelpFunc renders help output as markdown through glamour
func styledHelpFunc(cmd *cobra.Command, args []string) {
	renderMarkdown(generateHelpMarkdown(cmd))
}

// styledUsageFunc renders usage output as markdown through glamour
func styledUsageFunc(cmd *cobra.Command) error {
	renderMarkdown(generateUsageMarkdown(cmd))
	return nil
}

// generateHelpMarkdown creates markdown for the help output
func generateHelpMarkdown(cmd *cobra.Command) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s\n\n", cmd.Name())
	if cmd.Long != "" {
		fmt.Fprintf(&md, "%s\n\n", cmd.Long)
	} else if cmd.Short != "" {
		fmt.Fprintf(&md, "%s\n\n", cmd.Short)
	}

	writeCommandSections(&md, cmd, "##")

	if cmd.HasExample() {
		fmt.Fprintf(&md, "## Examples\n\n```\n%s\n```\n\n", cmd.Example)
	}

	fmt.Fprintf(&md, "Use `%s [command] --help` for more information about a command.\n", cmd.CommandPath())
	return md.String()
}

// generateUsageMarkdown creates markdown for the usage output
func generateUsageMarkdown(cmd *cobra.Command) string {
	var md strings.Builder
	md.WriteString("## Usage\n\n")
	if cmd.Runnable() {
		fmt.Fprintf(&md, "```\n%s\n```\n\n", cmd.UseLine())
	}
	writeCommandSections(&md, cmd, "###")
	return md.String()
}

// writeCommandSections writes aliases, subcommands and flags under the given heading level
func writeCommandSections(md *strings.Builder, cmd *cobra.Command, level string) {
	if level == "##" && cmd.Runnable() {
		fmt.Fprintf(md, "## Usage\n\n```\n%s\n```\n\n", cmd.UseLine())
	}

	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(md, "%s Aliases\n\n`%s`\n\n", level, strings.Join(cmd.Aliases, "`, `"))
	}

	var subs []string
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() && !sub.IsAdditionalHelpTopicCommand() {
			subs = append(subs, fmt.Sprintf("- **%s** - %s", sub.Name(), sub.Short))
		}
	}
	if len(subs) > 0 {
		fmt.Fprintf(md, "%s Available Commands\n\n%s\n\n", level, strings.Join(subs, "\n"))
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(md, "%s Flags\n\n```\n%s\n```\n\n", level, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(md, "%s Global Flags\n\n```\n%s\n```\n\n", level, cmd.InheritedFlags().FlagUsages())
	}
}

// renderMarkdown prints markdown rendered through glamour
func renderMarkdown(markdown string) {
	rendered, err := RenderMarkdownToString(markdown)
	if err != nil {
		// Plain text if glamour fails
		fmt.Println(markdown)
		return
	}

	fmt.Println(strings.TrimRight(rendered, " \n"))
}

// RenderMarkdownToString renders markdown through glamour and returns the string
func RenderMarkdownToString(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(cmdutil.TerminalWidth()),
	)
	if err != nil {
		return "", err
	}

	return r.Render(markdown)
}
