// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/cmd/cmdutil"
	"github.com/marx-labs/marx/pkg/analysis"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/results"
	"github.com/marx-labs/marx/pkg/ui"
	"github.com/marx-labs/marx/pkg/wizard"
	"github.com/spf13/cobra"
)

// answerFlags lists one flag per state key; the flag name is the key with dashes
var answerFlags = []struct {
	key   wizard.Key
	usage string
}{
	{wizard.KeyBudget, "Monthly marketing budget in USD"},
	{wizard.KeyProductType, "Product type option id"},
	{wizard.KeyTargetCustomer, "Target customer option id"},
	{wizard.KeyPrimaryGoal, "Primary goal option id"},
	{wizard.KeyTimeHorizon, "Time horizon option id"},
	{wizard.KeyContentCapability, "Content capability option id"},
	{wizard.KeySalesStructure, "Sales structure option id"},
	{wizard.KeyPriorityKPI, "Priority KPI option id"},
}

// package-level flag variables bound to cobra flags
var (
	flagAnswers     string
	flagSaveAnswers string
	flagOutput      string
	flagForce       bool
	flagValues      = map[wizard.Key]*string{}
)

// NewQuizCmd returns the quiz command
func NewQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Answer the marketing quiz and get a strategy",
		Long: `Collects your budget, product, audience, goal, time horizon, content
capability, sales structure and priority KPI, then asks the analysis
service for a recommended channel mix.

Interactive mode (default when stdin is a terminal and use-tui is true):
  Scroll through the quiz, review the summary and analyze it in place.
  Answers given as flags or through --answers are pre-filled.

Non-interactive mode (every answer supplied):
  Submits the answers at once and prints the report as markdown or json.
  Run 'marx options' to list the option ids.`,
		Example: `  # Interactive quiz
  marx quiz

  # Non-interactive
  marx quiz --budget 5000 --product-type b2c_retail_goods \
    --target-customer gen_z --primary-goal immediate_lead_generation \
    --sales-structure automated_ecommerce --priority-kpi conversion_rate

  # Replay saved answers as JSON
  marx quiz --answers answers.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: runQuiz,
	}

	for _, f := range answerFlags {
		v := new(string)
		flagValues[f.key] = v
		cmd.Flags().StringVar(v, cmdutil.FlagName(string(f.key)), "", f.usage)
	}
	cmd.Flags().StringVar(&flagAnswers, "answers", "", "Read answers from a YAML file")
	cmd.Flags().StringVar(&flagSaveAnswers, "save-answers", "", "Write the final answers to a YAML file")
	cmd.Flags().Lookup("save-answers").NoOptDefVal = config.GlobalPaths.AnswersFile
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format: markdown, json (default from output.format)")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite the --save-answers file without asking")

	return cmd
}

// runQuiz is the cobra RunE handler
func runQuiz(cmd *cobra.Command, args []string) error {
	state, provided, err := collectAnswers(cmd)
	if err != nil {
		return err
	}

	format := flagOutput
	if format == "" {
		format = config.GetOutputFormat()
	}
	if err := config.ValidateValue("output.format", format, config.ScopeUser); err != nil {
		return fmt.Errorf("invalid --output: %w", err)
	}

	store := wizard.NewStoreFrom(state)
	client := analysis.NewClientFromConfig()
	defer client.Close()

	if provided && store.IsComplete() {
		return runNonInteractive(cmd.OutOrStdout(), client, store, format)
	}
	if shouldUseTUI() {
		return runInteractive(cmd.OutOrStdout(), client, store)
	}
	if err := store.Validate(); err != nil {
		return fmt.Errorf("%w (pass every answer as a flag or use --answers)", err)
	}
	return runNonInteractive(cmd.OutOrStdout(), client, store, format)
}

// collectAnswers merges the answers file with explicit flags. Flags win.
func collectAnswers(cmd *cobra.Command) (wizard.State, bool, error) {
	state := wizard.NewState()
	provided := false

	if flagAnswers != "" {
		loaded, err := wizard.LoadAnswers(flagAnswers)
		if err != nil {
			return wizard.State{}, false, err
		}
		state = loaded
		provided = true
	}

	store := wizard.NewStoreFrom(state)
	for _, f := range answerFlags {
		if !cmd.Flags().Changed(cmdutil.FlagName(string(f.key))) {
			continue
		}
		if err := store.SetField(f.key, *flagValues[f.key]); err != nil {
			return wizard.State{}, false, err
		}
		provided = true
	}

	merged := store.Snapshot()
	if err := wizard.ValidateChoices(merged); err != nil {
		return wizard.State{}, false, fmt.Errorf("%w (run 'marx options' to list valid ids)", err)
	}
	return merged, provided, nil
}

// shouldUseTUI returns true when stdin is a TTY AND use-tui is enabled in config
func shouldUseTUI() bool {
	return cmdutil.IsInteractive()
}

// runInteractive launches the Bubble Tea quiz
func runInteractive(out io.Writer, client Analyzer, store *wizard.Store) error {
	p := tea.NewProgram(
		NewWizardModel(store, client, DefaultOptions()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("quiz failed: %w", err)
	}

	m, ok := final.(WizardModel)
	if !ok {
		return nil
	}

	if flagSaveAnswers != "" && m.Store().Revision() > 0 {
		if err := saveAnswers(flagSaveAnswers, m.Store().Snapshot()); err != nil {
			return err
		}
	}

	// Leave the report on screen once the alt screen is gone
	if r := finalReport(m); r != nil {
		fmt.Fprintln(out, results.Render(results.Report(*r, m.Store().BudgetAmount()), cmdutil.TerminalWidth()))
	}
	return nil
}

// finalReport is the result still on screen when the quiz ended, if any
func finalReport(m WizardModel) *results.Result {
	if m.Mode() != ModeResults {
		return nil
	}
	return m.Result()
}

// runNonInteractive submits the answers and prints the report
func runNonInteractive(out io.Writer, client Analyzer, store *wizard.Store, format string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("running quiz non-interactively", "url", client.URL(), "format", format)
	resp, err := client.Analyze(ctx, analysis.NewRequest(store.Snapshot()))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if flagSaveAnswers != "" {
		if err := saveAnswers(flagSaveAnswers, store.Snapshot()); err != nil {
			return err
		}
	}

	return writeReport(out, results.FromResponse(resp), store.BudgetAmount(), format, cmdutil.IsTerminal(out))
}

// writeReport prints a result in the requested format. Markdown is styled
// through glamour only when writing to a terminal.
func writeReport(out io.Writer, r results.Result, budget float64, format string, styled bool) error {
	switch format {
	case "json":
		return cmdutil.WriteJSON(out, r)
	default:
		md := results.Report(r, budget)
		if styled {
			md = results.Render(md, cmdutil.TerminalWidth())
		}
		_, err := fmt.Fprintln(out, md)
		return err
	}
}

// saveAnswers writes the answers file, asking before an overwrite
func saveAnswers(path string, s wizard.State) error {
	if _, err := os.Stat(path); err == nil && !flagForce {
		if !cmdutil.IsStdinTerminal() {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		ok, err := ui.Confirm(fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, config.CurrentTheme.WarningMessage("Answers not saved"))
			return nil
		}
	}

	if err := wizard.SaveAnswers(path, s); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, config.CurrentTheme.SuccessMessage("Answers saved to "+path))
	return nil
}
