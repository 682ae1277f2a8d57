// SPDX-License-Identifier: Apache-2.0
package results

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/marx-labs/marx/pkg/config"
)

// Money formats an amount as "$1,234.5"
func Money(amount float64) string {
	return "$" + humanize.CommafWithDigits(amount, 2)
}

// Percent formats a percentage without trailing zeros
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// MonthsOfRunway is how many months the overall budget lasts at the
// recommended monthly spend, rounded. Zero when either side is unusable.
func MonthsOfRunway(budget, monthly float64) int {
	if budget <= 0 || monthly <= 0 {
		return 0
	}
	months := math.Round(budget / monthly)
	if math.IsInf(months, 0) || math.IsNaN(months) {
		return 0
	}
	return int(months)
}

// Report renders the result as Markdown
func Report(r Result, budget float64) string {
	var md strings.Builder

	md.WriteString("# Our Recommended Strategies\n\n")
	md.WriteString(overviewMarkdown(r, budget))

	md.WriteString("## Recommended Channels\n\n")
	if len(r.Strategies) == 0 {
		md.WriteString("_No strategies returned._\n\n")
	} else {
		md.WriteString("| Strategy | Priority | Allocation | Monthly | Tactic | Expected Outcome |\n")
		md.WriteString("|---|---|---|---|---|---|\n")
		for _, s := range SortByPriority(r.Strategies) {
			md.WriteString(fmt.Sprintf("| %s | %s | %s | %s / mo | %s | %s |\n",
				cell(s.Title), cell(s.Priority), Percent(s.Percentage), Money(s.MonthlyAmount),
				cell(s.Tactic), cell(s.ExpectedOutcome)))
		}
		md.WriteString("\n")
	}

	md.WriteString("## Action Plan\n\n")
	md.WriteString(itemsMarkdown(r.ActionPlan))

	md.WriteString("## Resources\n\n")
	md.WriteString(itemsMarkdown(r.Resources))

	return md.String()
}

// overviewMarkdown is the insights and total budget block
func overviewMarkdown(r Result, budget float64) string {
	var md strings.Builder

	md.WriteString("## Critical Insights\n\n")
	if len(r.CriticalInsights) == 0 {
		md.WriteString("_None._\n\n")
	} else {
		for _, insight := range r.CriticalInsights {
			md.WriteString("- " + insight + "\n")
		}
		md.WriteString("\n")
	}

	md.WriteString("## Total Budget\n\n")
	md.WriteString(fmt.Sprintf("**%s USD/mo** · %d Months\n\n",
		Money(r.TotalMonthlyBudget), MonthsOfRunway(budget, r.TotalMonthlyBudget)))
	return md.String()
}

func itemsMarkdown(lines []string) string {
	if len(lines) == 0 {
		return "_None._\n\n"
	}
	var md strings.Builder
	for _, it := range ParseItems(lines) {
		if it.Tag == TagNone {
			md.WriteString("- " + it.Text + "\n")
			continue
		}
		md.WriteString(fmt.Sprintf("- %s **%s** %s\n", it.Tag.Icon(), it.Label(), it.Text))
	}
	md.WriteString("\n")
	return md.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "-"
	}
	return s
}

// Render renders Markdown through glamour, falling back to the raw text
func Render(markdown string, width int) string {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, " \n")
}

// View renders the result for the terminal: the overview through glamour,
// then one card per strategy coloured by priority and the tagged lists.
func View(r Result, budget float64, width int) string {
	theme := config.CurrentTheme
	if width <= 0 {
		width = 100
	}

	titleStyle := lipgloss.NewStyle().Foreground(theme.GetPrimaryColor()).Bold(true)
	var b strings.Builder

	b.WriteString(titleStyle.Render("Our Recommended Strategies"))
	b.WriteString("\n\n")
	b.WriteString(Render(overviewMarkdown(r, budget), width))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Recommended Channels"))
	b.WriteString("\n\n")
	cardWidth := width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}
	for _, s := range SortByPriority(r.Strategies) {
		b.WriteString(strategyCard(s, cardWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Action Plan"))
	b.WriteString("\n")
	b.WriteString(itemList(r.ActionPlan, width))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Resources"))
	b.WriteString("\n")
	b.WriteString(itemList(r.Resources, width))

	return b.String()
}

func strategyCard(s Strategy, width int) string {
	color := PriorityColor(s.Priority)
	label := lipgloss.NewStyle().Bold(true)
	heading := lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(s.Title))

	priority := s.Priority
	if priority == "" {
		priority = "-"
	}
	body := strings.Join([]string{
		heading,
		label.Render("Priority: ") + priority,
		label.Render("Tactic: ") + s.Tactic,
		label.Render("Expected Outcome: ") + s.ExpectedOutcome,
		label.Render("Budget: ") + Percent(s.Percentage) + "  " + Money(s.MonthlyAmount) + " / mo",
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width).
		Render(body)
}

func itemList(lines []string, width int) string {
	if len(lines) == 0 {
		return config.CurrentTheme.SubtleStyle().Render("  None") + "\n"
	}
	textStyle := lipgloss.NewStyle().Width(width - 4)
	var b strings.Builder
	for _, it := range ParseItems(lines) {
		icon := lipgloss.NewStyle().Foreground(it.Color()).Render(it.Tag.Icon())
		b.WriteString("  " + icon + " " + textStyle.Render(it.Text) + "\n")
	}
	return b.String()
}
