// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/scroll"
)

// Step is one entry of the progress bar
type Step struct {
	Title string
	State scroll.StepState
}

// StepsConfig holds configuration for step rendering
type StepsConfig struct {
	Width int // Total width available for the bar
}

// NewSteps pairs titles with the states derived from the scroll position.
// Extra titles without a state are upcoming.
func NewSteps(titles []string, states []scroll.StepState) []Step {
	steps := make([]Step, len(titles))
	for i, title := range titles {
		state := scroll.StepUpcoming
		if i < len(states) {
			state = states[i]
		}
		steps[i] = Step{Title: title, State: state}
	}
	return steps
}

// RenderSteps renders the progress bar as a row of tabs. When the tabs do
// not fit, it falls back to a compact row of indicators plus the active
// title.
func RenderSteps(steps []Step, cfg StepsConfig) string {
	if len(steps) == 0 {
		return ""
	}

	row := renderStepTabs(steps, cfg.Width)
	if cfg.Width <= 0 || lipgloss.Width(row) <= cfg.Width {
		return row
	}
	return renderCompactSteps(steps)
}

func renderStepTabs(steps []Step, width int) string {
	theme := config.CurrentTheme
	border := stepBorderWithBottom("┴", "─", "┴")

	upcomingStyle := lipgloss.NewStyle().
		Border(border, true).
		BorderForeground(theme.GetMutedColor()).
		Padding(0, 1)

	activeStyle := lipgloss.NewStyle().
		Border(border, true).
		BorderForeground(theme.GetSecondaryColor()).
		Padding(0, 1)

	visitedStyle := lipgloss.NewStyle().
		Border(border, true).
		BorderForeground(theme.GetSuccessColor()).
		Padding(0, 1)

	var rendered []string
	for i, step := range steps {
		isFirst := i == 0
		isLast := i == len(steps)-1

		var style lipgloss.Style
		switch step.State {
		case scroll.StepActive:
			style = activeStyle
		case scroll.StepVisited:
			style = visitedStyle
		default:
			style = upcomingStyle
		}

		b, _, _, _, _ := style.GetBorder()
		if step.State == scroll.StepActive {
			// Active step opens into the content below
			b.BottomLeft = "┘"
			b.Bottom = " "
			b.BottomRight = "└"
			if isFirst {
				b.BottomLeft = "│"
			}
		} else {
			if isFirst {
				b.BottomLeft = "├"
			}
			if isLast {
				b.BottomRight = "┴"
			}
		}
		style = style.Border(b)

		rendered = append(rendered, style.Render(indicator(step.State)+" "+step.Title))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	rowWidth := lipgloss.Width(row)
	if width > rowWidth {
		remaining := width - rowWidth
		blank := strings.Repeat(" ", remaining)
		bottom := lipgloss.NewStyle().
			Foreground(theme.GetPrimaryColor()).
			Render(strings.Repeat("─", remaining))
		extension := lipgloss.JoinVertical(lipgloss.Left, blank, blank, bottom)
		return lipgloss.JoinHorizontal(lipgloss.Top, row, extension)
	}
	return row
}

func renderCompactSteps(steps []Step) string {
	theme := config.CurrentTheme

	marks := make([]string, len(steps))
	active := ""
	for i, step := range steps {
		marks[i] = indicator(step.State)
		if step.State == scroll.StepActive {
			active = step.Title
		}
	}
	out := strings.Join(marks, " ")
	if active != "" {
		out += "  " + lipgloss.NewStyle().Foreground(theme.GetSecondaryColor()).Bold(true).Render(active)
	}
	return out
}

func indicator(state scroll.StepState) string {
	theme := config.CurrentTheme
	switch state {
	case scroll.StepActive:
		return theme.ActiveIndicator()
	case scroll.StepVisited:
		return theme.CompleteIndicator()
	default:
		return theme.PendingIndicator()
	}
}

// RenderPanel renders the content pane under the progress bar
func RenderPanel(content string, width, height int) string {
	theme := config.CurrentTheme

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.GetPrimaryColor()).
		BorderTop(false).
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(content)
}

func stepBorderWithBottom(left, middle, right string) lipgloss.Border {
	b := lipgloss.RoundedBorder()
	b.BottomLeft = left
	b.Bottom = middle
	b.BottomRight = right
	return b
}
