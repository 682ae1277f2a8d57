// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/pkg/analysis"
	"github.com/marx-labs/marx/pkg/catalog"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/results"
	"github.com/marx-labs/marx/pkg/wizard"
)

// Analyzer submits a completed quiz to the analysis service
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Response, error)
	URL() string
}

// SummaryView renders the review of all answers. Rendering is skipped when
// neither the answers nor the width changed since the last render.
type SummaryView struct {
	fingerprint string
	width       int
	content     string
	renders     int // times the summary was actually rebuilt
}

// Render returns the summary for the current answers
func (v *SummaryView) Render(store *wizard.Store, width int) string {
	fp := store.Fingerprint()
	if v.renders > 0 && fp == v.fingerprint && width == v.width {
		return v.content
	}

	v.fingerprint = fp
	v.width = width
	v.content = renderSummary(store, width)
	v.renders++
	log.Debug("summary rendered", "renders", v.renders, "revision", store.Revision())
	return v.content
}

// summaryRows groups the category keys as they are laid out on screen
var summaryRows = [][]wizard.Key{
	{wizard.KeyProductType, wizard.KeyTargetCustomer, wizard.KeyPrimaryGoal, wizard.KeyTimeHorizon},
	{wizard.KeyContentCapability, wizard.KeySalesStructure, wizard.KeyPriorityKPI},
}

func renderSummary(store *wizard.Store, width int) string {
	theme := config.CurrentTheme

	title := lipgloss.NewStyle().
		Foreground(theme.GetPrimaryColor()).
		Bold(true).
		Render("SUMMARY")
	budget := lipgloss.NewStyle().
		Foreground(theme.GetHighlightColor()).
		Italic(true).
		Render("Budget: " + results.Money(store.BudgetAmount()))

	cardWidth := width/4 - 2
	if cardWidth < 14 {
		cardWidth = 14
	}

	var rows []string
	for _, keys := range summaryRows {
		var cards []string
		for _, key := range keys {
			if card := miniCard(store.Field(key), cardWidth); card != "" {
				cards = append(cards, card)
			}
		}
		if len(cards) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		}
	}

	block := lipgloss.JoinVertical(lipgloss.Center,
		title,
		budget,
		"",
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// miniCard renders one chosen option; unknown or empty ids render nothing
func miniCard(id string, width int) string {
	e, ok := catalog.Find(id)
	if !ok {
		return ""
	}
	theme := config.CurrentTheme
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.GetMutedColor()).
		Width(width).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Render(e.Icon + "\n" + strings.ToUpper(e.Title))
}

// submit starts one analysis request. The returned cancel func aborts it.
func submit(client Analyzer, store *wizard.Store, submission int) (tea.Cmd, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	req := analysis.NewRequest(store.Snapshot())

	log.Info("submitting quiz", "submission", submission, "url", client.URL())
	return func() tea.Msg {
		resp, err := client.Analyze(ctx, req)
		return AnalysisResultMsg{Submission: submission, Response: resp, Err: err}
	}, cancel
}
