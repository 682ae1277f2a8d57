// SPDX-License-Identifier: Apache-2.0

// Package results turns an analysis response into the records and report
// shown after a successful submission.
package results

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marx-labs/marx/pkg/analysis"
	"github.com/marx-labs/marx/pkg/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy is one recommended channel with its allocation and tactic
type Strategy struct {
	Code            string  `json:"strategy_code"`
	Title           string  `json:"title"`
	Percentage      float64 `json:"percentage"`
	MonthlyAmount   float64 `json:"monthly_amount"`
	Tactic          string  `json:"tactic"`
	Priority        string  `json:"priority"`
	ExpectedOutcome string  `json:"expected_outcome"`
}

// Result is the displayable outcome of one analysis
type Result struct {
	Status             string     `json:"status"`
	Strategies         []Strategy `json:"strategies"`
	CriticalInsights   []string   `json:"critical_insights"`
	ActionPlan         []string   `json:"action_plan"`
	Resources          []string   `json:"resources"`
	TotalMonthlyBudget float64    `json:"total_monthly_budget"`
}

// FromResponse builds a Result, joining strategies by code
func FromResponse(resp *analysis.Response) Result {
	if resp == nil {
		return Result{
			Strategies:       []Strategy{},
			CriticalInsights: []string{},
			ActionPlan:       []string{},
			Resources:        []string{},
		}
	}
	return Result{
		Status:             resp.Status,
		Strategies:         Merge(resp),
		CriticalInsights:   nonNil(resp.CriticalInsights),
		ActionPlan:         nonNil(resp.ActionPlan),
		Resources:          nonNil(resp.Resources),
		TotalMonthlyBudget: resp.TotalMonthlyBudget,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// Merge joins recommended_strategies, budget_allocation and channel_tactics
// by strategy code. Recommended order comes first; codes that only appear in
// allocations or tactics follow in the order they were first seen.
func Merge(resp *analysis.Response) []Strategy {
	out := []Strategy{}
	index := map[string]int{}

	add := func(code string) int {
		if i, ok := index[code]; ok {
			return i
		}
		index[code] = len(out)
		out = append(out, Strategy{Code: code, Title: Humanize(code)})
		return len(out) - 1
	}

	for _, code := range resp.RecommendedStrategies {
		add(code)
	}
	for _, a := range resp.BudgetAllocation {
		i := add(a.StrategyCode)
		out[i].Percentage = a.Percentage
		out[i].MonthlyAmount = a.MonthlyAmount
	}
	for _, t := range resp.ChannelTactics {
		i := add(t.StrategyCode)
		out[i].Tactic = t.Tactic
		out[i].Priority = t.Priority
		out[i].ExpectedOutcome = t.ExpectedOutcome
	}
	return out
}

// Humanize turns a strategy code like "paid_social_ads" into "Paid Social Ads"
func Humanize(code string) string {
	words := strings.FieldsFunc(code, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	caser := cases.Title(language.Und)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// Priority tiers reported by the service
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// PriorityRank orders tiers High < Medium < Low < anything else
func PriorityRank(priority string) int {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

// SortByPriority returns a copy ordered by tier, keeping the original order
// within a tier
func SortByPriority(strategies []Strategy) []Strategy {
	out := slices.Clone(strategies)
	slices.SortStableFunc(out, func(a, b Strategy) int {
		return PriorityRank(a.Priority) - PriorityRank(b.Priority)
	})
	return out
}

// PriorityColor maps a tier to a theme colour. Unknown tiers use the medium
// colour.
func PriorityColor(priority string) lipgloss.Color {
	theme := config.CurrentTheme
	switch PriorityRank(priority) {
	case 0:
		return theme.GetErrorColor()
	case 2:
		return theme.GetNeutralColor()
	default:
		return theme.GetCautionColor()
	}
}
