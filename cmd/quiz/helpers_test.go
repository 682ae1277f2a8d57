// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marx-labs/marx/pkg/analysis"
	"github.com/marx-labs/marx/pkg/wizard"
)

// fakeAnalyzer records requests and replies with a canned response
type fakeAnalyzer struct {
	resp  *analysis.Response
	err   error
	calls int
	last  analysis.Request
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req analysis.Request) (*analysis.Response, error) {
	f.calls++
	f.last = req
	if err := ctx.Err(); err != nil {
		return nil, analysis.ErrCanceled
	}
	return f.resp, f.err
}

func (f *fakeAnalyzer) URL() string { return "http://analysis.test/api/analyze" }

func sampleResponse() *analysis.Response {
	return &analysis.Response{
		Status:                "success",
		RecommendedStrategies: []string{"content_marketing", "paid_social"},
		BudgetAllocation: []analysis.Allocation{
			{StrategyCode: "content_marketing", Percentage: 60, MonthlyAmount: 3000},
			{StrategyCode: "paid_social", Percentage: 40, MonthlyAmount: 2000},
		},
		TotalMonthlyBudget: 5000,
		ActionPlan:         []string{"[Quick Win - High] Launch a referral offer"},
	}
}

func completeStore() *wizard.Store {
	s := wizard.NewState()
	s.Budget = "5000"
	s.ProductType = "b2c_retail_goods"
	s.TargetCustomer = "gen_z"
	s.PrimaryGoal = "immediate_lead_generation"
	s.SalesStructure = "automated_ecommerce"
	s.PriorityKPI = "conversion_rate"
	return wizard.NewStoreFrom(s)
}

func testOptions() Options {
	return Options{Debounce: 10 * time.Millisecond, AutoAdvance: true}
}

// newSizedModel creates a wizard and delivers the first window size
func newSizedModel(t *testing.T, store *wizard.Store, client Analyzer) WizardModel {
	t.Helper()
	if client == nil {
		client = &fakeAnalyzer{resp: sampleResponse()}
	}
	m := NewWizardModel(store, client, testOptions())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(WizardModel)
}

// press sends one key to the model
func press(t *testing.T, m WizardModel, key string) (WizardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(keyMsg(key))
	return updated.(WizardModel), cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// focusSection scrolls the model so the section sits in the middle
func focusSection(t *testing.T, m WizardModel, id string) WizardModel {
	t.Helper()
	i := m.layout.Index(id)
	if i < 0 {
		t.Fatalf("section %s not in layout", id)
	}
	m.centerOn(i)
	if m.progress.CurrentID != id {
		t.Fatalf("expected %s to be current after centering, got %s", id, m.progress.CurrentID)
	}
	return m
}
