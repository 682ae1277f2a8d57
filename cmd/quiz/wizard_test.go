// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marx-labs/marx/pkg/analysis"
	"github.com/marx-labs/marx/pkg/catalog"
	"github.com/marx-labs/marx/pkg/scroll"
	"github.com/marx-labs/marx/pkg/wizard"
)

func TestWizardModel_Init(t *testing.T) {
	m := NewWizardModel(nil, &fakeAnalyzer{}, testOptions())

	// Budget plus seven categories
	if len(m.sections) != 8 {
		t.Errorf("expected 8 sections, got %d", len(m.sections))
	}
	if m.budget == nil {
		t.Fatal("expected the first section to be the budget field")
	}
	if m.mode != ModeQuiz {
		t.Errorf("expected quiz mode, got %s", m.mode)
	}
	if got := m.View(); got != "Initializing..." {
		t.Errorf("expected placeholder view before the first resize, got %q", got)
	}
}

func TestWizardModel_WindowSize(t *testing.T) {
	m := newSizedModel(t, nil, nil)

	if len(m.layout.Sections) != 10 {
		t.Fatalf("expected 10 sections (home, 8 cards, summary), got %d", len(m.layout.Sections))
	}
	if m.layout.Sections[0].ID != homeID || m.layout.Sections[9].ID != summaryID {
		t.Errorf("unexpected section order: first=%s last=%s", m.layout.Sections[0].ID, m.layout.Sections[9].ID)
	}
	if m.viewport.Height != 33 {
		t.Errorf("expected viewport height 33, got %d", m.viewport.Height)
	}
	if m.progress.CurrentID != homeID {
		t.Errorf("expected home to be current, got %s", m.progress.CurrentID)
	}
	if m.progress.NextVisible {
		t.Error("next control should be hidden on the landing section")
	}
	if view := m.View(); !strings.Contains(view, "MARX") {
		t.Error("expected the header in the view")
	}
}

func TestWizardModel_NextFromHome(t *testing.T) {
	m := newSizedModel(t, nil, nil)

	m, _ = press(t, m, "enter")
	if m.progress.CurrentID != "budget" {
		t.Fatalf("expected budget after leaving home, got %s", m.progress.CurrentID)
	}
	if !m.progress.NextVisible {
		t.Error("next control should be visible inside the form")
	}
	if m.progress.NextLabel != scroll.LabelNext {
		t.Errorf("expected label %q, got %q", scroll.LabelNext, m.progress.NextLabel)
	}

	m, _ = press(t, m, "n")
	if m.progress.CurrentID != "product" {
		t.Errorf("expected product after next, got %s", m.progress.CurrentID)
	}

	// Step states follow the scroll position
	if m.progress.Steps[0] != scroll.StepVisited || m.progress.Steps[1] != scroll.StepActive {
		t.Errorf("unexpected step states: %v", m.progress.Steps)
	}
}

func TestWizardModel_SummarizeIncomplete(t *testing.T) {
	tests := []struct {
		name        string
		store       *wizard.Store
		wantStatus  string
		wantSection string
	}{
		{
			name:        "nothing answered",
			store:       wizard.NewStore(),
			wantStatus:  "Please complete the BUDGET section.",
			wantSection: "budget",
		},
		{
			name: "budget only",
			store: func() *wizard.Store {
				s := wizard.NewStore()
				_ = s.SetField(wizard.KeyBudget, "1200")
				return s
			}(),
			wantStatus:  "Please complete the PRODUCT TYPE section.",
			wantSection: "product",
		},
		{
			name: "kpi missing",
			store: func() *wizard.Store {
				s := completeStore()
				st := s.Snapshot()
				st.PriorityKPI = ""
				return wizard.NewStoreFrom(st)
			}(),
			wantStatus:  "Please complete the PRIORITY KPI section.",
			wantSection: "kpi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSizedModel(t, tt.store, nil)
			m, _ = press(t, m, "G")
			if m.progress.CurrentID != summaryID {
				t.Fatalf("expected summary to be current at the bottom, got %s", m.progress.CurrentID)
			}

			m, _ = press(t, m, "enter")
			if m.mode != ModeQuiz {
				t.Errorf("expected to stay in quiz mode, got %s", m.mode)
			}
			if m.status != tt.wantStatus {
				t.Errorf("status = %q, want %q", m.status, tt.wantStatus)
			}
			if m.progress.CurrentID != tt.wantSection {
				t.Errorf("expected %s to be scrolled into view, got %s", tt.wantSection, m.progress.CurrentID)
			}
		})
	}
}

func TestWizardModel_SummarizeComplete(t *testing.T) {
	m := newSizedModel(t, completeStore(), nil)
	m, _ = press(t, m, "G")
	m, _ = press(t, m, "enter")

	if m.mode != ModeSummary {
		t.Fatalf("expected summary mode, got %s", m.mode)
	}
	if m.viewport.YOffset != 0 {
		t.Errorf("expected summary scrolled to top, got offset %d", m.viewport.YOffset)
	}
	states := m.stepStates()
	if states[len(states)-1] != scroll.StepActive {
		t.Errorf("summary step should be active, got %v", states)
	}
	if !strings.Contains(m.View(), "ANALYZE STRATEGY") {
		t.Error("expected the analyze button in summary mode")
	}
}

func TestWizardModel_NextSummarizesFromLastCard(t *testing.T) {
	m := newSizedModel(t, wizard.NewStore(), nil)
	m = focusSection(t, m, "kpi")

	if m.progress.NextLabel != scroll.LabelSummarize {
		t.Fatalf("expected %q on the last card, got %q", scroll.LabelSummarize, m.progress.NextLabel)
	}

	m, _ = press(t, m, "n")
	if m.mode != ModeQuiz {
		t.Error("incomplete answers must not reach the summary")
	}
	if m.progress.CurrentID != "budget" {
		t.Errorf("expected budget to be brought into view, got %s", m.progress.CurrentID)
	}
}

func TestWizardModel_GridSelection(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m = focusSection(t, m, "product")

	m, _ = press(t, m, "right")
	m, cmd := press(t, m, "enter")

	products, _ := catalog.ByID("product")
	if got := m.store.Field(wizard.KeyProductType); got != products.Entries[1].ID {
		t.Errorf("product_type = %q, want %q", got, products.Entries[1].ID)
	}
	if m.store.Field(wizard.KeyTargetCustomer) != "" {
		t.Error("selecting a product must not touch other keys")
	}
	if cmd == nil {
		t.Fatal("expected a selection command")
	}

	msg, ok := cmd().(SectionSelectedMsg)
	if !ok || msg.SectionID != "product" {
		t.Fatalf("expected SectionSelectedMsg for product, got %#v", msg)
	}

	updated, _ := m.Update(msg)
	m = updated.(WizardModel)
	if m.progress.CurrentID != "customer" {
		t.Errorf("expected auto-advance to customer, got %s", m.progress.CurrentID)
	}
}

func TestWizardModel_GridSelection_LastWriteWins(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m.opts.AutoAdvance = false
	m = focusSection(t, m, "goal")

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "right")
	m, cmd := press(t, m, "enter")

	goals, _ := catalog.ByID("goal")
	if got := m.store.Field(wizard.KeyPrimaryGoal); got != goals.Entries[1].ID {
		t.Errorf("primary_goal = %q, want %q", got, goals.Entries[1].ID)
	}

	updated, _ := m.Update(cmd())
	m = updated.(WizardModel)
	if m.progress.CurrentID != "goal" {
		t.Errorf("auto-advance disabled, expected to stay on goal, got %s", m.progress.CurrentID)
	}
}

func TestWizardModel_Slider(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m = focusSection(t, m, "time_horizon")

	m, _ = press(t, m, "left")
	if got := m.store.Field(wizard.KeyTimeHorizon); got != "short_term" {
		t.Errorf("time_horizon = %q, want short_term", got)
	}

	// Clamped at the first stop
	rev := m.store.Revision()
	m, _ = press(t, m, "left")
	if m.store.Revision() != rev {
		t.Error("stepping past the first stop should not write")
	}

	m, _ = press(t, m, "right")
	m, _ = press(t, m, "right")
	if got := m.store.Field(wizard.KeyTimeHorizon); got != "long_term" {
		t.Errorf("time_horizon = %q, want long_term", got)
	}
}

func TestWizardModel_ClickSnapsSlider(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m = focusSection(t, m, "time_horizon")

	row, ok := m.bars["time_horizon"]
	if !ok {
		t.Fatal("expected the slider bar to be tracked")
	}
	y := panelTop + row - m.viewport.YOffset
	if lines := strings.Split(m.View(), "\n"); !strings.ContainsAny(lines[y], "█░") {
		t.Fatalf("screen row %d is not the bar: %q", y, lines[y])
	}
	s := m.focused().(*SliderSection)

	click := func(m WizardModel, x, y int) WizardModel {
		updated, _ := m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
		return updated.(WizardModel)
	}

	m = click(m, panelLeft+s.barWidth-1, y)
	if got := m.store.Field(wizard.KeyTimeHorizon); got != "long_term" {
		t.Errorf("click on the right end: time_horizon = %q, want long_term", got)
	}

	// Off the bar nothing moves
	rev := m.store.Revision()
	m = click(m, panelLeft, y+1)
	if m.store.Revision() != rev {
		t.Error("a click below the bar should not write")
	}

	m = click(m, panelLeft, y)
	if got := m.store.Field(wizard.KeyTimeHorizon); got != "short_term" {
		t.Errorf("click on the left end: time_horizon = %q, want short_term", got)
	}
	if m.progress.CurrentID != "time_horizon" {
		t.Errorf("a click should not scroll away, current = %s", m.progress.CurrentID)
	}
}

func TestWizardModel_BudgetDebounce(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m = focusSection(t, m, "budget")

	m, _ = press(t, m, "5")
	m, cmd := press(t, m, "0")
	if cmd == nil {
		t.Fatal("expected a debounce tick to be scheduled")
	}
	if m.budget.Value() != "50" {
		t.Fatalf("field = %q, want 50", m.budget.Value())
	}
	if m.store.Field(wizard.KeyBudget) != "" {
		t.Error("budget must not be committed before the debounce fires")
	}

	// The first keystroke's tick is stale
	updated, _ := m.Update(BudgetDebounceMsg{Seq: 1})
	m = updated.(WizardModel)
	if m.store.Field(wizard.KeyBudget) != "" {
		t.Error("stale tick must not commit")
	}

	updated, _ = m.Update(BudgetDebounceMsg{Seq: m.budget.seq})
	m = updated.(WizardModel)
	if got := m.store.Field(wizard.KeyBudget); got != "50" {
		t.Errorf("budget = %q, want 50", got)
	}
}

func TestWizardModel_BudgetEnterCommits(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m = focusSection(t, m, "budget")

	m, _ = press(t, m, "7")
	m, _ = press(t, m, "5")
	seq := m.budget.seq
	m, cmd := press(t, m, "enter")

	if got := m.store.Field(wizard.KeyBudget); got != "75" {
		t.Errorf("budget = %q, want 75", got)
	}
	if _, ok := cmd().(SectionSelectedMsg); !ok {
		t.Error("enter should announce the selection")
	}

	// A tick scheduled before enter is now stale
	if m.budget.Commit(BudgetDebounceMsg{Seq: seq}, m.store) {
		t.Error("tick scheduled before enter should be stale")
	}
}

func TestWizardModel_SummarizeFlushesBudget(t *testing.T) {
	store := completeStore()
	if err := store.SetField(wizard.KeyBudget, ""); err != nil {
		t.Fatal(err)
	}
	m := newSizedModel(t, store, nil)
	m = focusSection(t, m, "budget")

	for _, k := range []string{"5", "0", "0", "0"} {
		m, _ = press(t, m, k)
	}
	pending := m.budget.seq

	// No debounce tick has fired yet
	m, _ = press(t, m, "G")
	m, _ = press(t, m, "enter")
	if m.mode != ModeSummary {
		t.Fatalf("expected summary mode, got %s (status %q)", m.mode, m.status)
	}
	if got := m.store.Field(wizard.KeyBudget); got != "5000" {
		t.Errorf("budget = %q, want 5000", got)
	}

	rev := m.store.Revision()
	updated, _ := m.Update(BudgetDebounceMsg{Seq: pending})
	m = updated.(WizardModel)
	if m.store.Revision() != rev {
		t.Error("the late tick should be stale")
	}
}

func TestWizardModel_NextFlushesBudget(t *testing.T) {
	m := newSizedModel(t, nil, nil)
	m = focusSection(t, m, "budget")

	m, _ = press(t, m, "8")
	m, _ = press(t, m, "0")
	m, _ = press(t, m, "n")
	if got := m.store.Field(wizard.KeyBudget); got != "80" {
		t.Errorf("budget = %q, want 80", got)
	}
	if m.progress.CurrentID == "budget" {
		t.Error("next should leave the budget card")
	}
}

// summarized returns a model showing the summary of a complete quiz
func summarized(t *testing.T, client Analyzer) WizardModel {
	t.Helper()
	m := newSizedModel(t, completeStore(), client)
	m, _ = press(t, m, "G")
	m, _ = press(t, m, "enter")
	if m.mode != ModeSummary {
		t.Fatalf("expected summary mode, got %s", m.mode)
	}
	return m
}

// analyzed returns a model showing the results of a complete quiz
func analyzed(t *testing.T) WizardModel {
	t.Helper()
	m := summarized(t, &fakeAnalyzer{resp: sampleResponse()})
	m, _ = press(t, m, "a")
	updated, _ := m.Update(AnalysisResultMsg{Submission: m.submission, Response: sampleResponse()})
	m = updated.(WizardModel)
	if m.mode != ModeResults {
		t.Fatalf("expected results mode, got %s", m.mode)
	}
	return m
}

func TestWizardModel_Analyze(t *testing.T) {
	client := &fakeAnalyzer{resp: sampleResponse()}
	m := summarized(t, client)

	m, cmd := press(t, m, "a")
	if cmd == nil || !m.busy {
		t.Fatal("expected a submission in flight")
	}
	if !strings.Contains(m.View(), "Synthesizing Strategy...") {
		t.Error("expected the busy indicator")
	}

	// A second analyze while busy is ignored
	submission := m.submission
	m, cmd = press(t, m, "enter")
	if cmd != nil || m.submission != submission {
		t.Error("analyze while busy should be ignored")
	}

	updated, _ := m.Update(AnalysisResultMsg{Submission: submission, Response: sampleResponse()})
	m = updated.(WizardModel)

	if m.mode != ModeResults {
		t.Fatalf("expected results mode, got %s", m.mode)
	}
	if m.busy {
		t.Error("busy flag should be cleared")
	}
	if m.Result() == nil || len(m.Result().Strategies) != 2 {
		t.Fatalf("unexpected result: %+v", m.Result())
	}
	if m.viewport.YOffset != 0 {
		t.Errorf("results should start at the top, got offset %d", m.viewport.YOffset)
	}
}

func TestWizardModel_AnalyzeError(t *testing.T) {
	m := summarized(t, nil)

	m, _ = press(t, m, "a")
	updated, _ := m.Update(AnalysisResultMsg{
		Submission: m.submission,
		Err:        &analysis.ServerError{Status: 500, Body: "boom"},
	})
	m = updated.(WizardModel)

	if m.mode != ModeSummary {
		t.Errorf("expected to stay on the summary, got %s", m.mode)
	}
	if !strings.Contains(m.status, "HTTP 500") {
		t.Errorf("status should name the failure, got %q", m.status)
	}

	// Retry is allowed
	before := m.submission
	m, cmd := press(t, m, "enter")
	if cmd == nil || m.submission != before+1 {
		t.Error("expected a new submission on retry")
	}
}

func TestWizardModel_StaleReplyDiscarded(t *testing.T) {
	m := summarized(t, nil)

	m, _ = press(t, m, "a")
	stale := m.submission

	// Editing aborts the submission in flight
	m, _ = press(t, m, "e")
	if m.mode != ModeQuiz {
		t.Fatalf("expected quiz mode after edit, got %s", m.mode)
	}
	if m.busy {
		t.Error("edit should clear the busy flag")
	}
	if m.progress.CurrentID != "product" {
		t.Errorf("edit should scroll to the first category, got %s", m.progress.CurrentID)
	}

	updated, _ := m.Update(AnalysisResultMsg{Submission: stale, Response: sampleResponse()})
	m = updated.(WizardModel)
	if m.mode != ModeQuiz || m.Result() != nil {
		t.Error("late reply of an aborted submission must be discarded")
	}
}

func TestWizardModel_SummaryRenderedOnce(t *testing.T) {
	m := summarized(t, nil)
	renders := m.summary.renders

	// Scrolling re-renders the frame but not the summary
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "k")
	if got := m.summary.renders; got != renders {
		t.Errorf("summary re-rendered without changes: %d -> %d", renders, got)
	}

	// Editing an answer invalidates it
	m, _ = press(t, m, "e")
	_ = m.store.SetField(wizard.KeyPriorityKPI, "cost_per_acquisition")
	m, _ = press(t, m, "G")
	m, _ = press(t, m, "enter")
	if got := m.summary.renders; got != renders+1 {
		t.Errorf("expected exactly one new render, got %d -> %d", renders, got)
	}
}

func TestWizardModel_ScrollKeepsContent(t *testing.T) {
	tests := []struct {
		name  string
		model func(t *testing.T) WizardModel
	}{
		{"summary", func(t *testing.T) WizardModel { return summarized(t, nil) }},
		{"results", analyzed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.model(t)
			sets := m.contentSets

			for _, k := range []string{"j", "j", "k", "G", "g"} {
				m, _ = press(t, m, k)
			}
			if m.contentSets != sets {
				t.Errorf("scrolling replaced the content: %d -> %d", sets, m.contentSets)
			}

			updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
			m = updated.(WizardModel)
			if m.contentSets != sets+1 {
				t.Errorf("a new width should rebuild once: %d -> %d", sets, m.contentSets)
			}
		})
	}
}

func TestWizardModel_EditDropsResult(t *testing.T) {
	m := analyzed(t)
	if finalReport(m) == nil {
		t.Fatal("expected a report on the results screen")
	}

	m, _ = press(t, m, "e")
	if m.Result() != nil {
		t.Error("edit should drop the old result")
	}
	if finalReport(m) != nil {
		t.Error("no report should be printed after leaving the results")
	}
}

func TestWizardModel_StartOver(t *testing.T) {
	m := analyzed(t)

	m, _ = press(t, m, "r")
	if m.confirm == nil {
		t.Fatal("expected a confirmation before starting over")
	}
	m, _ = press(t, m, "n")
	if m.mode != ModeResults || m.Result() == nil {
		t.Fatal("declining should keep the results")
	}

	m, _ = press(t, m, "r")
	m, _ = press(t, m, "y")
	if m.quitting {
		t.Fatal("starting over must not quit")
	}
	if m.mode != ModeQuiz || m.Result() != nil {
		t.Errorf("expected an empty quiz, mode=%s result=%v", m.mode, m.Result())
	}
	if m.store.IsComplete() || m.store.Field(wizard.KeyProductType) != "" {
		t.Error("answers should be cleared")
	}
	if m.store.Field(wizard.KeyTimeHorizon) != "medium_term" {
		t.Error("sliders should be back on their defaults")
	}
	if m.budget.Value() != "" {
		t.Errorf("budget field = %q, want empty", m.budget.Value())
	}
	if m.progress.CurrentID != homeID || m.viewport.YOffset != 0 {
		t.Errorf("expected the welcome card, got %s at %d", m.progress.CurrentID, m.viewport.YOffset)
	}
}

func TestWizardModel_StartOverFromSummary(t *testing.T) {
	m := summarized(t, nil)

	m, _ = press(t, m, "r")
	m, _ = press(t, m, "esc")
	if m.confirm != nil || m.mode != ModeSummary {
		t.Fatal("esc should close the dialog and stay on the summary")
	}

	m, _ = press(t, m, "r")
	m, _ = press(t, m, "y")
	if m.mode != ModeQuiz || m.store.Field(wizard.KeyBudget) != "" {
		t.Errorf("expected an empty quiz, mode=%s", m.mode)
	}
}

func TestWizardModel_Quit(t *testing.T) {
	// Nothing answered: quit at once
	m := newSizedModel(t, nil, nil)
	m, cmd := press(t, m, "esc")
	if !m.quitting || cmd == nil {
		t.Error("expected immediate quit without answers")
	}

	// With answers a confirmation is shown first
	m = newSizedModel(t, completeStore(), nil)
	m, _ = press(t, m, "esc")
	if m.confirm == nil {
		t.Fatal("expected a confirmation before quitting")
	}
	m, _ = press(t, m, "n")
	if m.confirm != nil || m.quitting {
		t.Error("answering no should return to the quiz")
	}

	m, _ = press(t, m, "esc")
	m, _ = press(t, m, "y")
	if !m.quitting {
		t.Error("answering yes should quit")
	}
}

func TestWizardModel_CtrlCAbortsSubmission(t *testing.T) {
	m := summarized(t, nil)
	m, _ = press(t, m, "a")

	m, _ = press(t, m, "ctrl+c")
	if !m.quitting {
		t.Error("ctrl+c should quit")
	}
	if m.busy || m.cancel != nil {
		t.Error("ctrl+c should cancel the submission in flight")
	}
}

func TestSectionFor(t *testing.T) {
	tests := map[wizard.Key]string{
		wizard.KeyBudget:            "budget",
		wizard.KeyProductType:       "product",
		wizard.KeyTargetCustomer:    "customer",
		wizard.KeyPrimaryGoal:       "goal",
		wizard.KeyTimeHorizon:       "time_horizon",
		wizard.KeyContentCapability: "content_capability",
		wizard.KeySalesStructure:    "sales",
		wizard.KeyPriorityKPI:       "kpi",
	}
	for key, want := range tests {
		if got := sectionFor(key); got != want {
			t.Errorf("sectionFor(%s) = %s, want %s", key, got, want)
		}
	}
}

func TestSubmit(t *testing.T) {
	client := &fakeAnalyzer{resp: sampleResponse()}
	cmd, cancel := submit(client, completeStore(), 7)
	defer cancel()

	msg, ok := cmd().(AnalysisResultMsg)
	if !ok {
		t.Fatal("expected AnalysisResultMsg")
	}
	if msg.Submission != 7 || msg.Err != nil {
		t.Errorf("unexpected message: %+v", msg)
	}
	if client.last.RawBudgetAmount != 5000 {
		t.Errorf("raw_budget_amount = %v, want 5000", client.last.RawBudgetAmount)
	}
}

func TestSubmit_Canceled(t *testing.T) {
	client := &fakeAnalyzer{resp: sampleResponse()}
	cmd, cancel := submit(client, completeStore(), 1)
	cancel()

	msg := cmd().(AnalysisResultMsg)
	if !errors.Is(msg.Err, analysis.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", msg.Err)
	}
}
