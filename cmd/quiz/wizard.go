// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/pkg/analysis"
	"github.com/marx-labs/marx/pkg/catalog"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/results"
	"github.com/marx-labs/marx/pkg/scroll"
	"github.com/marx-labs/marx/pkg/ui"
	"github.com/marx-labs/marx/pkg/wizard"
)

// Mode is the screen the wizard is showing
type Mode int

const (
	ModeQuiz Mode = iota
	ModeSummary
	ModeResults
)

func (m Mode) String() string {
	switch m {
	case ModeSummary:
		return "SUMMARY"
	case ModeResults:
		return "RESULTS"
	default:
		return "QUIZ"
	}
}

const (
	homeID    = "home"
	summaryID = "summary"

	stepsHeight      = 3
	minContentHeight = 6

	// Screen position of the first viewport cell: below the header and
	// the steps, inside the panel border and padding
	panelTop  = 1 + stepsHeight
	panelLeft = 3
)

// confirmAction is what a confirmed dialog does
type confirmAction int

const (
	confirmQuit confirmAction = iota
	confirmRestart
)

// Options tune the wizard behaviour
type Options struct {
	Debounce    time.Duration
	AutoAdvance bool
}

// DefaultOptions reads the options from the loaded configuration
func DefaultOptions() Options {
	return Options{
		Debounce:    config.GetDebounce(),
		AutoAdvance: config.GetAutoAdvance(),
	}
}

// WizardModel is the quiz session. It owns the answers store, and every
// navigation state is derived from the viewport's scroll offset.
type WizardModel struct {
	width  int
	height int

	store    *wizard.Store
	client   Analyzer
	opts     Options
	sections []Section
	budget   *BudgetSection

	viewport viewport.Model
	layout   scroll.Layout
	progress scroll.Progress
	dims     ui.LayoutDimensions
	bars     map[string]int // content row of each slider bar

	// Key of the summary or results content in the viewport
	shown       string
	contentSets int

	mode   Mode
	status string

	summary    *SummaryView
	spinner    spinner.Model
	busy       bool
	submission int
	cancel     context.CancelFunc
	result     *results.Result

	confirm   *ui.ConfirmationForm
	onConfirm confirmAction
	quitting  bool
}

// NewWizardModel creates the quiz around an existing store
func NewWizardModel(store *wizard.Store, client Analyzer, opts Options) WizardModel {
	if store == nil {
		store = wizard.NewStore()
	}

	sections := NewSections(store, opts.Debounce)
	budget, _ := sections[0].(*BudgetSection)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(config.CurrentTheme.GetSecondaryColor())

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return WizardModel{
		store:    store,
		client:   client,
		opts:     opts,
		sections: sections,
		budget:   budget,
		viewport: vp,
		summary:  &SummaryView{},
		spinner:  s,
	}
}

// Store returns the answers collected so far
func (m WizardModel) Store() *wizard.Store { return m.store }

// Result returns the last successful analysis, or nil
func (m WizardModel) Result() *results.Result { return m.result }

// Mode returns the screen being shown
func (m WizardModel) Mode() Mode { return m.mode }

// Init implements tea.Model
func (m WizardModel) Init() tea.Cmd {
	return tea.SetWindowTitle("marx")
}

// Update implements tea.Model
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debugf("wizard.Update: msg=%T mode=%s offset=%d w=%d h=%d", msg, m.mode, m.viewport.YOffset, m.width, m.height)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		// Allow Ctrl+C to quit anytime
		if msg.String() == "ctrl+c" {
			m.abort()
			m.quitting = true
			return m, tea.Quit
		}
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		switch m.mode {
		case ModeSummary:
			return m.updateSummary(msg)
		case ModeResults:
			return m.updateResults(msg)
		default:
			return m.updateQuiz(msg)
		}

	case tea.MouseMsg:
		if m.confirm != nil {
			return m, nil
		}
		if m.mode == ModeQuiz && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if m.clickSlider(msg.X, msg.Y) {
				m.status = ""
				m.refresh()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.refresh()
		return m, cmd

	case BudgetDebounceMsg:
		if m.budget != nil && m.budget.Commit(msg, m.store) {
			m.refresh()
		}
		return m, nil

	case SectionSelectedMsg:
		if m.mode != ModeQuiz || !m.opts.AutoAdvance {
			return m, nil
		}
		if i := m.layout.Index(msg.SectionID); i >= 0 && i+1 < len(m.layout.Sections) {
			log.Debugf("wizard.SectionSelected: %s advancing to %s", msg.SectionID, m.layout.Sections[i+1].ID)
			m.centerOn(i + 1)
		}
		return m, nil

	case AnalysisResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Anything else belongs to the open confirmation form
	if m.confirm != nil {
		_, _, cmd := m.confirm.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WizardModel) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if handled := m.scrollKey(key); handled {
		return m, nil
	}

	switch key {
	case "esc", "q":
		return m.requestQuit()
	case "n", "tab":
		return m, m.next()
	case "enter":
		switch m.progress.CurrentID {
		case homeID:
			return m, m.next()
		case summaryID:
			return m, m.summarize()
		}
	}

	section := m.focused()
	if section == nil {
		return m, nil
	}
	cmd := section.Update(msg, m.store)
	m.status = ""
	m.refresh()
	return m, cmd
}

func (m WizardModel) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if handled := m.scrollKey(key); handled {
		return m, nil
	}

	switch key {
	case "esc", "q":
		return m.requestQuit()
	case "e":
		m.edit()
		return m, nil
	case "r":
		return m.requestRestart()
	case "enter", "a":
		return m, m.analyze()
	}
	return m, nil
}

func (m WizardModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if handled := m.scrollKey(key); handled {
		return m, nil
	}

	switch key {
	case "esc", "q":
		m.quitting = true
		return m, tea.Quit
	case "e":
		m.edit()
	case "r":
		return m.requestRestart()
	}
	return m, nil
}

func (m WizardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.confirm = nil
		return m, nil
	}

	confirmed, proceed, cmd := m.confirm.Update(msg)
	if !proceed {
		return m, cmd
	}
	m.confirm = nil
	if !confirmed {
		return m, cmd
	}
	switch m.onConfirm {
	case confirmRestart:
		m.startOver()
		return m, nil
	default:
		m.abort()
		m.quitting = true
		return m, tea.Quit
	}
}

// requestQuit asks for confirmation when answers would be lost
func (m WizardModel) requestQuit() (tea.Model, tea.Cmd) {
	if m.store.Revision() == 0 {
		m.quitting = true
		return m, tea.Quit
	}
	m.confirm = ui.NewConfirmationForm(
		"quit",
		"Quit the quiz?",
		"Your answers have not been analyzed yet.",
		"Quit",
		"Stay",
	)
	m.onConfirm = confirmQuit
	return m, m.confirm.Init()
}

// requestRestart asks before throwing every answer away
func (m WizardModel) requestRestart() (tea.Model, tea.Cmd) {
	m.confirm = ui.NewConfirmationForm(
		"restart",
		"Start over?",
		"Every answer will be cleared.",
		"Start over",
		"Keep",
	)
	m.onConfirm = confirmRestart
	return m, m.confirm.Init()
}

// startOver clears the answers and returns to the welcome card
func (m *WizardModel) startOver() {
	m.abort()
	m.store.Reset()

	seq := 0
	if m.budget != nil {
		seq = m.budget.seq + 1 // Ticks from the old field stay stale
	}
	m.sections = NewSections(m.store, m.opts.Debounce)
	m.budget, _ = m.sections[0].(*BudgetSection)
	if m.budget != nil {
		m.budget.seq = seq
	}

	m.result = nil
	m.status = ""
	m.mode = ModeQuiz
	m.progress = scroll.Progress{}
	m.viewport.GotoTop()
	m.refresh()
	log.Info("quiz restarted", "revision", m.store.Revision())
}

// scrollKey moves the viewport for the scroll bindings
func (m *WizardModel) scrollKey(key string) bool {
	switch key {
	case "j":
		m.viewport.ScrollDown(1)
	case "k":
		m.viewport.ScrollUp(1)
	case "pgdown", "ctrl+d":
		m.viewport.PageDown()
	case "pgup", "ctrl+u":
		m.viewport.PageUp()
	case "home", "g":
		m.viewport.GotoTop()
	case "end", "G":
		m.viewport.GotoBottom()
	default:
		return false
	}
	m.refresh()
	return true
}

// focused returns the card under the activation line, if any
func (m WizardModel) focused() Section {
	for _, s := range m.sections {
		if s.ID() == m.progress.CurrentID {
			return s
		}
	}
	return nil
}

// next scrolls to the nearest section not yet passed. Reaching the summary
// goes through validation instead of a plain scroll.
func (m *WizardModel) next() tea.Cmd {
	if len(m.layout.Sections) == 0 {
		return nil
	}
	m.flushBudget()
	target := m.layout.NextTarget(m.viewport.YOffset, m.viewport.Height)
	if m.progress.NextLabel == scroll.LabelSummarize || target == len(m.layout.Sections)-1 {
		return m.summarize()
	}
	m.centerOn(target)
	return nil
}

// summarize validates the answers and switches to the summary screen. On
// failure the first incomplete section is brought into view instead.
func (m *WizardModel) summarize() tea.Cmd {
	m.flushBudget()
	if err := m.store.Validate(); err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			m.status = verr.Error()
			log.Info("quiz incomplete", "missing", string(verr.Key))
			if i := m.layout.Index(sectionFor(verr.Key)); i >= 0 {
				m.centerOn(i)
			}
		}
		return nil
	}

	m.status = ""
	m.mode = ModeSummary
	m.viewport.GotoTop()
	m.refresh()
	log.Info("quiz summarized", "revision", m.store.Revision())
	return nil
}

// edit leaves the summary or results and returns to the first category
func (m *WizardModel) edit() {
	m.abort()
	m.result = nil
	m.status = ""
	m.mode = ModeQuiz
	m.refresh()

	first := catalog.Categories()[0].ID
	if i := m.layout.Index(first); i >= 0 {
		m.centerOn(i)
	}
}

// flushBudget commits a budget still waiting for its debounce tick
func (m *WizardModel) flushBudget() {
	if m.budget != nil && m.budget.flush(m.store) {
		m.refresh()
	}
}

// clickSlider snaps the current slider when (x, y) lands on its bar
func (m *WizardModel) clickSlider(x, y int) bool {
	s, ok := m.focused().(*SliderSection)
	if !ok {
		return false
	}
	row, ok := m.bars[s.ID()]
	if !ok || y < panelTop || y-panelTop >= m.viewport.Height {
		return false
	}
	if y-panelTop+m.viewport.YOffset != row {
		return false
	}
	if !s.click(x-panelLeft, m.store) {
		return false
	}
	log.Debug("slider clicked", "section", s.ID(), "value", m.store.Field(wizard.Key(s.category.Key)))
	return true
}

// analyze submits the answers unless a submission is already in flight
func (m *WizardModel) analyze() tea.Cmd {
	if m.busy {
		log.Debug("analysis already in flight, ignoring")
		return nil
	}
	m.flushBudget()
	if err := m.store.Validate(); err != nil {
		m.status = err.Error()
		return nil
	}

	m.abort()
	m.submission++
	cmd, cancel := submit(m.client, m.store, m.submission)
	m.cancel = cancel
	m.busy = true
	m.status = ""
	return tea.Batch(m.spinner.Tick, cmd)
}

// abort cancels the submission in flight. Its reply, if any, is dropped
// because the submission counter no longer matches.
func (m *WizardModel) abort() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.busy {
		m.busy = false
		m.submission++
	}
}

func (m WizardModel) handleResult(msg AnalysisResultMsg) (tea.Model, tea.Cmd) {
	if msg.Submission != m.submission {
		log.Debug("dropping stale analysis reply", "submission", msg.Submission, "current", m.submission)
		return m, nil
	}

	m.busy = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.Err != nil {
		log.Error("analysis failed", "err", msg.Err)
		m.status = analysis.UserMessage(msg.Err)
		m.refresh()
		return m, nil
	}

	r := results.FromResponse(msg.Response)
	m.result = &r
	m.mode = ModeResults
	m.status = ""
	m.viewport.GotoTop()
	m.refresh()
	log.Info("analysis complete", "strategies", len(r.Strategies))
	return m, nil
}

// centerOn scrolls so section i sits in the middle of the viewport
func (m *WizardModel) centerOn(i int) {
	if i < 0 || i >= len(m.layout.Sections) {
		return
	}
	m.viewport.SetYOffset(m.layout.CenterOffset(i, m.viewport.Height))
	m.refresh()
}

// sectionFor maps a state key to the section holding its input
func sectionFor(key wizard.Key) string {
	if key == wizard.KeyBudget {
		return "budget"
	}
	c, err := catalog.ByKey(string(key))
	if err != nil {
		return ""
	}
	return c.ID
}

// refresh rebuilds the viewport content for the current mode and derives
// the navigation state from the scroll offset
func (m *WizardModel) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}

	required := map[string]int{
		"header":      1,
		"steps":       stepsHeight,
		"panelBorder": 1,
		"control":     1,
	}
	optional := map[string]int{
		"instructionsLines": 1,
		"blankLines":        0,
	}
	m.dims = ui.CalculateContentHeight(m.height, required, optional, minContentHeight)
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.dims.ContentHeight

	width := m.viewport.Width
	switch m.mode {
	case ModeSummary:
		m.show(fmt.Sprintf("summary|%d|%s", width, m.store.Fingerprint()), func() string {
			return m.summary.Render(m.store, width)
		})
	case ModeResults:
		if m.result != nil {
			r := *m.result
			m.show(fmt.Sprintf("results|%d|%d|%s", m.submission, width, m.store.Fingerprint()), func() string {
				return results.View(r, m.store.BudgetAmount(), width)
			})
		}
	default:
		m.shown = ""
		m.renderQuiz()
	}
}

// show replaces the viewport content unless key is already on screen
func (m *WizardModel) show(key string, render func() string) {
	if key == m.shown {
		return
	}
	m.viewport.SetContent(render())
	m.shown = key
	m.contentSets++
}

// renderQuiz stacks every section into the viewport. Focus follows the
// current section, so a focus change triggers one more render.
func (m *WizardModel) renderQuiz() {
	focus := m.progress.CurrentID
	for range 2 {
		m.layoutQuiz(focus)
		if m.progress.CurrentID == focus {
			break
		}
		focus = m.progress.CurrentID
	}

	if m.budget != nil {
		current := m.progress.CurrentID == m.budget.ID()
		// Leaving the budget card commits what was typed
		if !current && m.budget.input.Focused() && m.budget.flush(m.store) {
			m.layoutQuiz(m.progress.CurrentID)
		}
		m.budget.SetFocused(current)
	}
	log.Debugf("wizard.scroll: offset=%d current=%s next=%v label=%s",
		m.progress.Offset, m.progress.CurrentID, m.progress.NextVisible, m.progress.NextLabel)
}

func (m *WizardModel) layoutQuiz(focus string) {
	content, layout, bars := m.buildQuiz(focus)
	m.layout = layout
	m.bars = bars
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(m.layout.Clamp(m.viewport.YOffset, m.viewport.Height))
	m.progress = m.layout.Derive(m.viewport.YOffset, m.viewport.Height)
}

func (m *WizardModel) buildQuiz(focus string) (string, scroll.Layout, map[string]int) {
	width := m.viewport.Width
	minHeight := m.viewport.Height

	ids := []string{homeID}
	blocks := []string{m.homeView(width)}
	for _, s := range m.sections {
		ids = append(ids, s.ID())
		blocks = append(blocks, s.View(m.store, width, s.ID() == focus))
	}
	ids = append(ids, summaryID)
	blocks = append(blocks, m.summaryPreview(width))

	heights := make([]int, len(blocks))
	pads := make([]int, len(blocks))
	for i, b := range blocks {
		h := lipgloss.Height(b) + 2
		if h < minHeight {
			h = minHeight
		}
		heights[i] = h
		// Centred vertically
		pads[i] = (h - lipgloss.Height(b)) / 2
		blocks[i] = lipgloss.Place(width, h, lipgloss.Left, lipgloss.Top, strings.Repeat("\n", pads[i])+b)
	}

	layout, err := scroll.NewLayout(ids, heights)
	if err != nil {
		log.Error("failed to build layout", "err", err)
	}

	bars := make(map[string]int)
	for i, s := range m.sections {
		if slider, ok := s.(*SliderSection); ok && i+1 < len(layout.Sections) {
			bars[slider.ID()] = layout.Sections[i+1].Top + pads[i+1] + slider.barRow
		}
	}
	return strings.Join(blocks, "\n"), layout, bars
}

func (m WizardModel) homeView(width int) string {
	theme := config.CurrentTheme
	title := lipgloss.NewStyle().
		Foreground(theme.GetPrimaryColor()).
		Bold(true).
		Render("MARKETING STRATEGY QUIZ")
	subtitle := theme.SubtleStyle().Render("Eight questions. One strategy tailored to your budget.")
	hint := lipgloss.NewStyle().
		Foreground(theme.GetSecondaryColor()).
		Render("Press ENTER to begin")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", subtitle, "", hint))
}

// summaryPreview is the summary block at the end of the quiz. It stays a
// placeholder until every answer is in.
func (m WizardModel) summaryPreview(width int) string {
	theme := config.CurrentTheme
	if !m.store.IsComplete() {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.SubtleStyle().Render("Complete every section to unlock your summary."))
	}
	hint := lipgloss.NewStyle().
		Foreground(theme.GetSecondaryColor()).
		Render("Press ENTER to review and analyze")
	return m.summary.Render(m.store, width) + "\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, hint)
}

// contentWidth is the viewport width inside the panel border and padding
func (m WizardModel) contentWidth() int {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m WizardModel) stepTitles() []string {
	titles := make([]string, 0, len(m.sections)+1)
	for _, s := range m.sections {
		titles = append(titles, s.Title())
	}
	return append(titles, "Summary")
}

func (m WizardModel) stepStates() []scroll.StepState {
	n := len(m.sections) + 1
	switch m.mode {
	case ModeSummary:
		return scroll.Classify(n, n-1)
	case ModeResults:
		return scroll.Classify(n, n)
	default:
		return m.progress.Steps
	}
}

func (m WizardModel) sectionTitle() string {
	switch m.mode {
	case ModeSummary:
		return "Summary"
	case ModeResults:
		return "Strategy"
	}
	if s := m.focused(); s != nil {
		return s.Title()
	}
	if m.progress.CurrentID == summaryID {
		return "Summary"
	}
	return "Welcome"
}

func (m WizardModel) bindings() ui.KeyBindingSet {
	switch m.mode {
	case ModeSummary:
		return ui.Merge(ui.SummaryKeyBindings(), ui.GlobalKeyBindings())
	case ModeResults:
		return ui.ResultsKeyBindings()
	}
	if s := m.focused(); s != nil {
		return ui.Merge(s.Bindings(), ui.GlobalKeyBindings())
	}
	return ui.GlobalKeyBindings()
}

// controlLine is the line under the panel: status, next control or the
// analyze button
func (m WizardModel) controlLine() string {
	theme := config.CurrentTheme
	if m.status != "" {
		return theme.ErrorMessage(m.status)
	}

	button := lipgloss.NewStyle().Foreground(theme.GetSecondaryColor()).Bold(true)
	switch m.mode {
	case ModeSummary:
		if m.busy {
			return m.spinner.View() + " " + theme.InfoStyle().Render("Synthesizing Strategy...")
		}
		return button.Render("[ ANALYZE STRATEGY ]") + theme.SubtleStyle().Render("  enter to submit, e to edit")
	case ModeResults:
		return theme.SuccessMessage("Strategy ready")
	}

	if !m.progress.NextVisible {
		return ""
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, button.Render("[N] "+m.progress.NextLabel+" ▸ "))
}

// View implements tea.Model
func (m WizardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	theme := config.CurrentTheme

	if m.confirm != nil {
		return ui.RenderCenteredModal(m.confirm.View(), m.width, m.height, theme.GetWarningColor(), 50)
	}

	header := theme.RenderHeader(m.width, strings.ToUpper(m.sectionTitle()), m.mode.String())
	steps := ui.RenderSteps(ui.NewSteps(m.stepTitles(), m.stepStates()), ui.StepsConfig{Width: m.width})
	steps = lipgloss.PlaceVertical(stepsHeight, lipgloss.Bottom, steps)
	panel := ui.RenderPanel(m.viewport.View(), m.width-2, m.viewport.Height)

	parts := []string{header, steps, panel, m.controlLine()}
	if m.dims.ShowInstructions {
		parts = append(parts, theme.RenderFooter(m.width, m.bindings().Render(lipgloss.NewStyle())))
	}

	return ui.FillTerminal(lipgloss.JoinVertical(lipgloss.Left, parts...), m.width, m.height)
}
