// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/pkg/catalog"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/results"
	"github.com/marx-labs/marx/pkg/ui"
	"github.com/marx-labs/marx/pkg/wizard"
)

// Section is one input card of the quiz
type Section interface {
	ID() string
	Title() string
	// Update handles a key press while the section is focused
	Update(msg tea.KeyMsg, store *wizard.Store) tea.Cmd
	View(store *wizard.Store, width int, focused bool) string
	Bindings() ui.KeyBindingSet
}

// selected returns a command announcing that a choice was made in id
func selected(id string) tea.Cmd {
	return func() tea.Msg { return SectionSelectedMsg{SectionID: id} }
}

func sectionHeading(title, prompt string, focused bool) string {
	theme := config.CurrentTheme
	color := theme.GetMutedColor()
	if focused {
		color = theme.GetPrimaryColor()
	}
	heading := lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(title))
	return heading + "\n" + theme.SubtleStyle().Render(prompt)
}

// GridSection lets the user pick one card out of a category
type GridSection struct {
	category catalog.Category
	cursor   int
}

// NewGridSection creates a grid with the cursor on the current choice
func NewGridSection(c catalog.Category, current string) *GridSection {
	cursor := c.IndexOf(current)
	if cursor < 0 {
		cursor = 0
	}
	return &GridSection{category: c, cursor: cursor}
}

func (s *GridSection) ID() string    { return s.category.ID }
func (s *GridSection) Title() string { return s.category.Title }

func (s *GridSection) Bindings() ui.KeyBindingSet { return ui.GridKeyBindings() }

func (s *GridSection) Update(msg tea.KeyMsg, store *wizard.Store) tea.Cmd {
	cols := s.category.Columns()
	n := len(s.category.Entries)

	switch msg.String() {
	case "left", "h":
		if s.cursor%cols > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor%cols < cols-1 && s.cursor+1 < n {
			s.cursor++
		}
	case "up":
		if s.cursor-cols >= 0 {
			s.cursor -= cols
		}
	case "down":
		if s.cursor+cols < n {
			s.cursor += cols
		}
	case "enter", " ":
		entry := s.category.Entries[s.cursor]
		if err := store.SetField(wizard.Key(s.category.Key), entry.ID); err != nil {
			log.Error("failed to record selection", "section", s.ID(), "err", err)
			return nil
		}
		return selected(s.ID())
	}
	return nil
}

func (s *GridSection) View(store *wizard.Store, width int, focused bool) string {
	theme := config.CurrentTheme
	cols := s.category.Columns()
	chosen := store.Field(wizard.Key(s.category.Key))

	cardWidth := (width - cols*2) / cols
	if cardWidth < 16 {
		cardWidth = 16
	}

	render := func(i int, e catalog.Entry, height int) string {
		border := lipgloss.RoundedBorder()
		color := theme.GetMutedColor()
		title := e.Icon + " " + e.Title
		if e.ID == chosen {
			color = theme.GetSuccessColor()
			title = "✓ " + title
		}
		if focused && i == s.cursor {
			border = lipgloss.ThickBorder()
			color = theme.GetSecondaryColor()
		}
		body := lipgloss.NewStyle().Bold(true).Render(title) + "\n" +
			theme.SubtleStyle().Render(e.Description)
		style := lipgloss.NewStyle().
			Border(border).
			BorderForeground(color).
			Padding(0, 1).
			Width(cardWidth - 2)
		if height > 0 {
			style = style.Height(height)
		}
		return style.Render(body)
	}

	var rows []string
	for start := 0; start < len(s.category.Entries); start += cols {
		end := start + cols
		if end > len(s.category.Entries) {
			end = len(s.category.Entries)
		}
		// Cards in a row share the height of the tallest one
		tallest := 0
		for i := start; i < end; i++ {
			if h := lipgloss.Height(render(i, s.category.Entries[i], 0)) - 2; h > tallest {
				tallest = h
			}
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, render(i, s.category.Entries[i], tallest))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return sectionHeading(s.category.Title, s.category.Prompt, focused) + "\n\n" +
		lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SliderSection picks a position on an ordered scale
type SliderSection struct {
	category catalog.Category
	slider   ui.Slider

	// Where the bar was last drawn, relative to the card
	barRow   int
	barWidth int
}

// NewSliderSection creates a slider positioned on the current choice
func NewSliderSection(c catalog.Category, current string) *SliderSection {
	labels := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		labels[i] = e.Title
	}
	return &SliderSection{
		category: c,
		slider:   ui.NewSlider(labels, c.IndexOf(current)),
	}
}

func (s *SliderSection) ID() string    { return s.category.ID }
func (s *SliderSection) Title() string { return s.category.Title }

func (s *SliderSection) Bindings() ui.KeyBindingSet { return ui.SliderKeyBindings() }

// sync moves the slider to the value held by the store
func (s *SliderSection) sync(store *wizard.Store) {
	if i := s.category.IndexOf(store.Field(wizard.Key(s.category.Key))); i >= 0 {
		s.slider.Set(i)
	}
}

func (s *SliderSection) Update(msg tea.KeyMsg, store *wizard.Store) tea.Cmd {
	s.sync(store)

	var delta int
	switch msg.String() {
	case "left", "h":
		delta = -1
	case "right", "l":
		delta = 1
	default:
		return nil
	}
	if s.slider.Step(delta) {
		s.record(store)
	}
	return nil
}

// click snaps the slider to the stop nearest col, a column on the bar
func (s *SliderSection) click(col int, store *wizard.Store) bool {
	if s.barWidth <= 1 || col < 0 || col >= s.barWidth {
		return false
	}
	s.sync(store)
	s.slider.SetFraction(float64(col) / float64(s.barWidth-1))
	return s.record(store)
}

// record writes the slider position to the store
func (s *SliderSection) record(store *wizard.Store) bool {
	key := wizard.Key(s.category.Key)
	entry := s.category.Entries[s.slider.Index]
	if store.Field(key) == entry.ID {
		return false
	}
	if err := store.SetField(key, entry.ID); err != nil {
		log.Error("failed to record slider position", "section", s.ID(), "err", err)
		return false
	}
	return true
}

func (s *SliderSection) View(store *wizard.Store, width int, focused bool) string {
	s.sync(store)
	s.slider.Focused = focused

	var detail string
	if s.slider.Index >= 0 && s.slider.Index < len(s.category.Entries) {
		e := s.category.Entries[s.slider.Index]
		detail = lipgloss.NewStyle().Bold(true).Render(e.Icon+" "+e.Title) + "\n" +
			config.CurrentTheme.SubtleStyle().Render(e.Description)
	}

	head := sectionHeading(s.category.Title, s.category.Prompt, focused) + "\n\n"
	s.barRow = lipgloss.Height(head) - 1
	s.barWidth = max(width-4, ui.MinSliderWidth)

	return head + s.slider.View(s.barWidth) + "\n\n" + detail
}

// BudgetSection is the free-text monthly budget field. Keystrokes are
// committed to the store after the debounce delay, or at once on enter.
type BudgetSection struct {
	input textinput.Model
	delay time.Duration
	seq   int
}

// NewBudgetSection creates the field pre-filled with the current budget
func NewBudgetSection(current string, delay time.Duration) *BudgetSection {
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.Placeholder = "e.g. 5000"
	ti.CharLimit = 15
	ti.SetValue(current)
	return &BudgetSection{input: ti, delay: delay}
}

func (s *BudgetSection) ID() string    { return "budget" }
func (s *BudgetSection) Title() string { return "Budget" }

func (s *BudgetSection) Bindings() ui.KeyBindingSet { return ui.BudgetKeyBindings() }

// Value returns the text currently in the field
func (s *BudgetSection) Value() string { return s.input.Value() }

// SetFocused toggles the text cursor
func (s *BudgetSection) SetFocused(focused bool) {
	if focused && !s.input.Focused() {
		s.input.Focus()
	} else if !focused && s.input.Focused() {
		s.input.Blur()
	}
}

func (s *BudgetSection) Update(msg tea.KeyMsg, store *wizard.Store) tea.Cmd {
	if msg.String() == "enter" {
		s.seq++ // Pending ticks are now stale
		if err := store.SetField(wizard.KeyBudget, s.input.Value()); err != nil {
			log.Error("failed to record budget", "err", err)
			return nil
		}
		return selected(s.ID())
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if clean := wizard.SanitizeBudget(s.input.Value()); clean != s.input.Value() {
		s.input.SetValue(clean)
	}
	if s.input.Value() == before {
		return cmd
	}

	s.seq++
	seq := s.seq
	log.Debug("budget keystroke", "value", s.input.Value(), "seq", seq)
	return tea.Batch(cmd, tea.Tick(s.delay, func(time.Time) tea.Msg {
		return BudgetDebounceMsg{Seq: seq}
	}))
}

// flush writes the field to the store at once. Pending ticks go stale.
func (s *BudgetSection) flush(store *wizard.Store) bool {
	s.seq++
	if store.Field(wizard.KeyBudget) == s.input.Value() {
		return false
	}
	if err := store.SetField(wizard.KeyBudget, s.input.Value()); err != nil {
		log.Error("failed to record budget", "err", err)
		return false
	}
	log.Debug("budget flushed", "value", s.input.Value(), "seq", s.seq)
	return true
}

// Commit writes the field to the store if msg is the latest tick
func (s *BudgetSection) Commit(msg BudgetDebounceMsg, store *wizard.Store) bool {
	if msg.Seq != s.seq {
		log.Debug("dropping stale budget tick", "seq", msg.Seq, "latest", s.seq)
		return false
	}
	if err := store.SetField(wizard.KeyBudget, s.input.Value()); err != nil {
		log.Error("failed to record budget", "err", err)
		return false
	}
	return true
}

func (s *BudgetSection) View(store *wizard.Store, width int, focused bool) string {
	theme := config.CurrentTheme
	s.input.Width = width - 8

	amount := theme.SubtleStyle().Render("No budget entered")
	if store.Field(wizard.KeyBudget) != "" {
		amount = theme.InfoStyle().Render(results.Money(store.BudgetAmount()) + " USD / month")
	}

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.GetMutedColor()).
		Padding(0, 1).
		Width(width / 2)
	if focused {
		field = field.BorderForeground(theme.GetSecondaryColor())
	}

	return sectionHeading("Budget", "What is your monthly marketing budget (USD)?", focused) + "\n\n" +
		field.Render(s.input.View()) + "\n" + amount
}

// NewSections builds the budget card followed by one card per category
func NewSections(store *wizard.Store, debounce time.Duration) []Section {
	sections := []Section{NewBudgetSection(store.Field(wizard.KeyBudget), debounce)}
	for _, c := range catalog.Categories() {
		current := store.Field(wizard.Key(c.Key))
		switch c.Kind {
		case catalog.KindSlider:
			sections = append(sections, NewSliderSection(c, current))
		default:
			sections = append(sections, NewGridSection(c, current))
		}
	}
	return sections
}
