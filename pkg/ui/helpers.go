// SPDX-License-Identifier: Apache-2.0
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// LayoutDimensions holds calculated dimensions for a TUI layout
type LayoutDimensions struct {
	Width            int
	Height           int
	ShowInstructions bool
	BlankLineCount   int
	ContentHeight    int
}

// CalculateContentHeight returns the viewport height left after the header,
// step bar, control line and footer. Optional lines ("blankLines",
// "instructionsLines") are dropped first when the terminal is short, and
// the content never shrinks below minContentHeight.
func CalculateContentHeight(terminalHeight int, required, optional map[string]int, minContentHeight int) LayoutDimensions {
	// Calculate overheads
	requiredOverhead := 0
	for _, lines := range required {
		requiredOverhead += lines
	}

	optionalOverhead := 0
	for _, lines := range optional {
		optionalOverhead += lines
	}

	availableHeight := terminalHeight - requiredOverhead

	dims := LayoutDimensions{
		Height:           terminalHeight,
		ShowInstructions: false,
		BlankLineCount:   0,
	}

	// Determine what optional elements fit
	if availableHeight >= minContentHeight+optionalOverhead {
		// Enough room for everything
		dims.ShowInstructions = true
		dims.BlankLineCount = optional["blankLines"]
		dims.ContentHeight = availableHeight - optionalOverhead
	} else if availableHeight >= minContentHeight+optional["instructionsLines"]+1 {
		// Drop blank lines, keep instructions
		dims.ShowInstructions = true
		dims.BlankLineCount = 1
		dims.ContentHeight = availableHeight - optional["instructionsLines"] - 1
	} else if availableHeight >= minContentHeight {
		// Drop everything optional
		dims.ShowInstructions = false
		dims.BlankLineCount = 0
		dims.ContentHeight = availableHeight
	} else {
		// Below minimum - enforce minimum anyway
		dims.ContentHeight = minContentHeight
	}

	return dims
}

// RenderCenteredModal draws content in a bordered box centred on screen,
// e.g. the quit confirmation
func RenderCenteredModal(content string, width, height int, borderColor lipgloss.Color, modalWidth int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}

// FillTerminal uses lipgloss.Place to fill terminal dimensions and eliminate gaps
func FillTerminal(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

// ConfirmationForm wraps a huh.Form for reusable Yes/No confirmations
type ConfirmationForm struct {
	form *huh.Form
	key  string
}

// NewConfirmationForm creates a yes/no form; y and n answer immediately
func NewConfirmationForm(key, title, description, affirmative, negative string) *ConfirmationForm {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(key).
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative(negative),
		),
	)

	return &ConfirmationForm{
		form: form,
		key:  key,
	}
}

// Init initializes the form and returns the initial command
func (cf *ConfirmationForm) Init() tea.Cmd {
	return cf.form.Init()
}

// Update returns (confirmed, done, cmd). done is false while the form is
// still open and for esc, which callers treat as cancel.
func (cf *ConfirmationForm) Update(msg tea.Msg) (bool, bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			return true, true, nil
		case "n", "N":
			return false, true, nil
		case "esc":
			return false, false, nil
		}
	}

	form, cmd := cf.form.Update(msg)
	cf.form = form.(*huh.Form)

	// Check if form is complete (arrow keys + enter)
	if cf.form.State == huh.StateCompleted {
		confirmed := cf.form.GetBool(cf.key)
		return confirmed, true, cmd
	}

	return false, false, cmd
}

// View renders the form
func (cf *ConfirmationForm) View() string {
	return cf.form.View()
}
