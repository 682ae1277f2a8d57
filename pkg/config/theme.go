// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the application color scheme
type Theme struct {
	Primary   string // Bright mint green
	Secondary string // Bright cyan
	Muted     string // Muted purple-gray
	Success   string // Success/affirmative color
	Info      string // Info/neutral color
	Warning   string // Warning color
	Error     string // Error/destructive color
	Caution   string // Amber, medium priority
	Neutral   string // Slate, low priority
	Accent    string // Purple, capability resources
	Highlight string // Pink, partner resources
}

// CurrentTheme is the active theme used throughout the application
var CurrentTheme = Theme{
	Primary:   "#82FB9C", // Hackerman accent - bright mint green
	Secondary: "#7cf8f7", // Hackerman color6 - bright cyan
	Muted:     "#6a6e95", // Hackerman muted - purple-gray
	Success:   "#82FB9C", // Same as primary for consistency
	Info:      "#7cf8f7", // Same as secondary for consistency
	Warning:   "#FFD700", // Gold/yellow for warnings
	Error:     "#FF6B6B", // Soft red for errors
	Caution:   "#FBBF24",
	Neutral:   "#94A3B8",
	Accent:    "#C084FC",
	Highlight: "#F472B6",
}

// Color getters return lipgloss.Color for easy styling

func (t Theme) GetPrimaryColor() lipgloss.Color {
	return lipgloss.Color(t.Primary)
}

func (t Theme) GetSecondaryColor() lipgloss.Color {
	return lipgloss.Color(t.Secondary)
}

func (t Theme) GetMutedColor() lipgloss.Color {
	return lipgloss.Color(t.Muted)
}

func (t Theme) GetSuccessColor() lipgloss.Color {
	return lipgloss.Color(t.Success)
}

func (t Theme) GetInfoColor() lipgloss.Color {
	return lipgloss.Color(t.Info)
}

func (t Theme) GetWarningColor() lipgloss.Color {
	return lipgloss.Color(t.Warning)
}

func (t Theme) GetErrorColor() lipgloss.Color {
	return lipgloss.Color(t.Error)
}

func (t Theme) GetCautionColor() lipgloss.Color {
	return lipgloss.Color(t.Caution)
}

func (t Theme) GetNeutralColor() lipgloss.Color {
	return lipgloss.Color(t.Neutral)
}

func (t Theme) GetAccentColor() lipgloss.Color {
	return lipgloss.Color(t.Accent)
}

func (t Theme) GetHighlightColor() lipgloss.Color {
	return lipgloss.Color(t.Highlight)
}

// Common style builders for consistent UI

func (t Theme) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetSuccessColor()).Bold(true)
}

func (t Theme) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetInfoColor())
}

func (t Theme) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetWarningColor())
}

func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetErrorColor())
}

func (t Theme) SubtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetMutedColor())
}

// Message formatters with theme-appropriate icons

func (t Theme) SuccessMessage(text string) string {
	return t.SuccessStyle().Render("✓ " + text)
}

func (t Theme) WarningMessage(text string) string {
	return t.WarningStyle().Render("⚠ " + text)
}

func (t Theme) ErrorMessage(text string) string {
	return t.ErrorStyle().Render("✗ " + text)
}

// Step indicators used by the progress bar

// ActiveIndicator marks the section being answered
func (t Theme) ActiveIndicator() string {
	return t.SuccessStyle().Render("●")
}

// PendingIndicator marks a section not reached yet
func (t Theme) PendingIndicator() string {
	return t.SubtleStyle().Render("○")
}

// CompleteIndicator marks a section already passed
func (t Theme) CompleteIndicator() string {
	return t.InfoStyle().Render("✓")
}

// RenderHeader renders the banner at the top of the quiz
// Format: "  MARX  ▸  SECTION  ▸  [CONTEXT]  "
func (t Theme) RenderHeader(width int, section, context string) string {
	headerText := fmt.Sprintf("  MARX  ▸  %s  ▸  [%s]  ", section, context)
	return lipgloss.NewStyle().
		Foreground(t.GetSecondaryColor()).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render(headerText)
}

// RenderFooter renders a consistent footer with box characters
// Format: "╰─ [content] ─╯"
func (t Theme) RenderFooter(width int, content string) string {
	footerText := "╰─ " + content + " ─╯"
	return lipgloss.NewStyle().
		Foreground(t.GetMutedColor()).
		Width(width).
		Align(lipgloss.Center).
		Render(footerText)
}
