// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/marx-labs/marx/pkg/config"
)

// SnapIndex maps a continuous position in [0, 1] to the nearest of n stops
func SnapIndex(fraction float64, n int) int {
	if n <= 1 || math.IsNaN(fraction) {
		return 0
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return int(math.Round(fraction * float64(n-1)))
}

// StopFraction is the position of stop i of n
func StopFraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// MinSliderWidth is the narrowest bar a slider draws
const MinSliderWidth = 10

// Slider is an ordinal scale with a fixed number of labelled stops
type Slider struct {
	Labels  []string
	Index   int
	Focused bool
	bar     progress.Model
}

// NewSlider creates a slider positioned at index
func NewSlider(labels []string, index int) Slider {
	theme := config.CurrentTheme
	s := Slider{
		Labels: labels,
		bar: progress.New(
			progress.WithSolidFill(theme.Secondary),
			progress.WithoutPercentage(),
		),
	}
	s.Set(index)
	return s
}

// Set moves to index, clamped to the valid range
func (s *Slider) Set(index int) {
	if index < 0 {
		index = 0
	}
	if index > len(s.Labels)-1 {
		index = len(s.Labels) - 1
	}
	if index < 0 {
		index = 0
	}
	s.Index = index
}

// Step moves by delta stops and reports whether the index changed
func (s *Slider) Step(delta int) bool {
	before := s.Index
	s.Set(s.Index + delta)
	return s.Index != before
}

// SetFraction snaps a continuous position to the nearest stop
func (s *Slider) SetFraction(fraction float64) {
	s.Set(SnapIndex(fraction, len(s.Labels)))
}

// View renders the bar and the stop labels underneath
func (s Slider) View(width int) string {
	theme := config.CurrentTheme
	if width < MinSliderWidth {
		width = MinSliderWidth
	}
	s.bar.Width = width

	bar := s.bar.ViewAs(StopFraction(s.Index, len(s.Labels)))

	n := len(s.Labels)
	if n == 0 {
		return bar
	}
	cell := width / n
	parts := make([]string, n)
	for i, label := range s.Labels {
		style := lipgloss.NewStyle().Width(cell).Foreground(theme.GetMutedColor())
		switch {
		case i == 0:
			style = style.Align(lipgloss.Left)
		case i == n-1:
			style = style.Align(lipgloss.Right)
		default:
			style = style.Align(lipgloss.Center)
		}
		if i == s.Index {
			style = style.Foreground(theme.GetPrimaryColor()).Bold(true)
			if s.Focused {
				label = "▸ " + label
			}
		}
		parts[i] = style.Render(label)
	}
	return bar + "\n" + strings.Join(parts, "")
}
