// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeyBinding represents a single key action
type KeyBinding struct {
	Key         string   // Display name: "ENTER", "TAB", "DEL"
	Keys        []string // Actual keys to match: ["enter"], ["tab"], ["delete", "backspace"]
	Description string   // What it does
}

// KeyBindingSet is a collection of related key bindings
type KeyBindingSet struct {
	Bindings []KeyBinding
}

// Contains checks if a key press matches any binding in the set
func (kbs KeyBindingSet) Contains(key string) *KeyBinding {
	for i := range kbs.Bindings {
		for _, k := range kbs.Bindings[i].Keys {
			if k == key {
				return &kbs.Bindings[i]
			}
		}
	}
	return nil
}

// Render formats key bindings for display
// Format: "[KEY] Action  •  [KEY] Action"
func (kbs KeyBindingSet) Render(style lipgloss.Style) string {
	if len(kbs.Bindings) == 0 {
		return ""
	}

	parts := make([]string, len(kbs.Bindings))
	for i, binding := range kbs.Bindings {
		parts[i] = fmt.Sprintf("[%s] %s", binding.Key, binding.Description)
	}

	return style.Render(strings.Join(parts, "  •  "))
}

// RenderInline formats key bindings for inline display (more compact)
// Format: "Key: action | Key: action"
func (kbs KeyBindingSet) RenderInline(style lipgloss.Style) string {
	if len(kbs.Bindings) == 0 {
		return ""
	}

	parts := make([]string, len(kbs.Bindings))
	caser := cases.Title(language.Und, cases.NoLower)
	for i, binding := range kbs.Bindings {
		// Use first key alias for display (e.g., "enter" instead of showing all)
		keyName := caser.String(binding.Keys[0])
		parts[i] = fmt.Sprintf("%s: %s", keyName, strings.ToLower(binding.Description))
	}

	return style.Render(strings.Join(parts, " | "))
}

// Key binding sets for the quiz

// GlobalKeyBindings work in every view
func GlobalKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "J/K", Keys: []string{"j", "k", "pgdown", "pgup"}, Description: "Scroll"},
			{Key: "N", Keys: []string{"n", "tab"}, Description: "Next Section"},
			{Key: "ESC", Keys: []string{"esc", "ctrl+c"}, Description: "Quit"},
		},
	}
}

// GridKeyBindings apply to a section of option cards
func GridKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "←↑↓→", Keys: []string{"left", "right", "up", "down", "h", "l"}, Description: "Move"},
			{Key: "ENTER", Keys: []string{"enter", " "}, Description: "Select"},
		},
	}
}

// SliderKeyBindings apply to an ordinal scale
func SliderKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "←/→", Keys: []string{"left", "right", "h", "l"}, Description: "Adjust"},
			{Key: "CLICK", Keys: []string{"click"}, Description: "Snap"},
		},
	}
}

// BudgetKeyBindings apply while the budget field is focused
func BudgetKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "0-9", Keys: []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."}, Description: "Amount"},
			{Key: "ENTER", Keys: []string{"enter"}, Description: "Confirm"},
		},
	}
}

// SummaryKeyBindings apply on the summary screen
func SummaryKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "ENTER", Keys: []string{"enter", "a"}, Description: "Analyze"},
			{Key: "E", Keys: []string{"e"}, Description: "Edit"},
			{Key: "R", Keys: []string{"r"}, Description: "Start Over"},
		},
	}
}

// ResultsKeyBindings apply on the results screen
func ResultsKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "J/K", Keys: []string{"j", "k", "pgdown", "pgup"}, Description: "Scroll"},
			{Key: "E", Keys: []string{"e"}, Description: "Edit Answers"},
			{Key: "R", Keys: []string{"r"}, Description: "Start Over"},
			{Key: "ESC", Keys: []string{"esc", "q", "ctrl+c"}, Description: "Quit"},
		},
	}
}

// Merge combines sets, earlier bindings first
func Merge(sets ...KeyBindingSet) KeyBindingSet {
	var out KeyBindingSet
	for _, s := range sets {
		out.Bindings = append(out.Bindings, s.Bindings...)
	}
	return out
}
