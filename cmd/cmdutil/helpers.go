// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marx-labs/marx/pkg/config"
	"golang.org/x/term"
)

// IsInteractive checks if stdin is connected to a terminal AND the user wants TUI mode
func IsInteractive() bool {
	// Check both terminal capability and user preference
	return IsStdinTerminal() && config.GetUseTUI()
}

// IsStdinTerminal reports whether stdin is a terminal, regardless of use-tui
func IsStdinTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the stdout width, 100 when stdout is not a terminal
func TerminalWidth() int {
	width := 100 // Default fallback
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return width
}

// WriteJSON prints v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// FlagName converts a state key to its command-line flag (product_type -> product-type)
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
