// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question outside the TUI, e.g. before overwriting
// an answers file
func Confirm(prompt string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Value(&confirmed),
		),
	)

	err := form.Run()
	if err != nil {
		return false, err
	}

	return confirmed, nil
}
