// SPDX-License-Identifier: Apache-2.0
package quiz

import (
	"github.com/marx-labs/marx/pkg/analysis"
)

// BudgetDebounceMsg fires after the budget field has been idle for the
// debounce delay. Only the tick carrying the latest sequence commits.
type BudgetDebounceMsg struct {
	Seq int
}

// AnalysisResultMsg carries the reply of one submission back to the model
type AnalysisResultMsg struct {
	Submission int
	Response   *analysis.Response
	Err        error
}

// SectionSelectedMsg signals that a card was picked and the quiz may advance
type SectionSelectedMsg struct {
	SectionID string
}
