// SPDX-License-Identifier: Apache-2.0
package init

import "time"

// ProjectSettings holds the values written into a new project directory
type ProjectSettings struct {
	APIURL       string
	APITimeout   time.Duration
	Debounce     time.Duration
	AutoAdvance  bool
	OutputFormat string // "markdown" or "json"

	// AnswersFile is the answers template path; empty skips it
	AnswersFile string

	// Force overwrites existing files
	Force bool
}

// AnswerCategory is one commented block of the answers template
type AnswerCategory struct {
	Key     string
	Title   string
	Default string
	Options []string
}
