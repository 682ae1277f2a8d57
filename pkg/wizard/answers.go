// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/pkg/catalog"
	"go.yaml.in/yaml/v3"
)

// LoadAnswers reads a YAML answers file into a State.
// Ordinal fields missing from the file keep their defaults.
func LoadAnswers(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("failed to read answers file: %w", err)
	}

	s := NewState()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to parse answers file %s: %w", path, err)
	}
	s.Budget = SanitizeBudget(s.Budget)

	if err := ValidateChoices(s); err != nil {
		return State{}, fmt.Errorf("invalid answers file %s: %w", path, err)
	}

	log.Debugf("Loaded answers from %s", path)
	return s, nil
}

// SaveAnswers writes the state as YAML
func SaveAnswers(path string, s State) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write answers file: %w", err)
	}
	log.Debugf("Saved answers to %s", path)
	return nil
}

// ValidateChoices checks that every non-empty choice is a known catalog id
func ValidateChoices(s State) error {
	for _, c := range catalog.Categories() {
		v := s.Get(Key(c.Key))
		if v == "" {
			continue
		}
		if _, ok := c.Lookup(v); !ok {
			return fmt.Errorf("%s: unknown option %q", c.Key, v)
		}
	}
	return nil
}
