// SPDX-License-Identifier: Apache-2.0
package init

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/marx-labs/marx/pkg/catalog"
	"github.com/marx-labs/marx/pkg/config"
	"github.com/marx-labs/marx/pkg/wizard"
)

// ErrExists is returned when a target file exists and Force is off
var ErrExists = errors.New("file already exists")

// GenerateProjectFiles writes marx.yaml and, when requested, an answers template.
// Either every file is written or none: on error created files are removed.
func GenerateProjectFiles(settings ProjectSettings) ([]string, error) {
	var created []string

	rollback := func() {
		for i := len(created) - 1; i >= 0; i-- {
			os.Remove(created[i])
		}
	}

	configPath := config.LocalConfigFile + config.DefaultConfigExt
	targets := []string{configPath}
	if settings.AnswersFile != "" {
		targets = append(targets, settings.AnswersFile)
	}
	if !settings.Force {
		for _, path := range targets {
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrExists)
			}
		}
	}

	data, err := RenderProjectConfig(settings)
	if err != nil {
		return nil, err
	}
	if err := writeFile(configPath, data, &created); err != nil {
		rollback()
		return nil, err
	}

	if settings.AnswersFile != "" {
		data, err := RenderAnswersTemplate(settings.AnswersFile)
		if err != nil {
			rollback()
			return nil, err
		}
		if err := writeFile(settings.AnswersFile, data, &created); err != nil {
			rollback()
			return nil, err
		}
	}

	log.Info("project files written", "files", targets)
	return targets, nil
}

// RenderProjectConfig renders the marx.yaml contents
func RenderProjectConfig(settings ProjectSettings) ([]byte, error) {
	tmpl, err := template.New("project").Parse(ProjectConfigTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, settings); err != nil {
		return nil, fmt.Errorf("failed to execute project config template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAnswersTemplate renders an answers file listing the option ids per key
func RenderAnswersTemplate(path string) ([]byte, error) {
	defaults := wizard.NewState()

	var cats []AnswerCategory
	for _, c := range catalog.Categories() {
		ac := AnswerCategory{
			Key:     c.Key,
			Title:   c.Title,
			Default: defaults.Get(wizard.Key(c.Key)),
		}
		for _, e := range c.Entries {
			ac.Options = append(ac.Options, e.ID)
		}
		cats = append(cats, ac)
	}

	tmpl, err := template.New("answers").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(AnswersTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse answers template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Path       string
		Categories []AnswerCategory
	}{Path: path, Categories: cats})
	if err != nil {
		return nil, fmt.Errorf("failed to execute answers template: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFile creates parent directories and records new files for rollback
func writeFile(path string, data []byte, created *[]string) error {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s (rolled back): %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s (rolled back): %w", path, err)
	}
	if !existed {
		*created = append(*created, path)
	}
	return nil
}
