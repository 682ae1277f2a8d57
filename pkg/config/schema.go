// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// ScopeConstraints defines per-scope validation rules for a configuration key
type ScopeConstraints struct {
	Forbidden  bool     // If true, this key cannot be set in this scope
	EnumValues []string // Valid enum values for this scope (overrides global EnumValues if set)
	Pattern    string   // Regex pattern for this scope (overrides global Pattern if set)
}

// ConfigKeyDefinition defines metadata for a configuration key
type ConfigKeyDefinition struct {
	Key         string      // Configuration key (dot notation)
	Type        string      // "string", "bool", "enum", "duration"
	Default     interface{} // Default value
	Description string      // Help text

	EnumValues []string // Valid values for enum type (if Type="enum")
	Pattern    string   // Regex pattern for validation (if Type="string")

	UserConstraints  *ScopeConstraints // Constraints when setting in user config
	LocalConstraints *ScopeConstraints // Constraints when setting in ./marx.yaml
}

// ConfigRegistry holds all known configuration keys with per-scope constraints.
var ConfigRegistry = map[string]ConfigKeyDefinition{
	"use-tui": {
		Key:         "use-tui",
		Type:        "bool",
		Default:     true,
		Description: "Run the interactive quiz; false prints the report for flag or file answers",
	},

	"log-level": {
		Key:         "log-level",
		Type:        "enum",
		Default:     "info",
		Description: "Log verbosity level",
		EnumValues:  []string{"disabled", "debug", "info", "warn", "error"},
	},

	"api.url": {
		Key:         "api.url",
		Type:        "string",
		Default:     DefaultAPIURL,
		Description: "Base URL of the analysis service",
		Pattern:     `^https?://[^\s]+$`,
	},

	"api.token": {
		Key:         "api.token",
		Type:        "string",
		Default:     "",
		Description: "Bearer token sent to the analysis service",
		LocalConstraints: &ScopeConstraints{
			Forbidden: true,
		},
	},

	"api.timeout": {
		Key:         "api.timeout",
		Type:        "duration",
		Default:     DefaultAPITimeout.String(),
		Description: "Timeout for one analysis request (e.g. 30s, 2m)",
	},

	"quiz.debounce": {
		Key:         "quiz.debounce",
		Type:        "duration",
		Default:     DefaultDebounce.String(),
		Description: "Delay after the last keystroke before the budget is stored",
	},

	"quiz.auto-advance": {
		Key:         "quiz.auto-advance",
		Type:        "bool",
		Default:     true,
		Description: "Scroll to the next section after choosing an option",
	},

	"output.format": {
		Key:         "output.format",
		Type:        "enum",
		Default:     DefaultOutputFormat,
		Description: "Report format for non-interactive runs",
		EnumValues:  []string{"markdown", "json"},
	},
}

// GetKeyDefinition returns the definition for a key, or nil if not found
func GetKeyDefinition(key string) *ConfigKeyDefinition {
	if def, ok := ConfigRegistry[key]; ok {
		return &def
	}
	return nil
}

// RegisteredKeys returns every known key, sorted
func RegisteredKeys() []string {
	keys := make([]string, 0, len(ConfigRegistry))
	for k := range ConfigRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (def ConfigKeyDefinition) constraints(scope ConfigScope) *ScopeConstraints {
	if scope == ScopeUser {
		return def.UserConstraints
	}
	return def.LocalConstraints
}

// ValidateKeyScope checks if a key can be set in the given scope
// Returns an error if the key is forbidden in the specified scope
func ValidateKeyScope(key string, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	c := def.constraints(scope)
	if c == nil || !c.Forbidden {
		return nil
	}

	if scope == ScopeUser {
		return fmt.Errorf(
			"key '%s' cannot be set in user config\n\n"+
				"Hint: Remove --global flag:\n"+
				"  %s config set %s <value>",
			key, AppName, key,
		)
	}
	return fmt.Errorf(
		"key '%s' cannot be set in local config (sensitive setting)\n\n"+
			"Hint: Use --global flag:\n"+
			"  %s config set --global %s <value>\n\n"+
			"User config: %s",
		key, AppName, key, UserConfigDisplay(),
	)
}

// ValidateValue checks if a value is valid for the given key in the specified scope
// Applies per-scope constraints if defined, otherwise uses global constraints
func ValidateValue(key string, value interface{}, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	c := def.constraints(scope)

	switch def.Type {
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("key '%s' must be a boolean", key)
		}

	case "duration":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a duration like 30s", key)
		}
		d, err := time.ParseDuration(str)
		if err != nil {
			return fmt.Errorf("key '%s' must be a duration like 30s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("key '%s' must be positive", key)
		}

	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		pattern := def.Pattern
		if c != nil && c.Pattern != "" {
			pattern = c.Pattern
		}
		if pattern != "" {
			matched, err := regexp.MatchString(pattern, str)
			if err != nil {
				return fmt.Errorf("pattern validation error: %w", err)
			}
			if !matched {
				return fmt.Errorf(
					"key '%s' value '%s' does not match required format for %s scope",
					key, str, getScopeName(scope),
				)
			}
		}

	case "enum":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		enumValues := def.EnumValues
		if c != nil && c.EnumValues != nil {
			enumValues = c.EnumValues
		}
		for _, v := range enumValues {
			if str == v {
				return nil
			}
		}
		return fmt.Errorf(
			"key '%s' must be one of %v in %s scope (got '%s')",
			key, enumValues, getScopeName(scope), str,
		)
	}

	return nil
}
