// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ConfigScope indicates whether to operate on local or user config
type ConfigScope int

const (
	ScopeLocal ConfigScope = iota // Local config (./marx.yaml), shared with a project
	ScopeUser                     // User config (~/.config/marx/config.yaml), personal
)

// ConfigValue represents a configuration key-value pair with its source
type ConfigValue struct {
	Key    string
	Value  interface{}
	Source string
}

// getConfigPath returns the config file path based on scope
func getConfigPath(scope ConfigScope) string {
	if scope == ScopeUser {
		return configFilePath(GlobalPaths.ConfigDir, ConfigFileName)
	}
	return configFilePath(".", LocalConfigFile)
}

// getScopeName returns a human-readable scope name
func getScopeName(scope ConfigScope) string {
	if scope == ScopeUser {
		return "user"
	}
	return "local"
}

// getScopeDisplay is the config file of scope as shown to the user
func getScopeDisplay(scope ConfigScope) string {
	if scope == ScopeUser {
		return UserConfigDisplay()
	}
	return LocalConfigDisplay()
}

// readScope loads the file of one scope into an isolated Viper instance.
// A missing file gives an empty instance and exists=false.
func readScope(scope ConfigScope) (v *viper.Viper, exists bool, err error) {
	path := getConfigPath(scope)

	v = viper.New()
	v.SetConfigType(ConfigType)
	v.SetConfigFile(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return v, false, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return v, true, fmt.Errorf("failed to read %s config: %w", getScopeName(scope), err)
	}
	return v, true, nil
}

func writeScope(v *viper.Viper, scope ConfigScope) error {
	if err := v.WriteConfigAs(getConfigPath(scope)); err != nil {
		return fmt.Errorf("failed to write %s config: %w", getScopeName(scope), err)
	}
	return nil
}

// SetConfigValue sets a configuration value in the specified scope
func SetConfigValue(key, raw string, scope ConfigScope) error {
	if err := ValidateKeyScope(key, scope); err != nil {
		return err
	}

	value, err := parseValue(key, raw)
	if err != nil {
		return err
	}
	if err := ValidateValue(key, value, scope); err != nil {
		return err
	}

	v, _, err := readScope(scope)
	if err != nil {
		return err
	}
	v.Set(key, value)
	return writeScope(v, scope)
}

// GetConfigValue retrieves a configuration value and its source
func GetConfigValue(key string) (*ConfigValue, error) {
	if GetKeyDefinition(key) == nil {
		return nil, fmt.Errorf("unknown configuration key: %s", key)
	}

	return &ConfigValue{
		Key:    key,
		Value:  displayValue(key, viper.Get(key)),
		Source: newSourceResolver().source(key),
	}, nil
}

// UnsetConfigValue removes a configuration key from the specified scope
func UnsetConfigValue(key string, scope ConfigScope) error {
	v, exists, err := readScope(scope)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s config file does not exist: %s", getScopeName(scope), getConfigPath(scope))
	}
	if !v.IsSet(key) {
		return fmt.Errorf("key '%s' not found in %s config", key, getScopeName(scope))
	}

	settings := v.AllSettings()
	if err := deleteNestedKey(settings, key); err != nil {
		return err
	}

	// Viper cannot unset, so the remaining settings go to a fresh instance
	out := viper.New()
	out.SetConfigType(ConfigType)
	for k, val := range settings {
		out.Set(k, val)
	}
	return writeScope(out, scope)
}

// ListConfigValues returns every registered key with its value and source
func ListConfigValues() ([]ConfigValue, error) {
	sources := newSourceResolver()

	keys := RegisteredKeys()
	values := make([]ConfigValue, 0, len(keys))
	for _, key := range keys {
		values = append(values, ConfigValue{
			Key:    key,
			Value:  displayValue(key, viper.Get(key)),
			Source: sources.source(key),
		})
	}
	return values, nil
}

// IsSecret reports whether a key holds a credential
func IsSecret(key string) bool {
	return key == "api.token"
}

// MaskSecret hides all but the last four characters
func MaskSecret(str string) string {
	if str == "" {
		return str
	}
	if len(str) <= 4 {
		return "****"
	}
	return "****" + str[len(str)-4:]
}

// displayValue masks secrets
func displayValue(key string, value interface{}) interface{} {
	if !IsSecret(key) {
		return value
	}
	str, ok := value.(string)
	if !ok {
		return value
	}
	return MaskSecret(str)
}

// parseValue converts command-line text to the type registered for key.
// Durations and enums stay strings; ValidateValue checks their content.
func parseValue(key, raw string) (interface{}, error) {
	def := GetKeyDefinition(key)
	if def == nil {
		return nil, fmt.Errorf("unknown configuration key: %s", key)
	}

	raw = strings.TrimSpace(raw)
	if def.Type != "bool" {
		return raw, nil
	}

	switch strings.ToLower(raw) {
	case "true", "yes", "on", "enable", "enabled", "1":
		return true, nil
	case "false", "no", "off", "disable", "disabled", "0":
		return false, nil
	}
	return nil, fmt.Errorf("key '%s' must be a boolean (true/false, yes/no, on/off), got '%s'", key, raw)
}

// keyToEnvVar converts a config key to its environment variable name
func keyToEnvVar(key string) string {
	envKey := strings.ToUpper(EnvPrefix + "_" + strings.ReplaceAll(key, "-", "_"))
	envKey = strings.ReplaceAll(envKey, ".", "_")
	return envKey
}

// sourceResolver finds which layer a key's value comes from:
// ENV, then ./marx.yaml, then the user config, then the default
type sourceResolver []configLayer

type configLayer struct {
	scope ConfigScope
	v     *viper.Viper
}

func newSourceResolver() sourceResolver {
	var r sourceResolver
	for _, scope := range []ConfigScope{ScopeLocal, ScopeUser} {
		v, exists, err := readScope(scope)
		if err != nil || !exists {
			continue
		}
		r = append(r, configLayer{scope: scope, v: v})
	}
	return r
}

func (r sourceResolver) source(key string) string {
	if envKey := keyToEnvVar(key); os.Getenv(envKey) != "" {
		return "from ENV: " + envKey
	}
	for _, layer := range r {
		if layer.v.IsSet(key) {
			return "from " + getScopeDisplay(layer.scope)
		}
	}
	return "default"
}

// deleteNestedKey removes a key from a nested map using dot notation
func deleteNestedKey(m map[string]interface{}, key string) error {
	parts := strings.Split(key, ".")

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			return fmt.Errorf("key not found: %s", key)
		}
		current = next
	}

	last := parts[len(parts)-1]
	if _, exists := current[last]; !exists {
		return fmt.Errorf("key not found: %s", key)
	}
	delete(current, last)
	return nil
}
