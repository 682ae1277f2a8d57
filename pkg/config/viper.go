// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitViper initializes Viper configuration with defaults and search paths
// Precedence order: flags > ENV > local conf > user conf > defaults
func InitViper() {
	viper.SetConfigType(ConfigType)

	// Defaults come from the registry so `config list` and the schema agree
	for key, def := range ConfigRegistry {
		viper.SetDefault(key, def.Default)
	}

	// Environment variables: api.url -> MARX_API_URL
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// LoadConfig reads config files in precedence order
// Precedence: ENV > ./marx.yaml > ~/.config/marx/config.yaml > defaults
func LoadConfig() error {
	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(GlobalPaths.ConfigDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read user config file: %w", err)
		}
	} else {
		if err := validateConfigFile(ScopeUser); err != nil {
			return err
		}
	}

	// Local directory config overrides user config
	viper.SetConfigName(LocalConfigFile)
	viper.AddConfigPath(".")

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read local config file: %w", err)
		}
	} else {
		if err := validateConfigFile(ScopeLocal); err != nil {
			return err
		}
	}

	return nil
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetAPIURL returns the analysis service base URL
func GetAPIURL() string {
	url := strings.TrimSpace(viper.GetString("api.url"))
	if url == "" {
		return DefaultAPIURL
	}
	return strings.TrimRight(url, "/")
}

// GetAPIToken returns the bearer token sent to the analysis service, if any
func GetAPIToken() string {
	return viper.GetString("api.token")
}

// GetAPITimeout returns the per-request timeout for the analysis service
func GetAPITimeout() time.Duration {
	return durationOr("api.timeout", DefaultAPITimeout)
}

// GetDebounce returns the budget input debounce delay
func GetDebounce() time.Duration {
	return durationOr("quiz.debounce", DefaultDebounce)
}

// GetAutoAdvance reports whether selecting an option scrolls to the next section
func GetAutoAdvance() bool {
	return viper.GetBool("quiz.auto-advance")
}

// GetOutputFormat returns the non-interactive output format (markdown or json)
func GetOutputFormat() string {
	format := strings.ToLower(viper.GetString("output.format"))
	if format == "" {
		return DefaultOutputFormat
	}
	return format
}

// durationOr reads a duration key; unset, unparsable or non-positive values
// fall back to def
func durationOr(key string, def time.Duration) time.Duration {
	d := viper.GetDuration(key)
	if d <= 0 {
		return def
	}
	return d
}

// validateConfigFile checks every key in a config file against the registry
// and the constraints of its scope
func validateConfigFile(scope ConfigScope) error {
	v, exists, err := readScope(scope)
	if err != nil {
		return fmt.Errorf("failed to read config file for validation: %w", err)
	}
	if !exists {
		return nil
	}
	configPath := getConfigPath(scope)

	for _, key := range v.AllKeys() {
		if GetKeyDefinition(key) == nil {
			log.Debug("ignoring unknown config key", "key", key, "file", configPath)
			continue
		}
		if err := ValidateKeyScope(key, scope); err != nil {
			return fmt.Errorf("invalid key in config file %s: %w", configPath, err)
		}
		if err := ValidateValue(key, v.Get(key), scope); err != nil {
			return fmt.Errorf("invalid value in config file %s: %w", configPath, err)
		}
	}

	return nil
}

// flagKeys maps persistent flag names to config keys
var flagKeys = map[string]string{
	"use-tui":   "use-tui",
	"log-level": "log-level",
	"api-url":   "api.url",
}

// BindFlags binds all relevant cobra flags to Viper
func BindFlags(flags *pflag.FlagSet) error {
	for flagName, key := range flagKeys {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	return nil
}

// configFilePath joins the directory of a scope with its file name
func configFilePath(dir, name string) string {
	return filepath.Join(dir, name+DefaultConfigExt)
}
