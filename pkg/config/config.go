// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName names the binary and its XDG directories
	AppName = "marx"

	// Configuration
	EnvPrefix        = "MARX"   // Environment variable prefix for Viper
	ConfigFileName   = "config" // Config file name for XDG config dir (without extension)
	LocalConfigFile  = "marx"   // Config file name for current directory (without extension)
	ConfigType       = "yaml"   // Config file type
	DefaultConfigExt = ".yaml"  // Default config file extension

	// Analysis service
	DefaultAPIURL     = "http://127.0.0.1:8000"
	DefaultAPITimeout = 30 * time.Second

	// Quiz behaviour
	DefaultDebounce     = 700 * time.Millisecond
	DefaultOutputFormat = "markdown"

	LogFileName     = "debug.log"
	AnswersFileName = "answers.yaml"
)

// Paths holds all XDG-compliant directory paths
type Paths struct {
	DataDir   string
	ConfigDir string

	LogFile     string // JSON debug log
	AnswersFile string // Default target for --save-answers
}

var (
	// GlobalPaths is the global paths instance
	GlobalPaths *Paths
)

func init() {
	GlobalPaths = GetPaths()
}

// xdgDir resolves an XDG base directory, falling back to a path under $HOME
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// GetPaths returns XDG-compliant directory paths
func GetPaths() *Paths {
	dataDir := filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), AppName)
	configDir := filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName)

	return &Paths{
		DataDir:     dataDir,
		ConfigDir:   configDir,
		LogFile:     filepath.Join(dataDir, LogFileName),
		AnswersFile: filepath.Join(dataDir, AnswersFileName),
	}
}

// UserConfigDisplay is the user config path as shown in help and messages
func UserConfigDisplay() string {
	return "~/.config/" + AppName + "/" + ConfigFileName + DefaultConfigExt
}

// LocalConfigDisplay is the local config path as shown in help and messages
func LocalConfigDisplay() string {
	return "./" + LocalConfigFile + DefaultConfigExt
}

// HasLocalConfig returns true when a marx.yaml exists in the current directory
func HasLocalConfig() bool {
	_, err := os.Stat(filepath.Join(".", LocalConfigFile+DefaultConfigExt))
	return err == nil
}

// InitDirs creates all necessary directories
func InitDirs() error {
	dirs := []string{
		GlobalPaths.ConfigDir,
		GlobalPaths.DataDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
