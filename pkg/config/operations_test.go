// SPDX-License-Identifier: Apache-2.0
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// setupConfigDirs points GlobalPaths at a temp dir and runs the test from an
// empty working directory so ./marx.yaml never touches the source tree
func setupConfigDirs(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	saved := GlobalPaths
	t.Cleanup(func() { GlobalPaths = saved })
	GlobalPaths = &Paths{
		DataDir:   filepath.Join(tmpDir, "data"),
		ConfigDir: filepath.Join(tmpDir, "config"),
	}
	if err := os.MkdirAll(GlobalPaths.ConfigDir, 0755); err != nil {
		t.Fatal(err)
	}

	work := filepath.Join(tmpDir, "work")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(work)

	viper.Reset()
	t.Cleanup(viper.Reset)
	return tmpDir
}

func TestSetConfigValue_LocalAndUser(t *testing.T) {
	setupConfigDirs(t)

	if err := SetConfigValue("api.url", "http://analysis.internal:9000", ScopeLocal); err != nil {
		t.Fatalf("SetConfigValue(local) failed: %v", err)
	}
	content, err := os.ReadFile(LocalConfigFile + DefaultConfigExt)
	if err != nil {
		t.Fatalf("local config not written: %v", err)
	}
	if !strings.Contains(string(content), "analysis.internal") {
		t.Errorf("local config missing value:\n%s", content)
	}

	if err := SetConfigValue("quiz.debounce", "250ms", ScopeUser); err != nil {
		t.Fatalf("SetConfigValue(user) failed: %v", err)
	}
	content, err = os.ReadFile(filepath.Join(GlobalPaths.ConfigDir, "config.yaml"))
	if err != nil {
		t.Fatalf("user config not written: %v", err)
	}
	if !strings.Contains(string(content), "250ms") {
		t.Errorf("user config missing value:\n%s", content)
	}
}

func TestSetConfigValue_ValidatesValue(t *testing.T) {
	setupConfigDirs(t)

	if err := SetConfigValue("log-level", "invalid-level", ScopeUser); err == nil {
		t.Error("SetConfigValue should reject invalid enum value")
	}
	if err := SetConfigValue("api.timeout", "forever", ScopeUser); err == nil {
		t.Error("SetConfigValue should reject an invalid duration")
	}
	if err := SetConfigValue("use-tui", "off", ScopeUser); err != nil {
		t.Errorf("SetConfigValue should accept boolean alias: %v", err)
	}
}

func TestSetConfigValue_TokenForbiddenLocally(t *testing.T) {
	setupConfigDirs(t)

	err := SetConfigValue("api.token", "secret-token-1234", ScopeLocal)
	if err == nil {
		t.Fatal("SetConfigValue should reject api.token in local scope")
	}
	if !strings.Contains(err.Error(), "sensitive") {
		t.Errorf("Error should mention sensitive nature: %v", err)
	}

	if err := SetConfigValue("api.token", "secret-token-1234", ScopeUser); err != nil {
		t.Errorf("SetConfigValue should allow api.token in user scope: %v", err)
	}
}

func TestUnsetConfigValue(t *testing.T) {
	setupConfigDirs(t)

	if err := UnsetConfigValue("api.url", ScopeLocal); err == nil {
		t.Error("UnsetConfigValue should fail when the file does not exist")
	}

	if err := SetConfigValue("api.url", "http://a.example", ScopeLocal); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigValue("output.format", "json", ScopeLocal); err != nil {
		t.Fatal(err)
	}
	if err := UnsetConfigValue("api.url", ScopeLocal); err != nil {
		t.Fatalf("UnsetConfigValue failed: %v", err)
	}

	content, err := os.ReadFile(LocalConfigFile + DefaultConfigExt)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "a.example") {
		t.Errorf("api.url should be removed:\n%s", content)
	}
	if !strings.Contains(string(content), "json") {
		t.Errorf("output.format should remain:\n%s", content)
	}

	if err := UnsetConfigValue("api.url", ScopeLocal); err == nil {
		t.Error("UnsetConfigValue should fail for a key that is not set")
	}
}

func TestListConfigValues_MasksToken(t *testing.T) {
	setupConfigDirs(t)
	InitViper()
	viper.Set("api.token", "abcdefgh1234")

	values, err := ListConfigValues()
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, cv := range values {
		if cv.Key == "api.token" {
			found = true
			if cv.Value != "****1234" {
				t.Errorf("api.token displayed as %v", cv.Value)
			}
		}
	}
	if !found {
		t.Error("api.token missing from list")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		in      string
		want    interface{}
		wantErr bool
	}{
		{"use-tui", "yes", true, false},
		{"quiz.auto-advance", "disabled", false, false},
		{"use-tui", " ON ", true, false},
		{"use-tui", "maybe", nil, true},
		{"quiz.debounce", "30s", "30s", false},
		{"log-level", "debug", "debug", false},
		// Strings are never coerced to numbers
		{"api.token", " 1234 ", "1234", false},
		{"quiz.colour", "red", nil, true},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.key, tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseValue(%s, %q) error = %v, wantErr %v", tt.key, tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseValue(%s, %q) = %v (%T), want %v", tt.key, tt.in, got, got, tt.want)
		}
	}
}

func TestListConfigValues_RegisteredKeys(t *testing.T) {
	setupConfigDirs(t)
	InitViper()

	values, err := ListConfigValues()
	if err != nil {
		t.Fatal(err)
	}

	keys := RegisteredKeys()
	if len(values) != len(keys) {
		t.Fatalf("expected %d values, got %d", len(keys), len(values))
	}
	for i, cv := range values {
		if cv.Key != keys[i] {
			t.Errorf("value %d is %s, want %s", i, cv.Key, keys[i])
		}
		if cv.Source != "default" {
			t.Errorf("%s source = %q with no config files", cv.Key, cv.Source)
		}
	}
}

func TestConfigSource(t *testing.T) {
	setupConfigDirs(t)

	if err := SetConfigValue("output.format", "json", ScopeUser); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigValue("quiz.debounce", "1s", ScopeUser); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigValue("quiz.debounce", "250ms", ScopeLocal); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MARX_LOG_LEVEL", "debug")

	sources := newSourceResolver()
	tests := map[string]string{
		"output.format": "from " + UserConfigDisplay(),
		"quiz.debounce": "from ./marx.yaml",
		"log-level":     "from ENV: MARX_LOG_LEVEL",
		"api.url":       "default",
	}
	for key, want := range tests {
		if got := sources.source(key); got != want {
			t.Errorf("source(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestValidateConfigFile_IgnoresUnknownKeys(t *testing.T) {
	setupConfigDirs(t)

	content := "quiz:\n  colour: red\n  debounce: 300ms\n"
	if err := os.WriteFile(LocalConfigFile+DefaultConfigExt, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := validateConfigFile(ScopeLocal); err != nil {
		t.Errorf("unknown keys should be ignored: %v", err)
	}

	content = "quiz:\n  debounce: soon\n"
	if err := os.WriteFile(LocalConfigFile+DefaultConfigExt, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := validateConfigFile(ScopeLocal); err == nil {
		t.Error("an invalid duration should be rejected")
	}
}

func TestKeyToEnvVar(t *testing.T) {
	if got := keyToEnvVar("quiz.auto-advance"); got != "MARX_QUIZ_AUTO_ADVANCE" {
		t.Errorf("keyToEnvVar = %s", got)
	}
}
