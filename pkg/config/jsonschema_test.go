// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

func generateSchema(t *testing.T, scope *ConfigScope) map[string]interface{} {
	t.Helper()
	data, err := GenerateJSONSchemaForScope(scope)
	if err != nil {
		t.Fatalf("GenerateJSONSchemaForScope failed: %v", err)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Schema is not valid JSON: %v", err)
	}
	return result
}

func TestGenerateJSONSchema(t *testing.T) {
	result := generateSchema(t, nil)

	if got := result["$schema"]; got != "https://json-schema.org/draft/2020-12/schema" {
		t.Errorf("$schema = %v, want Draft 2020-12", got)
	}

	properties, ok := result["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties field missing or not an object")
	}
	for _, key := range []string{"use-tui", "log-level", "api", "quiz", "output"} {
		if _, exists := properties[key]; !exists {
			t.Errorf("Expected property '%s' not found in schema", key)
		}
	}
}

func TestGenerateJSONSchema_NestedProperties(t *testing.T) {
	result := generateSchema(t, nil)
	properties := result["properties"].(map[string]interface{})

	api, ok := properties["api"].(map[string]interface{})
	if !ok {
		t.Fatal("api should be an object")
	}
	if api["type"] != "object" {
		t.Errorf("api type = %v, want object", api["type"])
	}
	apiProps := api["properties"].(map[string]interface{})
	for _, key := range []string{"url", "token", "timeout"} {
		if _, exists := apiProps[key]; !exists {
			t.Errorf("api.%s missing from schema", key)
		}
	}
}

func TestGenerateJSONSchema_Types(t *testing.T) {
	result := generateSchema(t, nil)
	properties := result["properties"].(map[string]interface{})

	useTUI := properties["use-tui"].(map[string]interface{})
	if useTUI["type"] != "boolean" {
		t.Errorf("use-tui type = %v, want boolean", useTUI["type"])
	}

	logLevel := properties["log-level"].(map[string]interface{})
	if enum, ok := logLevel["enum"].([]interface{}); !ok || len(enum) != 5 {
		t.Errorf("log-level enum = %v", logLevel["enum"])
	}

	quiz := properties["quiz"].(map[string]interface{})["properties"].(map[string]interface{})
	debounce := quiz["debounce"].(map[string]interface{})
	pattern, _ := debounce["pattern"].(string)
	if pattern == "" {
		t.Fatal("quiz.debounce should carry a duration pattern")
	}
	re := regexp.MustCompile(pattern)
	for _, ok := range []string{"700ms", "30s", "1m30s", "1.5h"} {
		if !re.MatchString(ok) {
			t.Errorf("duration pattern should match %q", ok)
		}
	}
	for _, bad := range []string{"", "30", "soon"} {
		if re.MatchString(bad) {
			t.Errorf("duration pattern should not match %q", bad)
		}
	}
}

func TestGenerateJSONSchemaForScope(t *testing.T) {
	user := ScopeUser
	result := generateSchema(t, &user)
	if title, _ := result["title"].(string); !strings.Contains(title, "User") {
		t.Errorf("Expected 'User' in title, got: %s", title)
	}
	api := result["properties"].(map[string]interface{})["api"].(map[string]interface{})
	if _, ok := api["properties"].(map[string]interface{})["token"]; !ok {
		t.Error("api.token should be in user schema")
	}

	local := ScopeLocal
	result = generateSchema(t, &local)
	if title, _ := result["title"].(string); !strings.Contains(title, "Local") {
		t.Errorf("Expected 'Local' in title, got: %s", title)
	}
	api = result["properties"].(map[string]interface{})["api"].(map[string]interface{})
	if _, ok := api["properties"].(map[string]interface{})["token"]; ok {
		t.Error("api.token should NOT be in local schema")
	}
	if _, ok := api["properties"].(map[string]interface{})["url"]; !ok {
		t.Error("api.url should be in local schema")
	}
}
