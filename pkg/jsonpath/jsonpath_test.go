package jsonpath

import (
	"testing"
)

const sample = `{
  "user": {"name": "ada", "age": 36},
  "items": [{"id": 1}, {"id": 2}],
  "empty": null
}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "Dotted JSONPath",
			path:     "$.user.name",
			expected: "ada",
		},
		{
			name:     "Array index",
			path:     "$.items[1].id",
			expected: "2",
		},
		{
			name:     "Bracket notation single quotes",
			path:     "$['user']['age']",
			expected: "36",
		},
		{
			name:     "Plain gjson path",
			path:     "user.name",
			expected: "ada",
		},
		{
			name:     "Null value",
			path:     "$.empty",
			expected: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(sample, tt.path)
			if err != nil {
				t.Fatalf("Extract(%q) error: %v", tt.path, err)
			}
			if got != tt.expected {
				t.Errorf("Extract(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	if _, err := Extract("", "$.a"); err == nil {
		t.Error("Expected error for empty JSON")
	}
	if _, err := Extract(sample, ""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := Extract(sample, "$.missing.path"); err == nil {
		t.Error("Expected error for unresolved path")
	}
}

func TestExists(t *testing.T) {
	if !Exists(sample, "$.user.name") {
		t.Error("Expected path to exist")
	}
	if Exists(sample, "$.nope") {
		t.Error("Expected path to not exist")
	}
	if Exists("", "$.a") {
		t.Error("Expected empty JSON to resolve nothing")
	}
}
