// Package jsonpath extracts values from JSON text using JSONPath-style
// expressions, backed by gjson.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at a JSONPath expression as a string.
// Expressions like $.user.name, $.items[0].id, and plain gjson paths
// (user.name) are accepted.
func Extract(jsonStr, path string) (string, error) {
	if jsonStr == "" {
		return "", fmt.Errorf("empty JSON string")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(jsonStr, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// Exists reports whether the path resolves to a value in the JSON text
func Exists(jsonStr, path string) bool {
	if jsonStr == "" || path == "" {
		return false
	}
	return gjson.Get(jsonStr, toGjsonPath(path)).Exists()
}

// toGjsonPath rewrites a JSONPath expression into gjson's dotted path
// syntax: $.users[0].name becomes users.0.name.
func toGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	// Bracket notation, quoted or numeric, becomes dotted segments.
	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	path = replacer.Replace(path)
	return strings.TrimPrefix(path, ".")
}
