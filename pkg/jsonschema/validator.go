// Package jsonschema validates JSON documents against JSON Schema
// definitions.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks a JSON document against a schema. It returns false
// with a nil error when the document is well-formed but does not match;
// an error is returned only for malformed schemas or documents.
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, err
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return false, nil
	}
	return true, nil
}

// ValidateWithErrors checks a JSON document against a schema and, when
// it does not match, describes the violations.
func ValidateWithErrors(jsonStr, schemaStr string) (bool, []string) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, []string{err.Error()}
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return false, []string{fmt.Sprintf("invalid JSON: %v", err)}
	}

	err = schema.Validate(doc)
	if err == nil {
		return true, nil
	}

	var ve *jsonschema.ValidationError
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		ve = verr
	} else {
		return false, []string{err.Error()}
	}

	var details []string
	for _, cause := range flatten(ve) {
		details = append(details, cause)
	}
	return false, details
}

func compile(schemaStr string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

// flatten walks the validation error tree, preferring leaf causes over
// the generic root message.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{fmt.Sprintf("%s: %s", location, ve.Message)}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
