package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  },
  "required": ["name"]
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		valid   bool
		wantErr bool
	}{
		{
			name:  "Matching document",
			json:  `{"name": "ada", "age": 36}`,
			valid: true,
		},
		{
			name:  "Missing required property",
			json:  `{"age": 36}`,
			valid: false,
		},
		{
			name:  "Wrong type",
			json:  `{"name": 42}`,
			valid: false,
		},
		{
			name:    "Malformed document",
			json:    `{broken`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := Validate(tt.json, userSchema)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidate_BadSchema(t *testing.T) {
	_, err := Validate(`{}`, `{"type": 12}`)
	assert.Error(t, err)
}

func TestValidateWithErrors(t *testing.T) {
	valid, details := ValidateWithErrors(`{"age": -1}`, userSchema)
	assert.False(t, valid)
	assert.NotEmpty(t, details)

	valid, details = ValidateWithErrors(`{"name": "ada"}`, userSchema)
	assert.True(t, valid)
	assert.Empty(t, details)
}
