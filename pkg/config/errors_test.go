package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorError(t *testing.T) {
	baseErr := errors.New("base error")

	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "with field",
			err:      NewValidationError("llm", "model", baseErr),
			expected: "llm: field 'model': base error",
		},
		{
			name:     "without field",
			err:      NewValidationError("server", "", baseErr),
			expected: "server: base error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, baseErr)
		})
	}
}

func TestLoadErrorError(t *testing.T) {
	err := NewLoadError("thunder.yaml", ErrInvalidYAML)

	assert.Equal(t, "failed to load thunder.yaml: invalid YAML syntax", err.Error())
	assert.ErrorIs(t, err, ErrInvalidYAML)
}
