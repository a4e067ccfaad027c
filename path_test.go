// FILE: docsync/path_test.go
package docsync

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	rec := NewRecord(map[string]any{"name": "sample", "category": "default", "id": 7})

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{"Plain", "sample.yml", "sample.yml"},
		{"Attribute", "{name}.yml", "sample.yml"},
		{"SelfPrefix", "path/to/{self.category}/{self.name}.yml", "path/to/default/sample.yml"},
		{"Number", "items/{id}.yml", "items/7.yml"},
		{"Repeated", "{name}/{name}.yml", "sample/sample.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ExpandPath(tt.template, rec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestExpandPathUUID(t *testing.T) {
	token := regexp.MustCompile(`^data/[0-9a-f]{32}\.yml$`)

	first, err := ExpandPath("data/{UUID}.yml", nil)
	require.NoError(t, err)
	second, err := ExpandPath("data/{UUID}.yml", nil)
	require.NoError(t, err)

	assert.Regexp(t, token, first)
	assert.Regexp(t, token, second)
	assert.NotEqual(t, first, second)
}

func TestNewToken(t *testing.T) {
	token, err := newToken()
	require.NoError(t, err)
	assert.Len(t, token, 32)

	other, err := newToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestExpandPathErrors(t *testing.T) {
	t.Run("MissingAttribute", func(t *testing.T) {
		_, err := ExpandPath("{missing}.yml", NewRecord(nil))
		assert.ErrorIs(t, err, ErrNoAttribute)
	})

	t.Run("NilObject", func(t *testing.T) {
		_, err := ExpandPath("{name}.yml", nil)
		assert.ErrorIs(t, err, ErrNoAttribute)
	})

	t.Run("Unprintable", func(t *testing.T) {
		_, err := ExpandPath("{list}.yml", NewRecord(map[string]any{"list": []any{1}}))
		assert.Error(t, err)
	})
}
