// FILE: docsync/internal/codec/yaml_test.go
package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLEncode(t *testing.T) {
	c := For(FormatYAML, "")

	tests := []struct {
		name     string
		tree     any
		expected string
	}{
		{
			name:     "SortedScalars",
			tree:     map[string]any{"string": "", "number": 42},
			expected: "number: 42\nstring: ''\n",
		},
		{
			name: "ReservedWords",
			tree: map[string]any{
				"false": true,
				"true":  "false",
				"null":  "null",
				"yes":   "yes",
			},
			expected: "'false': true\n'null': 'null'\n'true': 'false'\n'yes': 'yes'\n",
		},
		{
			name:     "NumericStrings",
			tree:     map[string]any{"a": "42", "b": "4.2", "c": "1_000", "d": "v1"},
			expected: "a: '42'\nb: '4.2'\nc: '1_000'\nd: v1\n",
		},
		{
			name:     "EmptyContainers",
			tree:     map[string]any{"object": map[string]any{}, "array": []any{}},
			expected: "array: []\nobject: {}\n",
		},
		{
			name:     "Floats",
			tree:     map[string]any{"a": 1.0, "b": 4.2, "c": math.Inf(1)},
			expected: "a: 1.0\nb: 4.2\nc: .inf\n",
		},
		{
			name: "NestedList",
			tree: map[string]any{
				"results": []any{
					map[string]any{"status": false, "label": "abc"},
				},
			},
			expected: "results:\n  - label: abc\n    status: false\n",
		},
		{
			name:     "LiteralBlock",
			tree:     map[string]any{"text": "This is a\nsentence.\n"},
			expected: "text: |\n  This is a\n  sentence.\n",
		},
		{
			name:     "Null",
			tree:     map[string]any{"nothing": nil},
			expected: "nothing: null\n",
		},
		{
			name:     "CaseInsensitiveOrder",
			tree:     map[string]any{"b": 2, "A": 1, "a": 0},
			expected: "A: 1\na: 0\nb: 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := c.Encode(tt.tree)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))

			decoded, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, Normalize(tt.tree), decoded)
		})
	}
}

func TestYAMLDecode(t *testing.T) {
	c := For(FormatYAML, "")

	t.Run("Empty", func(t *testing.T) {
		tree, err := c.Decode([]byte(""))
		require.NoError(t, err)
		assert.Nil(t, tree)
	})

	t.Run("Scalars", func(t *testing.T) {
		tree, err := c.Decode([]byte("string: hi\nnumber: 7\nratio: 1.5\nflag: true\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"string": "hi", "number": 7, "ratio": 1.5, "flag": true}, tree)
	})

	t.Run("NonStringKeys", func(t *testing.T) {
		tree, err := c.Decode([]byte("1: one\ntrue: yes\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"1": "one", "true": "yes"}, tree)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := c.Decode([]byte("key: [unclosed\n"))
		assert.Error(t, err)
	})
}

func TestNeedsQuoting(t *testing.T) {
	quoted := []string{"", " padded", "true", "False", "NULL", "~", "on", "yes", "No", "off", "42", "0x1F", "-3.5", "1e3", ".inf"}
	for _, s := range quoted {
		assert.True(t, NeedsQuoting(s), "expected %q to need quoting", s)
	}

	plain := []string{"hello", "v1.2", "abc def", "nullable", "y", "n", "Y"}
	for _, s := range plain {
		assert.False(t, NeedsQuoting(s), "expected %q to stay plain", s)
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.0", FormatFloat(1))
	assert.Equal(t, "0.5", FormatFloat(0.5))
	assert.Equal(t, "1e+21", FormatFloat(1e21))
	assert.Equal(t, "-.inf", FormatFloat(math.Inf(-1)))
	assert.Equal(t, ".nan", FormatFloat(math.NaN()))
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, 42, ParseScalar("42"))
	assert.Equal(t, true, ParseScalar("true"))
	assert.Equal(t, "hello", ParseScalar("hello"))
	assert.Equal(t, 2.5, ParseScalar("2.5"))
	assert.Nil(t, ParseScalar("null"))
}
