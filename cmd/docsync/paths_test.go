// FILE: docsync/cmd/docsync/paths_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	segments, err := splitPath("server.port")
	require.NoError(t, err)
	assert.Equal(t, []string{"server", "port"}, segments)

	for _, invalid := range []string{"", ".", "server.", "a..b"} {
		_, err := splitPath(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestLookupPath(t *testing.T) {
	tree := map[string]any{
		"server": map[string]any{"port": 8080},
		"items":  []any{"a", map[string]any{"b": true}},
	}

	tests := []struct {
		path     []string
		expected any
		found    bool
	}{
		{[]string{"server", "port"}, 8080, true},
		{[]string{"items", "0"}, "a", true},
		{[]string{"items", "1", "b"}, true, true},
		{[]string{"items", "2"}, nil, false},
		{[]string{"server", "port", "deeper"}, nil, false},
		{[]string{"missing"}, nil, false},
	}

	for _, tt := range tests {
		value, found := lookupPath(tree, tt.path)
		assert.Equal(t, tt.found, found, "path %v", tt.path)
		assert.Equal(t, tt.expected, value, "path %v", tt.path)
	}
}

func TestSetNestedValue(t *testing.T) {
	nested := map[string]any{"server": "flat"}

	setNestedValue(nested, []string{"server", "port"}, 9090)
	setNestedValue(nested, []string{"log", "level"}, "debug")
	setNestedValue(nested, []string{"name"}, "demo")

	assert.Equal(t, map[string]any{
		"server": map[string]any{"port": 9090},
		"log":    map[string]any{"level": "debug"},
		"name":   "demo",
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"server": map[string]any{"port": 8080, "tls": map[string]any{"enabled": false}},
		"empty":  map[string]any{},
	}, "")

	assert.Equal(t, map[string]any{
		"server.port":        8080,
		"server.tls.enabled": false,
		"empty":              map[string]any{},
	}, flat)
}
