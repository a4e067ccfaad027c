// FILE: docsync/attributes_test.go
package docsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func TestAttributesToValue(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		attrs := NewAttributes(A("a", Integer), A("b", String))
		assert.Equal(t, map[string]any{"a": 0, "b": ""}, attrs.ToValue(nil))
	})

	t.Run("NonMappingIsEmpty", func(t *testing.T) {
		attrs := NewAttributes(A("a", Integer))
		assert.Equal(t, map[string]any{"a": 0}, attrs.ToValue("abc"))
		assert.Equal(t, map[string]any{"a": 0}, attrs.ToValue([]any{1, 2}))
	})

	t.Run("DiscoversUnknownKeys", func(t *testing.T) {
		attrs := NewAttributes(A("b", String))
		out := attrs.ToValue(map[string]any{"z": 1.5, "a": "x", "b": 5})

		assert.Equal(t, map[string]any{"b": "5", "a": "x", "z": 1.5}, out)
		assert.Equal(t, []string{"b", "a", "z"}, attrs.Names())

		// discovered keys stay in the schema
		assert.Equal(t, map[string]any{"b": "", "a": "", "z": 0.0}, attrs.ToValue(nil))
	})

	t.Run("Nested", func(t *testing.T) {
		attrs := NewAttributes(A("server", Dictionary(A("port", Integer))))
		out := attrs.ToValue(map[string]any{"server": map[string]any{"port": "80", "host": "localhost"}})
		assert.Equal(t, map[string]any{
			"server": map[string]any{"port": 80, "host": "localhost"},
		}, out)
	})

	t.Run("NonStringKeys", func(t *testing.T) {
		attrs := NewAttributes()
		out := attrs.ToValue(map[any]any{"a": 1, 2: "b"})
		assert.Equal(t, map[string]any{"a": 1, "2": "b"}, out)
		assert.Equal(t, []string{"2", "a"}, attrs.Names())
	})
}

func TestAttributesToData(t *testing.T) {
	t.Run("ClosedIgnoresUnknownKeys", func(t *testing.T) {
		attrs := NewAttributes(A("a", Integer))
		out := attrs.ToData(map[string]any{"a": "3", "x": 1})
		assert.Equal(t, map[string]any{"a": 3}, out)
		assert.Equal(t, []string{"a"}, attrs.Names())
	})

	t.Run("OpenDiscoversNativeKeys", func(t *testing.T) {
		attrs := OpenAttributes(A("a", Integer))
		out := attrs.ToData(map[string]any{"a": "3", "x": []int{1}})
		assert.Equal(t, map[string]any{"a": 3, "x": []any{1}}, out)

		conv, ok := attrs.Lookup("x")
		require.True(t, ok)
		assert.IsType(t, &List{}, conv)
	})

	t.Run("MissingAttributesGetDefaults", func(t *testing.T) {
		attrs := NewAttributes(A("status", Boolean), A("label", String))
		assert.Equal(t, map[string]any{"status": false, "label": ""}, attrs.ToData(nil))
		assert.Equal(t, map[string]any{"status": false, "label": "def"}, attrs.ToData(map[string]any{"label": "def"}))
	})

	t.Run("Record", func(t *testing.T) {
		attrs := OpenAttributes()
		rec := NewRecord(map[string]any{"b": 1, "a": "x"})
		assert.Equal(t, map[string]any{"a": "x", "b": 1}, attrs.ToData(rec))
		assert.Equal(t, []string{"a", "b"}, attrs.Names())
	})

	t.Run("Struct", func(t *testing.T) {
		attrs := NewAttributes(A("x", Integer), A("y", String))
		assert.Equal(t, map[string]any{"x": 1, "y": "2"}, attrs.ToData(point{X: 1, Y: 2}))
		assert.Equal(t, map[string]any{"x": 3, "y": "4"}, attrs.ToData(&point{X: 3, Y: 4}))
	})
}

func TestAttributesGenericUpgrade(t *testing.T) {
	attrs := NewAttributes(A("g", nil))

	out := attrs.ToValue(map[string]any{"g": nil})
	assert.Equal(t, map[string]any{"g": nil}, out)
	conv, _ := attrs.Lookup("g")
	assert.True(t, IsGeneric(conv), "nil does not upgrade")

	out = attrs.ToValue(map[string]any{"g": []any{1, "2"}})
	assert.Equal(t, map[string]any{"g": []any{1, "2"}}, out)
	conv, _ = attrs.Lookup("g")
	assert.IsType(t, &List{}, conv)

	// the upgrade is permanent
	out = attrs.ToValue(map[string]any{"g": "abc"})
	assert.Equal(t, map[string]any{"g": []any{"abc"}}, out)
}

func TestAttributesSchema(t *testing.T) {
	t.Run("AddReplacesConverter", func(t *testing.T) {
		attrs := NewAttributes(A("a", Integer), A("b", Integer))
		attrs.Add("a", String)

		assert.Equal(t, []string{"a", "b"}, attrs.Names())
		conv, ok := attrs.Lookup("a")
		require.True(t, ok)
		assert.Equal(t, String, conv)
		assert.Equal(t, 2, attrs.Len())
	})

	t.Run("LookupMissing", func(t *testing.T) {
		_, ok := NewAttributes().Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		original := OpenAttributes(A("x", Integer), A("nested", Dictionary()))
		clone := original.Clone()

		clone.ToValue(map[string]any{"y": 1, "nested": map[string]any{"inner": true}})

		assert.Equal(t, []string{"x", "nested", "y"}, clone.Names())
		assert.Equal(t, []string{"x", "nested"}, original.Names())
		assert.True(t, clone.IsOpen())

		nested, _ := original.Lookup("nested")
		assert.Zero(t, nested.(*Attributes).Len())
	})

	t.Run("ConcurrentDiscovery", func(t *testing.T) {
		attrs := NewAttributes()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				attrs.ToValue(map[string]any{"a": 1, "b": "x"})
				attrs.ToData(map[string]any{"a": 2})
			}()
		}
		wg.Wait()
		assert.Equal(t, []string{"a", "b"}, attrs.Names())
	})
}
