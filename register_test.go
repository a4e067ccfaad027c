// FILE: docsync/register_test.go
package docsync

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type article struct {
	Title    string         `yaml:"title"`
	Body     string         `yaml:"body" docsync:"markdown"`
	Rating   float64        `yaml:"rating"`
	Tags     []string       `yaml:"tags"`
	Meta     map[string]any `yaml:"meta"`
	Author   author         `yaml:"author"`
	Created  time.Time      `yaml:"created"`
	Payload  any            `yaml:"payload"`
	Draft    bool
	Revision uint16 `yaml:"rev"`
}

type author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

func TestInferType(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		assert.Equal(t, String, InferType(reflect.TypeOf("")))
		assert.Equal(t, Integer, InferType(reflect.TypeOf(int64(0))))
		assert.Equal(t, Float, InferType(reflect.TypeOf(float32(0))))
		assert.Equal(t, Boolean, InferType(reflect.TypeOf(true)))
		assert.Equal(t, String, InferType(reflect.TypeOf([]byte(nil))))
		assert.Equal(t, String, InferType(reflect.TypeOf(time.Time{})))
		assert.Equal(t, String, InferType(reflect.TypeOf(time.Second)))
		assert.True(t, IsGeneric(InferType(nil)))
	})

	t.Run("Containers", func(t *testing.T) {
		list, ok := InferType(reflect.TypeOf([]int(nil))).(*List)
		require.True(t, ok)
		assert.Equal(t, Integer, list.Elem())

		attrs, ok := InferType(reflect.TypeOf(map[string]int(nil))).(*Attributes)
		require.True(t, ok)
		assert.True(t, attrs.IsOpen())

		attrs, ok = InferType(reflect.TypeOf(&Record{})).(*Attributes)
		require.True(t, ok)
		assert.True(t, attrs.IsOpen())
	})

	t.Run("Struct", func(t *testing.T) {
		attrs, ok := InferType(reflect.TypeOf(&article{})).(*Attributes)
		require.True(t, ok)
		assert.False(t, attrs.IsOpen())

		assert.Equal(t, []string{"title", "body", "rating", "tags", "meta", "author", "created", "payload", "draft", "rev"}, attrs.Names())
		assert.Equal(t, "Attributes{title: String, body: Markdown, rating: Float, tags: List[String], "+
			"meta: Attributes{open}, author: Attributes{name: String, email: String}, created: String, "+
			"payload: Generic, draft: Boolean, rev: Integer}", describe(attrs))
	})
}

func TestInferAttrs(t *testing.T) {
	t.Run("Record", func(t *testing.T) {
		rec := NewRecord(map[string]any{"count": 1, "name": "x", "items": []any{}, "nothing": nil})
		attrs := inferAttrs(rec)

		assert.True(t, attrs.IsOpen())
		assert.Equal(t, "Attributes{count: Integer, items: List[Generic], name: String, nothing: Generic, open}", describe(attrs))
	})

	t.Run("Struct", func(t *testing.T) {
		obj, _ := structOf(&author{})
		attrs := inferAttrs(obj)

		assert.True(t, attrs.IsOpen())
		assert.Equal(t, []string{"name", "email"}, attrs.Names())
	})
}

func TestHasOption(t *testing.T) {
	assert.True(t, hasOption("markdown", "markdown"))
	assert.True(t, hasOption("x, markdown", "markdown"))
	assert.False(t, hasOption("", "markdown"))
	assert.False(t, hasOption("markdowns", "markdown"))
}
