// FILE: docsync/convenience.go
package docsync

import (
	"fmt"
	"io"
	"strings"
)

// Quick binds obj to path with inferred attributes and automatic syncing.
func Quick[T any](obj *T, path string) (*T, error) {
	return Sync(obj, path, nil, true)
}

// MustQuick is like Quick but panics on error.
func MustQuick[T any](obj *T, path string) *T {
	bound, err := Quick(obj, path)
	if err != nil {
		panic(fmt.Sprintf("docsync quick bind failed: %v", err))
	}
	return bound
}

// Debug returns a formatted string showing the mapper state and the
// converter and current value of every attribute.
func (m *Mapper) Debug() string {
	var b strings.Builder
	b.WriteString("Mapper Debug Info:\n")
	b.WriteString(fmt.Sprintf("Path: %s\n", m.path))
	b.WriteString(fmt.Sprintf("Format: %s\n", m.Format()))
	b.WriteString(fmt.Sprintf("Auto: %t\n", m.Auto()))
	b.WriteString(fmt.Sprintf("State: %s\n", m.State()))
	b.WriteString("Attributes:\n")

	values, err := m.values()
	if err != nil {
		b.WriteString(fmt.Sprintf("  <%v>\n", err))
		return b.String()
	}

	for _, name := range m.attrs.Names() {
		conv, _ := m.attrs.Lookup(name)
		b.WriteString(fmt.Sprintf("  %s:\n", name))
		b.WriteString(fmt.Sprintf("    Converter: %s\n", describe(conv)))
		b.WriteString(fmt.Sprintf("    Current: %v\n", values[name]))
	}

	return b.String()
}

// Dump writes the rendered document to w without touching the file.
func (m *Mapper) Dump(w io.Writer) error {
	data, err := m.Render()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// describe names a converter for diagnostics.
func describe(conv Converter) string {
	switch c := conv.(type) {
	case *Attributes:
		parts := make([]string, 0, c.Len()+1)
		for _, name := range c.Names() {
			nested, _ := c.Lookup(name)
			parts = append(parts, name+": "+describe(nested))
		}
		if c.IsOpen() {
			parts = append(parts, "open")
		}
		return "Attributes{" + strings.Join(parts, ", ") + "}"
	case *List:
		return "List[" + describe(c.Elem()) + "]"
	case StringConverter:
		return "String"
	case IntegerConverter:
		return "Integer"
	case FloatConverter:
		return "Float"
	case BooleanConverter:
		return "Boolean"
	case MarkdownConverter:
		return "Markdown"
	case GenericConverter:
		return "Generic"
	default:
		return fmt.Sprintf("%T", conv)
	}
}
