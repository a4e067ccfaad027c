// FILE: docsync/converter.go
package docsync

// Converter translates between a document tree node and a native value.
// Converters never fail: input that cannot be converted yields the
// converter's default value.
type Converter interface {
	// ToValue converts parsed document data (possibly nil) to a native value.
	ToValue(data any) any
	// ToData converts a native value (possibly of a foreign type) to document data.
	ToData(value any) any
}

// Built-in converters.
var (
	String   Converter = StringConverter{}
	Integer  Converter = IntegerConverter{}
	Float    Converter = FloatConverter{}
	Boolean  Converter = BooleanConverter{}
	Markdown Converter = MarkdownConverter{}
	Generic  Converter = GenericConverter{}
)

// StringConverter maps strings. Numbers and booleans are formatted,
// containers become the empty string.
type StringConverter struct{}

func (StringConverter) ToValue(data any) any {
	s, _ := asString(data)
	return s
}

func (c StringConverter) ToData(value any) any {
	return c.ToValue(value)
}

// IntegerConverter maps int values.
type IntegerConverter struct{}

func (IntegerConverter) ToValue(data any) any {
	i, _ := asInt(data)
	return i
}

func (c IntegerConverter) ToData(value any) any {
	return c.ToValue(value)
}

// FloatConverter maps float64 values.
type FloatConverter struct{}

func (FloatConverter) ToValue(data any) any {
	f, _ := asFloat(data)
	return f
}

func (c FloatConverter) ToData(value any) any {
	return c.ToValue(value)
}

// BooleanConverter maps bool values.
type BooleanConverter struct{}

func (BooleanConverter) ToValue(data any) any {
	b, _ := asBool(data)
	return b
}

func (c BooleanConverter) ToData(value any) any {
	return c.ToValue(value)
}

// cloner is implemented by converters that carry mutable schema state.
type cloner interface {
	cloneConverter() Converter
}

// cloneConverter copies container schemas so that schema discovery on one
// object does not leak into others declared with the same converter.
func cloneConverter(conv Converter) Converter {
	if c, ok := conv.(cloner); ok {
		return c.cloneConverter()
	}
	return conv
}

// converterOrGeneric substitutes Generic for a missing converter.
func converterOrGeneric(conv Converter) Converter {
	if conv == nil {
		return Generic
	}
	return conv
}
