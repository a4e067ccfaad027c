// FILE: docsync/register.go
package docsync

import (
	"reflect"
	"strings"
	"time"
)

var (
	objectType   = reflect.TypeOf((*Object)(nil)).Elem()
	timeLike     = reflect.TypeOf((*interface{ String() string })(nil)).Elem()
	durationType = reflect.TypeOf(time.Duration(0))
)

// InferType derives a converter from a Go type:
//   - string, integer, float and bool kinds map to the scalar converters
//   - time.Duration is a String, written as e.g. "1m30s"
//   - maps become open Attributes
//   - slices and arrays become a List of the element's converter
//   - structs become Attributes over their fields, named by yaml tag
//   - interfaces and anything else become Generic
//
// A struct field tagged `docsync:"markdown"` uses Markdown.
func InferType(t reflect.Type) Converter {
	if t == nil {
		return Generic
	}
	for t.Kind() == reflect.Ptr {
		if t.Implements(objectType) {
			return OpenAttributes()
		}
		t = t.Elem()
	}
	if t == durationType {
		return String
	}

	switch t.Kind() {
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.Map:
		return OpenAttributes()
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return String
		}
		return ListOf(InferType(t.Elem()))
	case reflect.Array:
		return ListOf(InferType(t.Elem()))
	case reflect.Struct:
		if t.Implements(timeLike) {
			return String
		}
		return structAttributes(t)
	default:
		return Generic
	}
}

// structAttributes declares one attribute per mapped field of t.
func structAttributes(t reflect.Type) *Attributes {
	attrs := NewAttributes()
	registerFields(attrs, t)
	return attrs
}

// registerFields walks the exported fields of t, adding each to attrs.
// The inline map field, if any, carries undeclared keys and is not an attribute.
func registerFields(attrs *Attributes, t reflect.Type) {
	layout := layoutOf(t)
	for _, name := range layout.names {
		field := t.Field(layout.index[name])

		var conv Converter
		if hasOption(field.Tag.Get("docsync"), "markdown") {
			conv = Markdown
		} else {
			conv = InferType(field.Type)
		}
		attrs.Add(name, conv)
	}
}

func hasOption(tag, option string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == option {
			return true
		}
	}
	return false
}

// inferAttrs declares one attribute per current attribute of obj, with
// converters inferred from the current values. The result is open.
func inferAttrs(obj Object) *Attributes {
	attrs := OpenAttributes()
	if s, ok := obj.(*structObject); ok {
		registerFields(attrs, s.v.Type())
		return attrs
	}
	for _, name := range attrNames(obj) {
		value, _ := obj.GetAttr(name)
		attrs.Add(name, Infer(value))
	}
	return attrs
}
