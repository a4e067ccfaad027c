// FILE: docsync/list.go
package docsync

import "reflect"

// List converts a sequence whose elements share one converter.
type List struct {
	elem Converter
}

// ListOf declares a sequence of elem. A nil elem declares a sequence of Generic.
func ListOf(elem Converter) *List {
	return &List{elem: converterOrGeneric(elem)}
}

// Elem returns the element converter.
func (l *List) Elem() Converter {
	return l.elem
}

func (l *List) cloneConverter() Converter {
	return &List{elem: cloneConverter(l.elem)}
}

// ToValue converts every element. nil is the empty sequence and any other
// non-sequence value becomes a one-element sequence.
func (l *List) ToValue(data any) any {
	items := asSequence(data)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = l.elem.ToValue(item)
	}
	return out
}

// ToData applies the same coercion as ToValue to native values.
func (l *List) ToData(value any) any {
	items := asSequence(value)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = l.elem.ToData(item)
	}
	return out
}

// asSequence views slices and arrays of any element type as []any.
func asSequence(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	case string:
		return []any{s}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		if k := rv.Elem().Kind(); k == reflect.Slice || k == reflect.Array {
			return asSequence(rv.Elem().Interface())
		}
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []any{v}
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}
