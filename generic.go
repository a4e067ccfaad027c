// FILE: docsync/generic.go
package docsync

import "reflect"

// GenericConverter stores any shape as-is. Containers are deep-copied into
// the document tree value set. An attribute slot declared Generic is
// upgraded to a concrete converter on its first non-nil observation.
type GenericConverter struct{}

func (GenericConverter) ToValue(data any) any {
	return plain(data)
}

func (GenericConverter) ToData(value any) any {
	return plain(value)
}

// Shape classifies a value for converter inference.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeMapping
	ShapeSequence
	ShapeScalar
)

func (s Shape) String() string {
	switch s {
	case ShapeMapping:
		return "mapping"
	case ShapeSequence:
		return "sequence"
	case ShapeScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ShapeOf reports the shape of a document or native value. nil is unknown.
func ShapeOf(v any) Shape {
	if isNil(v) {
		return ShapeUnknown
	}
	if _, ok := v.(Object); ok {
		return ShapeMapping
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ShapeUnknown
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return ShapeMapping
	case reflect.Struct:
		if _, ok := rv.Interface().(interface{ String() string }); ok {
			return ShapeScalar
		}
		return ShapeMapping
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ShapeScalar
		}
		return ShapeSequence
	case reflect.Array:
		return ShapeSequence
	case reflect.Invalid, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ShapeUnknown
	default:
		return ShapeScalar
	}
}

// Infer returns a concrete converter for the shape of v: open Attributes
// for mappings, a List of Generic for sequences and the matching scalar
// converter otherwise. Unknown shapes stay Generic.
func Infer(v any) Converter {
	switch ShapeOf(v) {
	case ShapeMapping:
		return OpenAttributes()
	case ShapeSequence:
		return ListOf(Generic)
	case ShapeScalar:
		return inferScalar(v)
	default:
		return Generic
	}
}

func inferScalar(v any) Converter {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer
	case reflect.Float32, reflect.Float64:
		return Float
	default:
		return String
	}
}

// IsGeneric reports whether conv is the not yet upgraded Generic converter.
func IsGeneric(conv Converter) bool {
	_, ok := conv.(GenericConverter)
	return ok
}
