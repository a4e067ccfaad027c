// FILE: docsync/decode.go
package docsync

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

var recordPtrType = reflect.TypeOf((*Record)(nil))

// decodeInto assigns value to target, converting between the document tree
// and the target's Go type. On failure target is set to its zero value.
func decodeInto(target reflect.Value, value any) error {
	if target.Type() == recordPtrType {
		if m, ok := value.(map[string]any); ok {
			target.Set(reflect.ValueOf(NewRecord(m)))
			return nil
		}
	}

	result := reflect.New(target.Type())

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result.Interface(),
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(value); err != nil {
		target.Set(reflect.Zero(target.Type()))
		return fmt.Errorf("decode failed for %s: %w", target.Type(), err)
	}

	target.Set(result.Elem())
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.TextUnmarshallerHookFunc(),
		lenientScalarHookFunc(),
	)
}

// lenientScalarHookFunc applies the scalar coercions of the built-in
// converters to scalar struct fields, so that e.g. "yes" decodes into a
// bool and 4.7 into an int.
func lenientScalarHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if data == nil || f == t {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			return data, nil
		}

		switch t.Kind() {
		case reflect.Bool:
			if b, err := asBool(data); err == nil {
				return b, nil
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if i, err := asInt(data); err == nil {
				return i, nil
			}
		case reflect.Float32, reflect.Float64:
			if fl, err := asFloat(data); err == nil {
				return fl, nil
			}
		case reflect.String:
			if s, err := asString(data); err == nil {
				return s, nil
			}
		}
		return data, nil
	}
}
