// FILE: docsync/type.go
package docsync

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"docsync/internal/codec"
)

// asString converts common scalar types to a string.
// nil is the empty string; containers cannot be converted.
func asString(val any) (string, error) {
	if val == nil {
		return "", nil
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	case error:
		return v.Error(), nil
	}

	if rv := reflect.ValueOf(val); rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string", val)
}

// asInt converts numeric types, parsable strings and booleans to an int.
// Floats are truncated.
func asInt(val any) (int, error) {
	if val == nil {
		return 0, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(int(^uint(0)>>1)) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int: overflow", u)
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt(v.Float())
	case reflect.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, nil
		}
		i, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, 64) // base 0 accepts "0xFF"
		if err == nil {
			return int(i), nil
		}
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return floatToInt(f)
		}
		return 0, fmt.Errorf("cannot convert string %q to int: %w", s, err)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int", val)
}

// asFloat converts numeric types, parsable strings and booleans to a float64.
func asFloat(val any) (float64, error) {
	if val == nil {
		return 0.0, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0.0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0.0, fmt.Errorf("cannot convert string %q to float64: %w", s, err)
		}
		return f, nil
	case reflect.Bool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64", val)
}

// asBool converts booleans, numbers (non-zero is true) and strings.
// Besides strconv.ParseBool, strings accept yes/no, on/off and y/n.
// Containers are true when not empty.
func asBool(val any) (bool, error) {
	if val == nil {
		return false, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := strings.ToLower(strings.TrimSpace(v.String()))
		switch s {
		case "":
			return false, nil
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off", "null", "none":
			return false, nil
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0, nil
		}
		return false, fmt.Errorf("cannot convert string %q to bool", s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	case reflect.Map, reflect.Slice, reflect.Array:
		return v.Len() > 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool", val)
}

// floatToInt truncates f, failing when the result does not fit an int.
func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || f >= -float64(math.MinInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("cannot convert float %g to int: out of range", f)
	}
	return int(f), nil
}

// isNil reports whether v is nil or holds a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// plain converts any native value into the document tree value set,
// deep-copying containers. Objects and structs become mappings.
func plain(val any) any {
	if isNil(val) {
		return nil
	}
	switch v := val.(type) {
	case string, bool, int, float64:
		return v
	case Object:
		return objectMap(v)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return plain(rv.Elem().Interface())
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, _ := asInt(val)
		return i
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Map:
		if rv.IsNil() {
			return map[string]any{}
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, _ := asString(iter.Key().Interface())
			out[key] = plain(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plain(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		if s, ok := val.(fmt.Stringer); ok {
			return s.String()
		}
		if obj, ok := structOf(val); ok {
			return objectMap(obj)
		}
	}

	return codec.Normalize(val)
}

// objectMap snapshots the attributes of obj into a document mapping.
func objectMap(obj Object) map[string]any {
	out := make(map[string]any)
	for _, name := range attrNames(obj) {
		if value, ok := obj.GetAttr(name); ok {
			out[name] = plain(value)
		}
	}
	return out
}
