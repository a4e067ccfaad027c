// FILE: docsync/object.go
package docsync

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"

	"docsync/internal/codec"
)

// Object is the attribute surface a mapper reads and writes. GetAttr and
// SetAttr are raw accessors; they must not call back into the mapper.
type Object interface {
	GetAttr(name string) (any, bool)
	SetAttr(name string, value any)
}

// AttrLister is implemented by objects that can enumerate their attributes.
// Attribute inference and open schemas rely on it.
type AttrLister interface {
	AttrNames() []string
}

func attrNames(obj Object) []string {
	if lister, ok := obj.(AttrLister); ok {
		return lister.AttrNames()
	}
	return nil
}

// objectOf views value as an Object for conversion. It returns nil for
// values that carry no attributes.
func objectOf(value any) Object {
	if isNil(value) {
		return nil
	}
	switch v := value.(type) {
	case Object:
		return v
	case map[string]any:
		return mapObject(v)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map {
		return mapObject(asDocumentMap(value))
	}
	if obj, ok := structOf(value); ok {
		return obj
	}
	return nil
}

// mapObject adapts a plain mapping for conversion.
type mapObject map[string]any

func (m mapObject) GetAttr(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m mapObject) SetAttr(name string, value any) {
	m[name] = value
}

func (m mapObject) AttrNames() []string {
	return codec.SortedKeys(m)
}

// Record is a dynamic attribute bag. Once bound with Sync or Bind, Get and
// Set go through the record's mapper: reads fetch the file first and writes
// store it when the mapper is automatic.
type Record struct {
	mu     sync.RWMutex
	names  []string
	values map[string]any
}

// NewRecord creates a record holding values; attribute order is sorted.
func NewRecord(values map[string]any) *Record {
	r := &Record{values: make(map[string]any, len(values))}
	for _, name := range codec.SortedKeys(values) {
		r.names = append(r.names, name)
		r.values[name] = values[name]
	}
	return r
}

// GetAttr returns the raw value of name without syncing.
func (r *Record) GetAttr(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[name]
	return v, ok
}

// SetAttr stores value under name without syncing, creating the attribute if needed.
func (r *Record) SetAttr(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// AttrNames returns attribute names in creation order.
func (r *Record) AttrNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Has reports whether the record has attribute name.
func (r *Record) Has(name string) bool {
	_, ok := r.GetAttr(name)
	return ok
}

// Map returns a deep copy of all attributes.
func (r *Record) Map() map[string]any {
	return objectMap(r)
}

// Get returns attribute name, fetching the backing file first when the
// record is bound to an automatic mapper.
func (r *Record) Get(name string) (any, error) {
	if m, err := GetMapper(r); err == nil {
		return m.Get(name)
	}
	if v, ok := r.GetAttr(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoAttribute, name)
}

// Set assigns attribute name and marks the bound mapper modified, storing
// the file when it is automatic.
func (r *Record) Set(name string, value any) error {
	if m, err := GetMapper(r); err == nil {
		return m.Set(name, value)
	}
	r.SetAttr(name, value)
	return nil
}

// String retrieves attribute name as a string.
func (r *Record) String(name string) (string, error) {
	val, err := r.Get(name)
	if err != nil {
		return "", err
	}
	s, err := asString(val)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", name, err)
	}
	return s, nil
}

// Int retrieves attribute name as an int, truncating floats.
func (r *Record) Int(name string) (int, error) {
	val, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	i, err := asInt(val)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return i, nil
}

// Float64 retrieves attribute name as a float64.
func (r *Record) Float64(name string) (float64, error) {
	val, err := r.Get(name)
	if err != nil {
		return 0.0, err
	}
	f, err := asFloat(val)
	if err != nil {
		return 0.0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return f, nil
}

// Bool retrieves attribute name as a bool.
func (r *Record) Bool(name string) (bool, error) {
	val, err := r.Get(name)
	if err != nil {
		return false, err
	}
	b, err := asBool(val)
	if err != nil {
		return false, fmt.Errorf("attribute %s: %w", name, err)
	}
	return b, nil
}

// structLayout describes how the fields of a struct type map to attributes.
type structLayout struct {
	names  []string
	index  map[string]int
	inline int // index of the `yaml:",inline"` map[string]any field, or -1
}

var layouts sync.Map // reflect.Type -> *structLayout

func layoutOf(t reflect.Type) *structLayout {
	if cached, ok := layouts.Load(t); ok {
		return cached.(*structLayout)
	}

	layout := &structLayout{index: make(map[string]int), inline: -1}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, inline, skip := fieldName(field)
		if skip {
			continue
		}
		if inline {
			if field.Type.Kind() == reflect.Map && field.Type.Key().Kind() == reflect.String && layout.inline < 0 {
				layout.inline = i
			}
			continue
		}
		if _, dup := layout.index[name]; dup {
			continue
		}
		layout.names = append(layout.names, name)
		layout.index[name] = i
	}

	actual, _ := layouts.LoadOrStore(t, layout)
	return actual.(*structLayout)
}

// fieldName resolves the attribute name of a struct field from its yaml
// tag, defaulting to the lowercased field name.
func fieldName(field reflect.StructField) (name string, inline, skip bool) {
	tag := field.Tag.Get("yaml")
	if tag == "-" {
		return "", false, true
	}

	name = strings.ToLower(field.Name)
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			name = parts[0]
		}
		for _, opt := range parts[1:] {
			if opt == "inline" {
				return name, true, false
			}
		}
	}
	return name, false, false
}

// structObject adapts a struct value. Keys without a field go to the
// struct's inline map when it has one, otherwise to extras.
type structObject struct {
	v      reflect.Value
	layout *structLayout
	extras map[string]any
	logger *slog.Logger
}

// structOf adapts a struct or a non-nil struct pointer. Struct values are
// copied and therefore read-only for the caller.
func structOf(value any) (*structObject, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	if !rv.CanAddr() {
		copied := reflect.New(rv.Type()).Elem()
		copied.Set(rv)
		rv = copied
	}
	return newStructObject(rv, nil), true
}

func newStructObject(v reflect.Value, extras map[string]any) *structObject {
	return &structObject{v: v, layout: layoutOf(v.Type()), extras: extras}
}

func (s *structObject) GetAttr(name string) (any, bool) {
	if i, ok := s.layout.index[name]; ok {
		return s.v.Field(i).Interface(), true
	}
	if s.layout.inline >= 0 {
		inline := s.v.Field(s.layout.inline)
		key := reflect.ValueOf(name).Convert(inline.Type().Key())
		if value := inline.MapIndex(key); value.IsValid() {
			return value.Interface(), true
		}
		return nil, false
	}
	v, ok := s.extras[name]
	return v, ok
}

func (s *structObject) SetAttr(name string, value any) {
	if i, ok := s.layout.index[name]; ok {
		if err := decodeInto(s.v.Field(i), value); err != nil {
			s.decodeFailed(name, err)
		}
		return
	}
	if s.layout.inline >= 0 {
		inline := s.v.Field(s.layout.inline)
		if inline.IsNil() {
			inline.Set(reflect.MakeMap(inline.Type()))
		}
		// a failed decode stores the zero value, as for fields
		elem := reflect.New(inline.Type().Elem()).Elem()
		if err := decodeInto(elem, value); err != nil {
			s.decodeFailed(name, err)
		}
		inline.SetMapIndex(reflect.ValueOf(name).Convert(inline.Type().Key()), elem)
		return
	}
	if s.extras != nil {
		s.extras[name] = value
	}
}

func (s *structObject) decodeFailed(name string, err error) {
	if s.logger != nil {
		s.logger.Warn("object.decode_failed", "attr", name, "error", err)
	}
}

func (s *structObject) AttrNames() []string {
	names := append([]string(nil), s.layout.names...)

	var more []string
	if s.layout.inline >= 0 {
		for _, key := range s.v.Field(s.layout.inline).MapKeys() {
			more = append(more, key.String())
		}
	} else {
		for key := range s.extras {
			more = append(more, key)
		}
	}
	sort.Strings(more)
	return append(names, more...)
}
