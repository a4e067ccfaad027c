// FILE: docsync/attributes.go
package docsync

import (
	"reflect"
	"sync"

	"docsync/internal/codec"
)

// Attr pairs an attribute name with its converter.
type Attr struct {
	Name      string
	Converter Converter
}

// A declares an attribute. A nil converter declares a Generic attribute.
func A(name string, conv Converter) Attr {
	return Attr{Name: name, Converter: conv}
}

// Attributes converts a mapping of named attributes. The schema grows when
// a document carries keys that were not declared; those keys get an
// inferred converter and are kept from then on. Open schemas additionally
// pick up native keys on ToData.
type Attributes struct {
	mu    sync.RWMutex
	names []string
	convs map[string]Converter
	open  bool
}

// NewAttributes creates a closed mapping schema from declared attributes.
// Later declarations of the same name replace earlier converters.
func NewAttributes(attrs ...Attr) *Attributes {
	a := &Attributes{convs: make(map[string]Converter, len(attrs))}
	for _, attr := range attrs {
		a.add(attr.Name, converterOrGeneric(attr.Converter))
	}
	return a
}

// Dictionary declares a nested mapping type, e.g. a list element:
//
//	ListOf(Dictionary(A("status", Boolean), A("label", String)))
func Dictionary(attrs ...Attr) *Attributes {
	return NewAttributes(attrs...)
}

// OpenAttributes creates a schema that also discovers native keys.
// Inferred mappings use open schemas.
func OpenAttributes(attrs ...Attr) *Attributes {
	a := NewAttributes(attrs...)
	a.open = true
	return a
}

// add registers or replaces name. The caller holds the write lock or owns a.
func (a *Attributes) add(name string, conv Converter) {
	if _, exists := a.convs[name]; !exists {
		a.names = append(a.names, name)
	}
	a.convs[name] = conv
}

// Add registers an attribute, replacing the converter of an existing name.
func (a *Attributes) Add(name string, conv Converter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.add(name, converterOrGeneric(conv))
}

// Lookup returns the converter of name.
func (a *Attributes) Lookup(name string) (Converter, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	conv, ok := a.convs[name]
	return conv, ok
}

// Names returns the attribute names in declaration then discovery order.
func (a *Attributes) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.names...)
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.names)
}

// IsOpen reports whether ToData discovers native keys.
func (a *Attributes) IsOpen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.open
}

// Clone returns an independent copy of the schema, nested containers included.
func (a *Attributes) Clone() *Attributes {
	a.mu.RLock()
	defer a.mu.RUnlock()

	clone := &Attributes{
		names: append([]string(nil), a.names...),
		convs: make(map[string]Converter, len(a.convs)),
		open:  a.open,
	}
	for name, conv := range a.convs {
		clone.convs[name] = cloneConverter(conv)
	}
	return clone
}

func (a *Attributes) cloneConverter() Converter {
	return a.Clone()
}

// ToValue converts document data to a map[string]any holding every
// attribute. Missing keys get their converter's default, unknown keys are
// added to the schema in sorted order. Non-mapping data is treated as empty.
func (a *Attributes) ToValue(data any) any {
	doc := asDocumentMap(data)
	names, convs := a.observe(doc)

	out := make(map[string]any, len(names))
	for i, name := range names {
		out[name] = convs[i].ToValue(doc[name])
	}
	return out
}

// ToData converts an Object, a map or a struct to a document mapping over
// the schema's attributes. Absent attributes get their converter's default.
func (a *Attributes) ToData(value any) any {
	obj := objectOf(value)

	var fields map[string]any
	if obj != nil {
		fields = make(map[string]any)
		if a.IsOpen() {
			for _, name := range attrNames(obj) {
				if v, ok := obj.GetAttr(name); ok {
					fields[name] = v
				}
			}
		}
		for _, name := range a.Names() {
			if v, ok := obj.GetAttr(name); ok {
				fields[name] = v
			}
		}
	}

	names, convs := a.observe(fields)

	out := make(map[string]any, len(names))
	for i, name := range names {
		out[name] = convs[i].ToData(fields[name])
	}
	return out
}

// observe records unknown keys of values in the schema and upgrades Generic
// slots that now see a non-nil value. It returns a snapshot of the schema.
func (a *Attributes) observe(values map[string]any) ([]string, []Converter) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, key := range codec.SortedKeys(values) {
		if _, known := a.convs[key]; !known {
			a.add(key, Infer(values[key]))
		}
	}

	names := append([]string(nil), a.names...)
	convs := make([]Converter, len(names))
	for i, name := range names {
		conv := a.convs[name]
		if IsGeneric(conv) && values[name] != nil {
			conv = Infer(values[name])
			a.convs[name] = conv
		}
		convs[i] = conv
	}
	return names, convs
}

// asDocumentMap returns data as a string-keyed mapping, or nil.
func asDocumentMap(data any) map[string]any {
	switch m := data.(type) {
	case nil:
		return nil
	case map[string]any:
		return m
	}
	if reflect.ValueOf(data).Kind() == reflect.Map {
		if m, ok := plain(data).(map[string]any); ok {
			return m
		}
	}
	return nil
}
