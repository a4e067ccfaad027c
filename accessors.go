// FILE: docsync/accessors.go
package docsync

import "reflect"

// Get reads attribute name of a bound object, fetching the file first when
// its mapper is automatic.
func Get[T any](obj *T, name string) (any, error) {
	m, err := GetMapper(obj)
	if err != nil {
		return nil, err
	}
	return m.Get(name)
}

// GetAs reads attribute name of a bound object converted to V.
func GetAs[V, T any](obj *T, name string) (V, error) {
	var out V
	value, err := Get(obj, name)
	if err != nil {
		return out, err
	}
	if err := decodeInto(reflect.ValueOf(&out).Elem(), value); err != nil {
		return out, err
	}
	return out, nil
}

// Set writes attribute name of a bound object, storing the file when its
// mapper is automatic.
func Set[T any](obj *T, name string, value any) error {
	m, err := GetMapper(obj)
	if err != nil {
		return err
	}
	return m.Set(name, value)
}

// Modify runs fn on a bound object and then records the change, storing
// the file when its mapper is automatic. Use it for direct field writes
// on struct objects.
func Modify[T any](obj *T, fn func(*T)) error {
	m, err := GetMapper(obj)
	if err != nil {
		return err
	}
	fn(obj)
	return m.MarkModified()
}

// Load fetches the file of a bound object.
func Load[T any](obj *T) error {
	m, err := GetMapper(obj)
	if err != nil {
		return err
	}
	return m.Fetch()
}

// Save stores a bound object to its file.
func Save[T any](obj *T) error {
	m, err := GetMapper(obj)
	if err != nil {
		return err
	}
	return m.Store()
}
