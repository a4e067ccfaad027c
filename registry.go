// FILE: docsync/registry.go
package docsync

import (
	"fmt"
	"runtime"
	"sync"
	"weak"
)

// registry associates bound objects with their mappers. Keys are weak
// pointers, so an entry never keeps its object alive; a cleanup attached
// to the object removes the entry once the object is collected.
var registry = struct {
	mu      sync.RWMutex
	mappers map[any]*Mapper
}{
	mappers: make(map[any]*Mapper),
}

// register binds m to obj, replacing any previous mapper of obj.
func register[T any](obj *T, m *Mapper) {
	key := weak.Make(obj)

	registry.mu.Lock()
	old, rebound := registry.mappers[key]
	registry.mappers[key] = m
	registry.mu.Unlock()

	if rebound {
		if old != m {
			old.StopWatch()
		}
		return
	}
	runtime.AddCleanup(obj, forget, any(key))
}

func forget(key any) {
	registry.mu.Lock()
	m, ok := registry.mappers[key]
	delete(registry.mappers, key)
	registry.mu.Unlock()

	if ok {
		m.StopWatch()
	}
}

// GetMapper returns the mapper bound to obj. The error wraps
// ErrNotRegistered when obj was never bound.
func GetMapper[T any](obj *T) (*Mapper, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: nil object", ErrNotRegistered)
	}

	registry.mu.RLock()
	m, ok := registry.mappers[weak.Make(obj)]
	registry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotRegistered, obj)
	}
	return m, nil
}

// Registered reports whether obj is bound to a file.
func Registered[T any](obj *T) bool {
	_, err := GetMapper(obj)
	return err == nil
}

// registeredCount returns the number of live registry entries.
func registeredCount() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.mappers)
}
