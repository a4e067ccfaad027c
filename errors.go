// FILE: docsync/errors.go
package docsync

import "errors"

var (
	// ErrNotRegistered is returned when a mapper is requested for an object
	// that was never bound to a file.
	ErrNotRegistered = errors.New("object is not registered for sync")

	// ErrObjectReleased is returned by a mapper whose object has been
	// garbage collected.
	ErrObjectReleased = errors.New("mapped object has been released")

	// ErrInvalidTarget is returned when an object cannot be bound.
	ErrInvalidTarget = errors.New("invalid sync target")

	// ErrNoAttribute is returned when reading an attribute the object does not have.
	ErrNoAttribute = errors.New("attribute not found")
)
