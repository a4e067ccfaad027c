// FILE: docsync/builder.go
package docsync

import (
	"fmt"
	"log/slog"
	"reflect"
	"weak"

	"docsync/internal/codec"
)

// Format names a document syntax. The auto format detects it from the
// file extension: .json is JSON, .toml is TOML and anything else is YAML.
type Format = codec.Format

const (
	FormatAuto = codec.FormatAuto
	FormatYAML = codec.FormatYAML
	FormatJSON = codec.FormatJSON
	FormatTOML = codec.FormatTOML
)

// Builder declares how objects are bound to files. One builder can bind
// any number of objects; each gets its own copy of the schema and its
// own path expanded from the template.
type Builder struct {
	path         string
	attrs        []Attr
	auto         bool
	format       Format
	logger       *slog.Logger
	onParseError ParseErrorHandler
	err          error
}

// NewBuilder creates a builder with automatic syncing enabled.
func NewBuilder() *Builder {
	return &Builder{auto: true}
}

// WithPath sets the path template, e.g. "data/{category}/{name}.yml".
func (b *Builder) WithPath(template string) *Builder {
	b.path = template
	return b
}

// WithAttrs declares the mapped attributes. Without declarations the
// attributes are inferred from the object when it is bound.
func (b *Builder) WithAttrs(attrs ...Attr) *Builder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// WithAuto sets whether reads fetch and writes store immediately.
func (b *Builder) WithAuto(auto bool) *Builder {
	b.auto = auto
	return b
}

// WithFormat forces the document format instead of detecting it.
func (b *Builder) WithFormat(format Format) *Builder {
	f, err := codec.ParseFormat(string(format))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	b.format = f
	return b
}

// WithLogger sets the logger of bound mappers. Mappers are silent by default.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithParseErrorHandler registers fn to be told about documents that fail
// to decode. The fetch itself still succeeds with an empty document.
func (b *Builder) WithParseErrorHandler(fn ParseErrorHandler) *Builder {
	b.onParseError = fn
	return b
}

// schema builds the root attributes for obj.
func (b *Builder) schema(obj Object) *Attributes {
	if len(b.attrs) == 0 {
		return inferAttrs(obj)
	}
	attrs := NewAttributes()
	for _, attr := range b.attrs {
		attrs.Add(attr.Name, cloneConverter(attr.Converter))
	}
	return attrs
}

// Bind binds obj to the file named by the builder's path template and
// registers its mapper. obj must be a *Record, another Object
// implementation or a pointer to a struct. An existing file is fetched
// into obj; otherwise declared attributes are set to their normalized
// values and the file is created by the first store.
func Bind[T any](b *Builder, obj *T) (*T, error) {
	if b.err != nil {
		return nil, b.err
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: nil object", ErrInvalidTarget)
	}
	if b.path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidTarget)
	}

	extras := make(map[string]any)
	target, err := asBindable(obj, extras, nil)
	if err != nil {
		return nil, err
	}

	path, err := ExpandPath(b.path, target)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %q: %w", b.path, err)
	}

	m := newMapper(nil, path, b.schema(target), mapperOptions{
		format:       b.format,
		auto:         b.auto,
		logger:       b.logger,
		onParseError: b.onParseError,
	})
	m.ref = weakObject(weak.Make(obj), extras, m.logger)

	if m.Exists() {
		if err := m.Fetch(); err != nil {
			return nil, err
		}
	} else if err := m.normalize(); err != nil {
		return nil, err
	}

	register(obj, m)
	m.logger.Debug("mapper.bind", "auto", b.auto, "attrs", m.attrs.Len())
	return obj, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *Builder, obj *T) *T {
	bound, err := Bind(b, obj)
	if err != nil {
		panic(fmt.Sprintf("docsync bind failed: %v", err))
	}
	return bound
}

// Sync binds obj to path. Nil attrs are inferred from obj.
func Sync[T any](obj *T, path string, attrs []Attr, auto bool) (*T, error) {
	return Bind(NewBuilder().WithPath(path).WithAttrs(attrs...).WithAuto(auto), obj)
}

// asBindable views a bound pointer as an Object. Struct fields that fail
// to decode are reported to logger.
func asBindable(ptr any, extras map[string]any, logger *slog.Logger) (Object, error) {
	if obj, ok := ptr.(Object); ok {
		return obj, nil
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		obj := newStructObject(rv.Elem(), extras)
		obj.logger = logger
		return obj, nil
	}
	return nil, fmt.Errorf("%w: %T is neither an Object nor a struct pointer", ErrInvalidTarget, ptr)
}

// weakObject resolves wp on every call, so the mapper never holds the object.
func weakObject[T any](wp weak.Pointer[T], extras map[string]any, logger *slog.Logger) func() Object {
	return func() Object {
		ptr := wp.Value()
		if ptr == nil {
			return nil
		}
		obj, err := asBindable(ptr, extras, logger)
		if err != nil {
			return nil
		}
		return obj
	}
}

// normalize replaces declared attribute values by their converted form,
// creating missing attributes with defaults.
func (m *Mapper) normalize() error {
	obj, err := m.object()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	values, _ := m.attrs.ToValue(m.attrs.ToData(obj)).(map[string]any)
	for _, name := range m.attrs.Names() {
		obj.SetAttr(name, values[name])
	}
	return nil
}
