// FILE: docsync/mapper.go
package docsync

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"docsync/internal/codec"
	"docsync/internal/fileio"
)

// State is the sync state of a mapper relative to its file.
type State int

const (
	// StateNeverStored: the mapper has neither read nor written its file.
	StateNeverStored State = iota
	// StateClean: the object and the file agree.
	StateClean
	// StateModified: the object has writes that are not in the file.
	StateModified
	// StateStale: the file changed since it was last read or written.
	StateStale
)

func (s State) String() string {
	switch s {
	case StateNeverStored:
		return "never-stored"
	case StateClean:
		return "clean"
	case StateModified:
		return "modified"
	case StateStale:
		return "stale"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseErrorHandler receives documents that failed to decode during a fetch.
type ParseErrorHandler func(path string, err error)

// Mapper keeps one object and one file in sync. The object is observed
// through a weak reference; the mapper never keeps it alive.
type Mapper struct {
	mu           sync.Mutex
	ref          func() Object
	path         string
	attrs        *Attributes
	codec        codec.Codec
	auto         bool
	modified     bool
	stamp        fileio.Stamp
	lastText     string
	logger       *slog.Logger
	onParseError ParseErrorHandler
	fetches      singleflight.Group
	watcher      *watcher
}

type mapperOptions struct {
	format       codec.Format
	auto         bool
	logger       *slog.Logger
	onParseError ParseErrorHandler
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newMapper(ref func() Object, path string, attrs *Attributes, opts mapperOptions) *Mapper {
	logger := opts.logger
	if logger == nil {
		logger = discardLogger()
	}
	return &Mapper{
		ref:          ref,
		path:         path,
		attrs:        attrs,
		codec:        codec.For(opts.format, path),
		auto:         opts.auto,
		logger:       logger.With("path", path),
		onParseError: opts.onParseError,
	}
}

// Path returns the file path, fixed at bind time.
func (m *Mapper) Path() string {
	return m.path
}

// Attrs returns the root schema. It grows as undeclared keys are discovered.
func (m *Mapper) Attrs() *Attributes {
	return m.attrs
}

// Format returns the document format of the file.
func (m *Mapper) Format() codec.Format {
	return m.codec.Format()
}

// Auto reports whether reads fetch and writes store immediately.
func (m *Mapper) Auto() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.auto
}

// SetAuto switches automatic syncing. Pending writes are kept and stored
// by the next write or an explicit Store.
func (m *Mapper) SetAuto(auto bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auto = auto
}

// Modified reports whether the object has writes that are not stored.
func (m *Mapper) Modified() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modified
}

// Exists reports whether the file is currently present.
func (m *Mapper) Exists() bool {
	return fileio.Exists(m.path)
}

// State compares the mapper's bookkeeping with the file on disk.
func (m *Mapper) State() State {
	m.mu.Lock()
	modified, stamp := m.modified, m.stamp
	m.mu.Unlock()

	if modified {
		return StateModified
	}

	current, exists, err := fileio.Stat(m.path)
	switch {
	case err != nil:
		return StateStale
	case stamp.IsZero() && !exists:
		return StateNeverStored
	case !exists || !current.Equal(stamp):
		return StateStale
	default:
		return StateClean
	}
}

// object resolves the weak reference.
func (m *Mapper) object() (Object, error) {
	obj := m.ref()
	if obj == nil {
		return nil, fmt.Errorf("%w: %s", ErrObjectReleased, m.path)
	}
	return obj, nil
}

// Get returns attribute name, fetching first when automatic.
func (m *Mapper) Get(name string) (any, error) {
	if m.Auto() {
		if err := m.Fetch(); err != nil {
			return nil, err
		}
	}

	obj, err := m.object()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	value, ok := obj.GetAttr(name)
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAttribute, name)
	}
	return value, nil
}

// Set assigns attribute name and marks the mapper modified. When automatic
// the file is stored immediately.
func (m *Mapper) Set(name string, value any) error {
	obj, err := m.object()
	if err != nil {
		return err
	}

	m.mu.Lock()
	obj.SetAttr(name, value)
	m.modified = true
	auto := m.auto
	m.mu.Unlock()

	if !auto {
		return nil
	}
	return m.Store()
}

// MarkModified records a write made directly on the object, e.g. a struct
// field assignment, and stores when automatic.
func (m *Mapper) MarkModified() error {
	m.mu.Lock()
	m.modified = true
	auto := m.auto
	m.mu.Unlock()

	if !auto {
		return nil
	}
	return m.Store()
}

// Fetch reads the file into the object. It does nothing when the file is
// missing or its modification time and size are unchanged. A document that
// fails to decode is treated as empty. Concurrent calls share one read.
func (m *Mapper) Fetch() error {
	return m.fetch(false)
}

// Reload is Fetch without the modification time check.
func (m *Mapper) Reload() error {
	return m.fetch(true)
}

func (m *Mapper) fetch(force bool) error {
	key := "fetch"
	if force {
		key = "reload"
	}
	_, err, _ := m.fetches.Do(key, func() (any, error) {
		return nil, m.doFetch(force)
	})
	return err
}

func (m *Mapper) doFetch(force bool) error {
	obj, err := m.object()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists, err := fileio.Stat(m.path)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", m.path, err)
	}
	if !exists {
		return nil
	}
	if !force && current.Equal(m.stamp) {
		return nil
	}

	data, stamp, err := fileio.Read(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to fetch %s: %w", m.path, err)
	}

	tree, err := m.codec.Decode(data)
	if err != nil {
		m.logger.Warn("mapper.decode_failed", "error", err)
		if m.onParseError != nil {
			m.onParseError(m.path, err)
		}
		tree = nil
	}

	values, _ := m.attrs.ToValue(tree).(map[string]any)
	names := m.attrs.Names()
	for _, name := range names {
		obj.SetAttr(name, values[name])
	}

	m.stamp = stamp
	m.lastText = string(data)
	m.modified = false

	m.logger.Debug("mapper.fetch", "attrs", len(names), "forced", force)
	return nil
}

// Store writes the object to the file, creating parent directories. The
// write is skipped when the encoded text equals the file's known content.
func (m *Mapper) Store() error {
	obj, err := m.object()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.render(obj)
	if err != nil {
		return err
	}
	text := string(data)

	current, exists, err := fileio.Stat(m.path)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", m.path, err)
	}
	if exists && text == m.lastText && current.Equal(m.stamp) {
		m.modified = false
		m.logger.Debug("mapper.store.skipped")
		return nil
	}

	stamp, err := fileio.WriteAtomic(m.path, data)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", m.path, err)
	}

	m.stamp = stamp
	m.lastText = text
	m.modified = false

	m.logger.Debug("mapper.store", "bytes", len(data))
	return nil
}

// Render encodes the object without touching the file.
func (m *Mapper) Render() ([]byte, error) {
	obj, err := m.object()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.render(obj)
}

func (m *Mapper) render(obj Object) ([]byte, error) {
	data, err := m.codec.Encode(m.attrs.ToData(obj))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", m.path, err)
	}
	return data, nil
}

// Text returns the file content, storing pending writes first when
// automatic. A missing file reads as the empty string.
func (m *Mapper) Text() (string, error) {
	m.mu.Lock()
	pending := m.auto && m.modified
	m.mu.Unlock()

	if pending {
		if err := m.Store(); err != nil {
			return "", err
		}
	}

	data, _, err := fileio.Read(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", m.path, err)
	}
	return string(data), nil
}

// SetText writes text to the file verbatim and reloads the object from it.
func (m *Mapper) SetText(text string) error {
	m.mu.Lock()
	_, err := fileio.WriteAtomic(m.path, []byte(text))
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}
	return m.Reload()
}

// values snapshots the current attribute values.
func (m *Mapper) values() (map[string]any, error) {
	obj, err := m.object()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]any)
	for _, name := range m.attrs.Names() {
		if value, ok := obj.GetAttr(name); ok {
			snapshot[name] = plain(value)
		}
	}
	return snapshot, nil
}
