// FILE: docsync/watch.go
package docsync

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"docsync/internal/fileio"
)

// Watch notifications other than attribute names.
const (
	EventFileDeleted   = "file_deleted"
	EventReloadTimeout = "reload_timeout"
	EventReloadError   = "reload_error:" // followed by the error text
)

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to avoid rapid reloads
	Debounce time.Duration

	// MaxWatchers limits concurrent watch channels
	MaxWatchers int

	// ReloadTimeout for file reload operations
	ReloadTimeout time.Duration
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:  DefaultPollInterval,
		Debounce:      DefaultDebounce,
		MaxWatchers:   DefaultMaxWatchers,
		ReloadTimeout: DefaultReloadTimeout,
	}
}

// watcher polls one mapper's file and reloads it on change
type watcher struct {
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	opts             WatchOptions
	lastStamp        fileio.Stamp
	deleted          bool
	watching         atomic.Bool
	reloadInProgress atomic.Bool
	subscribers      map[int64]chan string
	subscriberID     atomic.Int64
	debounceTimer    *time.Timer
}

// Watch starts polling the file, if not already running, and returns a
// channel receiving the names of attributes whose values changed through
// an external edit. The channel is closed when ctx is done or the watch
// is stopped. Watching is optional; reads of an automatic mapper fetch
// changes anyway.
func (m *Mapper) Watch(ctx context.Context, opts WatchOptions) (<-chan string, error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = DefaultReloadTimeout
	}

	if _, err := m.object(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	w := m.watcher
	if w == nil {
		wctx, cancel := context.WithCancel(context.Background())
		w = &watcher{
			ctx:         wctx,
			cancel:      cancel,
			opts:        opts,
			subscribers: make(map[int64]chan string),
		}
		if stamp, exists, err := fileio.Stat(m.path); err == nil && exists {
			w.lastStamp = stamp
		}
		m.watcher = w
		w.watching.Store(true)
		go w.watchLoop(m)
	}
	m.mu.Unlock()

	return w.subscribe(ctx)
}

// StopWatch stops the watcher and closes all watch channels.
func (m *Mapper) StopWatch() {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w != nil {
		w.stop()
	}
}

// IsWatching returns true if the file is being polled
func (m *Mapper) IsWatching() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watcher != nil && m.watcher.watching.Load()
}

// WatcherCount returns the number of active watch channels
func (m *Mapper) WatcherCount() int {
	m.mu.Lock()
	w := m.watcher
	m.mu.Unlock()

	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subscribers)
}

// watchLoop is the main file watching loop
func (w *watcher) watchLoop(m *Mapper) {
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkAndReload(m)
		}
	}
}

// checkAndReload checks if the file changed and schedules a reload
func (w *watcher) checkAndReload(m *Mapper) {
	stamp, exists, err := fileio.Stat(m.path)
	if err != nil {
		return
	}
	if !exists {
		if !w.deleted {
			w.deleted = true
			w.lastStamp = fileio.Stamp{}
			w.notify(EventFileDeleted)
		}
		return
	}
	w.deleted = false

	if stamp.Equal(w.lastStamp) {
		return
	}
	w.lastStamp = stamp

	// The mapper's own writes are already reflected in the object
	m.mu.Lock()
	own := stamp.Equal(m.stamp)
	m.mu.Unlock()
	if own {
		return
	}

	// Debounce rapid changes
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
		w.performReload(m)
	})
	w.mu.Unlock()
}

// performReload fetches the file and notifies changed attribute names
func (w *watcher) performReload(m *Mapper) {
	// Prevent concurrent reloads
	if !w.reloadInProgress.CompareAndSwap(false, true) {
		return
	}
	defer w.reloadInProgress.Store(false)

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.ReloadTimeout)
	defer cancel()

	oldValues, err := m.values()
	if err != nil {
		w.notify(EventReloadError + err.Error())
		return
	}

	done := make(chan error, 1)
	go func() {
		done <- m.Fetch()
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Warn("watch.reload", "error", err)
			w.notify(fmt.Sprintf("%s%v", EventReloadError, err))
			return
		}

		newValues, err := m.values()
		if err != nil {
			w.notify(EventReloadError + err.Error())
			return
		}

		changed := 0
		for _, name := range m.attrs.Names() {
			oldVal, existed := oldValues[name]
			newVal, exists := newValues[name]
			if existed != exists || !reflect.DeepEqual(oldVal, newVal) {
				changed++
				w.notify(name)
			}
		}
		m.logger.Debug("watch.reload", "changed", changed)

	case <-ctx.Done():
		w.notify(EventReloadTimeout)
	}
}

// subscribe creates a new watch channel closed when ctx is done
func (w *watcher) subscribe(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx.Err() != nil {
		return nil, fmt.Errorf("watcher stopped")
	}
	if len(w.subscribers) >= w.opts.MaxWatchers {
		return nil, fmt.Errorf("too many watchers: limit is %d", w.opts.MaxWatchers)
	}

	ch := make(chan string, watchBufferSize)
	id := w.subscriberID.Add(1)
	w.subscribers[id] = ch

	go func() {
		select {
		case <-ctx.Done():
		case <-w.ctx.Done():
		}
		w.mu.Lock()
		delete(w.subscribers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch, nil
}

// notify sends a change notification to all subscribers, dropping it for
// subscribers whose buffer is full
func (w *watcher) notify(event string) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// stop terminates the watcher
func (w *watcher) stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	// Wait for watch loop to exit with timeout
	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}
