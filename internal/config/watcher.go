package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file when it changes on disk and
// publishes the result through a Notifier. Editors that write via
// rename-and-replace emit bursts of events, so reloads are debounced.
type Watcher struct {
	mu sync.Mutex

	path     string
	fsw      *fsnotify.Watcher
	notifier *Notifier
	debounce time.Duration
	timer    *time.Timer

	closed bool
	done   chan struct{}

	// Errors receives watch and reload failures. Buffered; overflow is
	// dropped.
	Errors chan error
}

// defaultDebounce collapses event bursts from a single save.
const defaultDebounce = 100 * time.Millisecond

// NewWatcher watches path and publishes reloaded settings to notifier.
// The parent directory is watched rather than the file itself so
// rename-and-replace saves keep working.
func NewWatcher(path string, notifier *Notifier) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		notifier: notifier,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
		Errors:   make(chan error, 8),
	}
	go w.run()
	return w, nil
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	w.notifier.Publish(cfg)
}

func (w *Watcher) reportError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
