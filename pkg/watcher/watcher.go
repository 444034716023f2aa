// Package watcher reports changes to an input file so the player can reload
// it. It uses fsnotify on the file's directory, which survives editors that
// save by rename, and falls back to polling when fsnotify is unavailable.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the polling interval of the fallback mode.
const DefaultPollInterval = time.Second

// Common errors.
var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option { return func(w *Watcher) { w.pollInterval = d } }

// WithForcePoll skips fsnotify.
func WithForcePoll() Option { return func(w *Watcher) { w.forcePoll = true } }

// Watcher monitors one file.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool

	mu        sync.Mutex
	started   bool
	polling   bool
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	done      chan struct{}
	lastMtime time.Time
	lastSize  int64

	changes chan struct{}
	errs    chan error
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:         abs,
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		changes:      make(chan struct{}, 1),
		errs:         make(chan error, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounce)
	return w, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// Changed receives once per debounced burst of changes. Bursts that arrive
// while a signal is pending are merged into it.
func (w *Watcher) Changed() <-chan struct{} { return w.changes }

// Errors receives watch errors such as ErrFileRemoved. Errors are dropped if
// the previous one has not been read.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Polling reports whether the watcher fell back to polling.
func (w *Watcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}

	if info, err := os.Stat(w.path); err == nil {
		w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	} else if !os.IsNotExist(err) {
		return err
	}

	w.done = make(chan struct{})
	w.polling = true
	if !w.forcePoll {
		if fsw, err := fsnotify.NewWatcher(); err == nil {
			if err := fsw.Add(filepath.Dir(w.path)); err == nil {
				w.fsw = fsw
				w.polling = false
			} else {
				fsw.Close()
			}
		}
	}
	if w.polling {
		go w.poll(w.done)
	} else {
		go w.watch(w.fsw, w.done)
	}
	w.started = true
	return nil
}

// Stop stops watching. Channels stay open; pending signals are discarded.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	close(w.done)
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	w.debouncer.Cancel()
	w.started = false
}

func (w *Watcher) watch(fsw *fsnotify.Watcher, done <-chan struct{}) {
	target := filepath.Base(w.path)
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				w.report(ErrFileRemoved)
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				w.debouncer.Trigger(w.notify)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) poll(done <-chan struct{}) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		info, err := os.Stat(w.path)
		w.mu.Lock()
		existed := !w.lastMtime.IsZero()
		changed := err == nil && (!info.ModTime().Equal(w.lastMtime) || info.Size() != w.lastSize)
		switch {
		case err == nil:
			w.lastMtime, w.lastSize = info.ModTime(), info.Size()
		case os.IsNotExist(err):
			w.lastMtime, w.lastSize = time.Time{}, 0
		}
		w.mu.Unlock()

		switch {
		case os.IsNotExist(err):
			if existed {
				w.report(ErrFileRemoved)
			}
		case err != nil:
			w.report(err)
		case changed:
			w.debouncer.Trigger(w.notify)
		}
	}
}

func (w *Watcher) notify() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
