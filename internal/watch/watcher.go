// Package watch signals when the directory being browsed changes on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/fxplorer/internal/logger"
)

// DefaultDebounceDelay coalesces bursts of events (an unpacking archive, a
// build writing many files) into one refresh.
const DefaultDebounceDelay = 150 * time.Millisecond

// DirWatcher watches one directory at a time, non-recursively.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
	logger  logger.Logger

	mu            sync.Mutex
	dir           string
	debounceDelay time.Duration
	pending       *time.Timer
	closed        bool
}

// New starts a watcher with nothing watched yet.
func New(log logger.Logger, debounce time.Duration) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}
	dw := &DirWatcher{
		watcher:       w,
		changes:       make(chan struct{}, 1),
		done:          make(chan struct{}),
		logger:        logger.OrNop(log),
		debounceDelay: debounce,
	}
	go dw.processEvents()
	return dw, nil
}

// Changes delivers at most one pending signal; a receive means "re-read the
// directory", not which entry changed.
func (dw *DirWatcher) Changes() <-chan struct{} {
	return dw.changes
}

// Dir is the directory currently watched.
func (dw *DirWatcher) Dir() string {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.dir
}

// Watch replaces the watched directory with dir. Watching the same
// directory again is a no-op.
func (dw *DirWatcher) Watch(dir string) error {
	dir = filepath.Clean(dir)

	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.closed || dir == dw.dir {
		return nil
	}
	if dw.dir != "" {
		if err := dw.watcher.Remove(dw.dir); err != nil {
			dw.logger.Debugf("watch: remove %s: %v", dw.dir, err)
		}
	}
	dw.dir = ""
	if err := dw.watcher.Add(dir); err != nil {
		return err
	}
	dw.dir = dir
	dw.logger.Debugf("watch: %s", dir)
	return nil
}

// Close stops the watcher. It is safe to call more than once.
func (dw *DirWatcher) Close() error {
	dw.mu.Lock()
	if dw.closed {
		dw.mu.Unlock()
		return nil
	}
	dw.closed = true
	if dw.pending != nil {
		dw.pending.Stop()
	}
	dw.mu.Unlock()

	close(dw.done)
	return dw.watcher.Close()
}

func (dw *DirWatcher) processEvents() {
	for {
		select {
		case <-dw.done:
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			dw.schedule()
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warnf("watch: %v", err)
		}
	}
}

func (dw *DirWatcher) schedule() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.closed {
		return
	}
	if dw.pending != nil {
		dw.pending.Stop()
	}
	dw.pending = time.AfterFunc(dw.debounceDelay, dw.notify)
}

func (dw *DirWatcher) notify() {
	select {
	case dw.changes <- struct{}{}:
	default:
	}
}
