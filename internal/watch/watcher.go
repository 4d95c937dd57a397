// Package watch reports changes to the directory being browsed so the
// listing can be refreshed.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"rime/internal/errors"
	"rime/internal/log"

	"github.com/fsnotify/fsnotify"
)

// listingOps are the operations that can change a directory listing.
const listingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Change says that the watched directory's contents changed.
type Change struct {
	Dir       string
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher follows a single directory using fsnotify. Changes are coalesced:
// while one is pending, further changes are dropped, since a single relist
// covers them all. Errors are coalesced the same way.
type Watcher struct {
	changes  chan Change
	errs     chan error
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	dir     string
	running bool
	stopped bool
}

// New creates a watcher that follows nothing yet.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		changes:   make(chan Change, 1),
		errs:      make(chan error, 1),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Follow makes dir the only watched directory. On failure the previous
// directory stays watched.
func (w *Watcher) Follow(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.FromOS("watch", dir, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir == dir {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir), log.F("error", err)).Debug("failed to unwatch directory")
		}
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Dir returns the directory currently followed.
func (w *Watcher) Dir() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes delivers change notifications. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors delivers failures reported by fsnotify. It is closed by Stop.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start begins forwarding events.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}
	if w.stopped {
		return errors.New("watcher stopped")
	}
	w.running = true

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&listingOps == 0 {
				continue
			}
			dir := w.Dir()
			if filepath.Dir(event.Name) != dir {
				continue
			}

			change := Change{Dir: dir, Path: event.Name, Op: event.Op, Timestamp: time.Now()}
			select {
			case w.changes <- change:
			default:
				// a change is already pending
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Warn("fsnotify watcher error")
			select {
			case w.errs <- errors.Wrap(err, "watch"):
			default:
			}

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and closes the Changes and Errors channels. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	if wasRunning {
		close(w.stopChan)
	}
	w.mutex.Unlock()

	if wasRunning {
		<-w.done
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("error closing fsnotify watcher")
	}
	close(w.changes)
	close(w.errs)
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
