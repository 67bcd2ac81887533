package store

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

var errWatcherStopped = errors.New("watcher already stopped")

// FileWatcher watches a FileStore's file and reloads it when another writer
// changes it. Subscribers of the store receive the resulting change events.
// A stopped watcher cannot be restarted.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	store   *FileStore
	logger  *slog.Logger
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
	running bool
}

// NewFileWatcher creates a new file watcher for the store's file.
func NewFileWatcher(store *FileStore, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher: watcher,
		store:   store,
		logger:  logger,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	select {
	case <-fw.done:
		fw.mu.Unlock()
		return errWatcherStopped
	default:
	}
	fw.running = true
	fw.mu.Unlock()

	// Watch the directory: writes replace the file via rename
	dir := filepath.Dir(fw.store.Path())
	if err := fw.watcher.Add(dir); err != nil {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		return err
	}

	go fw.watch()
	return nil
}

// watch is the main watch loop.
func (fw *FileWatcher) watch() {
	defer close(fw.stopped)
	filename := filepath.Base(fw.store.Path())

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				fw.logger.Debug("storage file changed, reloading", "file", event.Name, "op", event.Op.String())
				if _, err := fw.store.Reload(); err != nil {
					fw.logger.Warn("failed to reload storage", "error", err)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

// Stop stops the file watcher and waits for the loop to exit. Stopping a
// watcher that never started releases its resources.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	select {
	case <-fw.done:
		return nil
	default:
	}

	close(fw.done)
	err := fw.watcher.Close()
	if fw.running {
		fw.running = false
		<-fw.stopped
	}
	return err
}
