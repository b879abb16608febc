// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// A Watcher bumps tracker revisions as soon as a tracked file changes on
// disk, instead of waiting for the next access to notice the new mtime.
// Only the directories of tracked files are watched.
type Watcher struct {
	tracker *Tracker
	logger  *slog.Logger

	closed chan struct{}
	wg     sync.WaitGroup

	mu          sync.Mutex
	watchedDirs map[string]bool
	watcher     *fsnotify.Watcher
}

// NewWatcher creates a Watcher and starts its event-handling loop.
// [Watcher.Close] should be called to clean up.
func NewWatcher(tracker *Tracker, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		tracker:     tracker,
		logger:      logger,
		watcher:     watcher,
		watchedDirs: make(map[string]bool),
		closed:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch starts watching the directory containing path.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(filepath.Clean(path))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watchedDirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.watchedDirs[dir] = true
	return nil
}

// run is the event-handling loop. Events are handled in order: a file
// deleted and recreated must not be observed in reverse.
func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closed:
			return

		case err, ok := <-w.watcher.Errors:
			if !ok {
				continue
			}
			w.logger.Error("file watcher error", "err", err)

		case event, ok := <-w.watcher.Events:
			if !ok {
				continue
			}
			w.handleEvent(event)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// fsnotify does not guarantee clean filepaths.
	path := filepath.Clean(event.Name)
	if _, tracked := w.tracker.VersionOf(path); !tracked {
		return
	}
	if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
		w.tracker.NoteAccess(path)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.closed:
		return nil
	default:
	}
	close(w.closed)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
