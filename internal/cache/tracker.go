// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fromusage/fromusage/internal/file"
)

// A Revision is the tracked state of one file: a version counter that
// increases whenever the file's content changes, and the last modification
// time observed for it.
type Revision struct {
	Version int
	ModTime time.Time
}

type record struct {
	Revision
	hash    file.Hash // last overlay content seen, if hashed
	hashed  bool
	overlay bool
}

// A Tracker maps file paths to revisions. The language server uses the
// versions to decide when a document must be re-synchronized.
//
// Records are created lazily on first access and are never removed
// except by Close. Versions never decrease.
type Tracker struct {
	logger *slog.Logger

	// onTrack, if set, is called (without the lock held) the first time
	// a path is recorded.
	onTrack func(path string)

	mu    sync.Mutex
	revs  map[string]*record
	files []string // tracked paths, in first-access order
}

// NewTracker returns an empty tracker. A nil logger means slog.Default().
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		logger: logger,
		revs:   make(map[string]*record),
	}
}

// NoteAccess records an access to path. The first access records version
// 0 and the file's modification time; later accesses bump the version if
// the file was modified since.
//
// If the file cannot be stat'ed, NoteAccess does nothing: the path stays
// untracked until a later access succeeds.
func (t *Tracker) NoteAccess(path string) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		t.logger.Debug("untracked file", "path", path, "err", err)
		return
	}
	mtime := info.ModTime()

	t.mu.Lock()
	rec, ok := t.revs[path]
	if !ok {
		t.add(path, &record{Revision: Revision{ModTime: mtime}})
		t.mu.Unlock()
		t.tracked(path)
		return
	}
	if mtime.After(rec.ModTime) {
		rec.Version++
		rec.ModTime = mtime
		t.logger.Debug("file modified on disk", "path", path, "version", rec.Version)
	}
	t.mu.Unlock()
}

// NoteContent records the content hash of a live editor buffer for path.
// The version is bumped whenever the hash differs from the last one seen.
// Unlike NoteAccess, a buffer that does not exist on disk is still tracked.
func (t *Tracker) NoteContent(path string, hash file.Hash) {
	path = filepath.Clean(path)

	t.mu.Lock()
	rec, ok := t.revs[path]
	if !ok {
		rec = &record{}
		if info, err := os.Stat(path); err == nil {
			rec.ModTime = info.ModTime()
		}
		rec.hash, rec.hashed, rec.overlay = hash, true, true
		t.add(path, rec)
		t.mu.Unlock()
		t.tracked(path)
		return
	}
	if rec.hashed && rec.hash != hash {
		rec.Version++
		t.logger.Debug("buffer edited", "path", path, "version", rec.Version)
	}
	rec.hash, rec.hashed, rec.overlay = hash, true, true
	t.mu.Unlock()
}

// observe records the hash of content served for path, so that a
// later buffer edit is compared against it. It never changes the
// version.
func (t *Tracker) observe(path string, hash file.Hash) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec, ok := t.revs[filepath.Clean(path)]; ok {
		rec.hash, rec.hashed = hash, true
	}
}

// add records a new path. Precondition: t.mu is held.
func (t *Tracker) add(path string, rec *record) {
	t.revs[path] = rec
	t.files = append(t.files, path)
	t.logger.Debug("tracking file", "path", path)
}

func (t *Tracker) tracked(path string) {
	if t.onTrack != nil {
		t.onTrack(path)
	}
}

// VersionOf returns the current version of path, and whether the path is
// tracked at all.
func (t *Tracker) VersionOf(path string) (int, bool) {
	rev, ok := t.Revision(path)
	return rev.Version, ok
}

// Revision returns the revision record of path.
func (t *Tracker) Revision(path string) (Revision, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.revs[filepath.Clean(path)]
	if !ok {
		return Revision{}, false
	}
	return rec.Revision, true
}

// Files returns the tracked paths in the order they were first accessed.
func (t *Tracker) Files() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	files := make([]string, len(t.files))
	copy(files, t.files)
	return files
}

// Close forgets every record.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revs = make(map[string]*record)
	t.files = nil
}
