// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fromusage/fromusage/internal/file"
)

// A Source is a file.Source that serves the buffer open in the editor
// from an overlay and every other file from disk, memoizing disk reads by
// modification time.
//
// Every read notes an access on the tracker, so the versions it reports
// follow both disk changes and buffer edits.
type Source struct {
	tracker *Tracker
	logger  *slog.Logger

	mu      sync.Mutex
	overlay *Overlay             // the buffer open for editing, if any
	disk    map[string]*diskFile // last read of each path
}

var _ file.Source = (*Source)(nil)

// NewSource returns a Source recording accesses on tracker.
func NewSource(tracker *Tracker, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		tracker: tracker,
		logger:  logger,
		disk:    make(map[string]*diskFile),
	}
}

// SetOverlay makes content the live buffer for path, replacing any
// previous overlay (there is only ever one file open for editing).
func (s *Source) SetOverlay(path string, content []byte) {
	path = filepath.Clean(path)
	o := &Overlay{
		path:    path,
		content: content,
		hash:    file.HashOf(content),
	}
	if fh, err := s.readDisk(path); err == nil {
		if data, err := fh.Content(); err == nil {
			o.saved = file.HashOf(data) == o.hash
		}
	}
	s.mu.Lock()
	s.overlay = o
	s.mu.Unlock()
	s.tracker.NoteContent(path, o.hash)
}

// ClearOverlay drops the live buffer, if any.
func (s *Source) ClearOverlay() {
	s.mu.Lock()
	s.overlay = nil
	s.mu.Unlock()
}

// ReadFile returns the overlay when path is the buffer open for editing,
// and the disk content otherwise.
func (s *Source) ReadFile(ctx context.Context, path string) (file.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	s.mu.Lock()
	overlay := s.overlay
	s.mu.Unlock()
	if overlay != nil && overlay.path == path {
		return overlay, nil
	}
	return s.readDisk(path)
}

// Snapshot returns the content the oracle should analyze for path.
// Any read failure yields no snapshot.
func (s *Source) Snapshot(ctx context.Context, path string) ([]byte, bool) {
	path = filepath.Clean(path)
	s.tracker.NoteAccess(path)
	fh, err := s.ReadFile(ctx, path)
	if err != nil {
		return nil, false
	}
	content, err := fh.Content()
	if err != nil {
		s.logger.Debug("no snapshot", "path", path, "err", err)
		return nil, false
	}
	s.tracker.observe(path, fh.Identity().Hash)
	return content, true
}

// readDisk stats and (maybe) reads the file.
func (s *Source) readDisk(path string) (*diskFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		// file does not exist
		return &diskFile{path: path, err: err}, nil
	}
	mtime := info.ModTime()

	// Low resolution mtimes make a recent modification unreliable as a
	// cache key, so only memoize files that have been stable for a while.
	recentlyModified := time.Since(mtime) < 2*time.Second

	s.mu.Lock()
	if fh, ok := s.disk[path]; ok && fh.modTime.Equal(mtime) && !recentlyModified {
		s.mu.Unlock()
		return fh, nil
	}
	s.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		content = nil // just in case
	}
	fh := &diskFile{
		path:    path,
		modTime: mtime,
		content: content,
		hash:    file.HashOf(content),
		err:     err,
	}
	s.mu.Lock()
	s.disk[path] = fh
	s.mu.Unlock()
	return fh, nil
}

// An Overlay is the file open in the editor. It may have unsaved edits.
// It implements the file.Handle interface.
type Overlay struct {
	path    string
	content []byte
	hash    file.Hash

	// saved is true if the buffer matches the state on disk.
	saved bool
}

func (o *Overlay) Path() string { return o.path }
func (o *Overlay) Identity() file.Identity {
	return file.Identity{
		Path: o.path,
		Hash: o.hash,
	}
}
func (o *Overlay) Content() ([]byte, error) { return o.content, nil }
func (o *Overlay) SameContentsOnDisk() bool { return o.saved }

// A diskFile is a file in the filesystem, or a failure to read one.
// It implements the file.Handle interface.
type diskFile struct {
	path    string
	modTime time.Time
	content []byte
	hash    file.Hash
	err     error
}

func (h *diskFile) Path() string { return h.path }
func (h *diskFile) Identity() file.Identity {
	return file.Identity{
		Path: h.path,
		Hash: h.hash,
	}
}
func (h *diskFile) SameContentsOnDisk() bool { return true }
func (h *diskFile) Content() ([]byte, error) { return h.content, h.err }
