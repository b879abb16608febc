// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache holds the process-wide state shared across synthesis
// requests: file revisions, the live editor buffer, and parsed trees.
package cache

import (
	"log/slog"

	"github.com/fromusage/fromusage/internal/settings"
)

// A Session owns the tracker and everything layered on it. It lives for
// the lifetime of the host and is torn down by Close.
type Session struct {
	Tracker *Tracker
	Source  *Source
	Trees   *Trees

	logger  *slog.Logger
	watcher *Watcher
}

// NewSession creates a session configured by opts.
func NewSession(opts *settings.Options, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tracker := NewTracker(logger)
	source := NewSource(tracker, logger)
	trees, err := NewTrees(source, tracker, opts.TreeCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Tracker: tracker,
		Source:  source,
		Trees:   trees,
		logger:  logger,
	}
	if opts.Watch {
		w, err := NewWatcher(tracker, logger)
		if err != nil {
			return nil, err
		}
		s.watcher = w
		tracker.onTrack = func(path string) {
			if err := w.Watch(path); err != nil {
				logger.Warn("cannot watch file", "path", path, "err", err)
			}
		}
	}
	return s, nil
}

// Close releases the watcher, the tree cache and every revision record.
func (s *Session) Close() error {
	var err error
	if s.watcher != nil {
		err = s.watcher.Close()
	}
	s.Trees.Purge()
	s.Source.ClearOverlay()
	s.Tracker.Close()
	return err
}
