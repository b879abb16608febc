// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/fromusage/fromusage/internal/file"
	"github.com/fromusage/fromusage/internal/syntax"
)

// ErrNoSnapshot is returned when a file's content cannot be read.
var ErrNoSnapshot = errors.New("no snapshot")

// Trees caches parsed syntax trees by file content, so that repeated
// requests against an unchanged file share one parse.
type Trees struct {
	source  *Source
	tracker *Tracker
	cache   *lru.Cache[treeKey, *syntax.File]
	group   singleflight.Group
}

type treeKey struct {
	path string
	hash file.Hash
}

// NewTrees returns a tree cache holding at most size parsed files.
func NewTrees(source *Source, tracker *Tracker, size int) (*Trees, error) {
	c, err := lru.New[treeKey, *syntax.File](size)
	if err != nil {
		return nil, err
	}
	return &Trees{source: source, tracker: tracker, cache: c}, nil
}

// Get returns the syntax tree of the current snapshot of path.
func (t *Trees) Get(ctx context.Context, path string) (*syntax.File, error) {
	content, ok := t.source.Snapshot(ctx, path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSnapshot)
	}
	key := treeKey{path: path, hash: file.HashOf(content)}
	if f, ok := t.cache.Get(key); ok {
		return f, nil
	}

	v, err, _ := t.group.Do(key.path+"@"+key.hash.String(), func() (any, error) {
		kind := file.KindForPath(path)
		if kind == file.UnknownKind {
			kind = file.TypeScript
		}
		f, err := syntax.Parse(ctx, kind, path, content)
		if err != nil {
			return nil, err
		}
		if version, ok := t.tracker.VersionOf(path); ok {
			f.Version = version
		}
		t.cache.Add(key, f)
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*syntax.File), nil
}

// Purge drops every cached tree.
func (t *Trees) Purge() {
	t.cache.Purge()
}
