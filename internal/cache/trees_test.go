// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fromusage/fromusage/internal/settings"
	"github.com/fromusage/fromusage/internal/syntax"
)

func TestTrees(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "f(x);\n")

	s, err := NewSession(settings.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	f1, err := s.Trees.Get(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if f1.Root == nil || f1.Path != path || f1.Version != 0 {
		t.Fatalf("Get = %+v", f1)
	}
	f2, err := s.Trees.Get(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Errorf("unchanged file parsed twice")
	}

	s.Source.SetOverlay(path, []byte("g(y, z);\n"))
	f3, err := s.Trees.Get(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if f3 == f1 {
		t.Fatalf("edited buffer served from cache")
	}
	if got := string(f3.Src); got != "g(y, z);\n" {
		t.Errorf("tree of %q, want the buffer", got)
	}
	if f3.Version != 1 {
		t.Errorf("Version = %d, want 1", f3.Version)
	}
	if n := syntax.Resolve(f3.Root, 2); n == nil || f3.Text(n) != "y" {
		t.Errorf("Resolve in edited tree = %v", n)
	}

	_, err = s.Trees.Get(ctx, filepath.Join(dir, "missing.ts"))
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Get(missing) error = %v, want ErrNoSnapshot", err)
	}
}

func TestSessionWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "a")
	touch(t, path, -time.Hour)

	opts := settings.Default()
	opts.Watch = true
	s, err := NewSession(opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Tracker.NoteAccess(path)
	writeFile(t, dir, "a.ts", "b")

	// The watcher notices the write without a further access.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if v, _ := s.Tracker.VersionOf(path); v >= 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("version not bumped by watcher")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
