// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fromusage/fromusage/internal/file"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// touch sets the modification time of path to now+d.
func touch(t *testing.T, path string, d time.Duration) {
	t.Helper()
	mtime := time.Now().Add(d)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestTrackerAccess(t *testing.T) {
	dir := t.TempDir()
	tr := NewTracker(nil)

	missing := filepath.Join(dir, "missing.ts")
	tr.NoteAccess(missing)
	if _, ok := tr.VersionOf(missing); ok {
		t.Errorf("missing file is tracked")
	}

	a := writeFile(t, dir, "a.ts", "a")
	b := writeFile(t, dir, "b.ts", "b")
	touch(t, a, -time.Hour)
	tr.NoteAccess(a)
	tr.NoteAccess(b)
	tr.NoteAccess(a)

	version := func(path string) int {
		t.Helper()
		v, ok := tr.VersionOf(path)
		if !ok {
			t.Fatalf("%s is not tracked", path)
		}
		return v
	}
	if v := version(a); v != 0 {
		t.Errorf("version of unchanged file = %d, want 0", v)
	}

	touch(t, a, 0)
	tr.NoteAccess(a)
	if v := version(a); v != 1 {
		t.Errorf("version after modification = %d, want 1", v)
	}
	tr.NoteAccess(a)
	if v := version(a); v != 1 {
		t.Errorf("version after second access = %d, want 1", v)
	}

	// An older mtime never decreases the version.
	touch(t, a, -2*time.Hour)
	tr.NoteAccess(a)
	if v := version(a); v != 1 {
		t.Errorf("version after mtime went back = %d, want 1", v)
	}

	if diff := cmp.Diff([]string{a, b}, tr.Files()); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	tr.Close()
	if len(tr.Files()) != 0 {
		t.Errorf("Files after Close = %v", tr.Files())
	}
	if _, ok := tr.VersionOf(a); ok {
		t.Errorf("file tracked after Close")
	}
}

func TestTrackerContent(t *testing.T) {
	dir := t.TempDir()
	tr := NewTracker(nil)
	var tracked []string
	tr.onTrack = func(path string) { tracked = append(tracked, path) }

	// A buffer that was never saved is tracked too.
	unsaved := filepath.Join(dir, "unsaved.ts")
	tr.NoteContent(unsaved, file.HashOf([]byte("x")))
	if v, ok := tr.VersionOf(unsaved); !ok || v != 0 {
		t.Errorf("VersionOf(unsaved) = %d, %t; want 0, true", v, ok)
	}

	path := writeFile(t, dir, "a.ts", "a")
	tr.NoteAccess(path)
	for i, content := range []string{"a", "a", "ab", "ab", "abc", "a"} {
		tr.NoteContent(path, file.HashOf([]byte(content)))
		want := []int{0, 0, 1, 1, 2, 3}[i]
		if v, _ := tr.VersionOf(path); v != want {
			t.Errorf("after buffer %q: version %d, want %d", content, v, want)
		}
	}

	if diff := cmp.Diff([]string{unsaved, path}, tracked); diff != "" {
		t.Errorf("onTrack calls mismatch (-want +got):\n%s", diff)
	}
}
