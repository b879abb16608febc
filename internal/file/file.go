// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The file package defines types used for working with source files
// tracked across synthesis requests.
package file

import (
	"context"
	"fmt"
)

// An Identity identifies the name and contents of a file.
type Identity struct {
	Path string
	Hash Hash // digest of file contents
}

func (id Identity) String() string {
	return fmt.Sprintf("%s%s", id.Path, id.Hash)
}

// A Handle represents the path, content, hash, and version of a file.
//
// File content may be provided by the file system (for saved files)
// or from an overlay, for the file open in the editor with unsaved edits.
// A Handle may record an attempt to read a non-existent file,
// in which case Content returns an error.
type Handle interface {
	// Path is the cleaned absolute path of the file.
	Path() string
	// Identity returns an Identity for the file, even if there was an error
	// reading it.
	Identity() Identity
	// SameContentsOnDisk reports whether the file has the same content on disk:
	// it is false for the overlay of a buffer with unsaved edits.
	SameContentsOnDisk() bool
	// Content returns the contents of a file.
	// If the file is not available, returns a nil slice and an error.
	Content() ([]byte, error)
}

// A Source maps paths to Handles.
type Source interface {
	// ReadFile returns the Handle for a given path, either by reading the
	// content of the file or by obtaining it from a cache.
	//
	// Invariant: ReadFile must only return an error in the case of context
	// cancellation. If ctx.Err() is nil, the resulting error must also be nil.
	ReadFile(ctx context.Context, path string) (Handle, error)
}
