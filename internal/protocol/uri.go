// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// A DocumentURI is the "file" URI of a document shared with the
// language server. The zero DocumentURI names no document.
type DocumentURI string

// URIFromPath returns the URI of the file at path, made absolute.
func URIFromPath(path string) DocumentURI {
	if path == "" {
		return ""
	}
	if !hasDrive(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return fileURI(filepath.ToSlash(path))
}

// ParseDocumentURI canonicalizes a file URI received from a server.
// It accepts URIs with two slashes after the scheme and escaped drive
// colons.
func ParseDocumentURI(s string) (DocumentURI, error) {
	if s == "" {
		return "", nil
	}
	rest, ok := strings.CutPrefix(s, "file://")
	if !ok {
		return "", fmt.Errorf("not a file URI: %q", s)
	}
	path, err := url.PathUnescape(strings.TrimPrefix(rest, "/"))
	if err != nil {
		return "", fmt.Errorf("%q: %v", s, err)
	}
	return fileURI(path), nil
}

func (uri *DocumentURI) UnmarshalText(data []byte) (err error) {
	*uri, err = ParseDocumentURI(string(data))
	return err
}

// Path returns the file path named by uri, or "" if uri is not a file
// URI.
func (uri DocumentURI) Path() string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return ""
	}
	path := u.Path
	if hasDrive(strings.TrimPrefix(path, "/")) {
		path = upperDrive(path[1:])
	}
	return filepath.FromSlash(path)
}

// fileURI returns the URI of a slash-separated path, with or without its
// leading slash.
func fileURI(path string) DocumentURI {
	path = strings.TrimPrefix(path, "/")
	if hasDrive(path) {
		path = upperDrive(path)
	}
	u := url.URL{Scheme: "file", Path: "/" + path}
	return DocumentURI(u.String())
}

// hasDrive reports whether path begins with a Windows drive letter, as
// in C:/x.
func hasDrive(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0] | 0x20
	return 'a' <= c && c <= 'z'
}

func upperDrive(path string) string {
	return strings.ToUpper(path[:1]) + path[1:]
}
