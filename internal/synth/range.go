// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"strings"

	"github.com/fromusage/fromusage/internal/syntax"
)

// ReplacementRange returns the byte offsets of the text a snippet
// replaces. A declaration replaces the enclosing statement from the
// start of its first line, since the statement's indentation is
// re-emitted. An inline value replaces the identifier.
func ReplacementRange(f *syntax.File, ident, stmt *syntax.Node, mode Mode) (start, end int) {
	if mode == Inline {
		return ident.Start, ident.End
	}
	return f.Mapper.LineStart(stmt.Start), stmt.End
}

// statementText returns the text of stmt from the start of its first
// line, without blank lines, and the indentation of that line.
func statementText(f *syntax.File, stmt *syntax.Node) (text, indent string) {
	start := f.Mapper.LineStart(stmt.Start)
	lines := strings.Split(string(f.Src[start:stmt.End]), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	text = strings.Join(kept, "\n")
	indent = text[:len(text)-len(strings.TrimLeft(text, " \t"))]
	return text, indent
}
