// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fromusage/fromusage/internal/protocol"
)

// A location is a caret position written on the command line, either
// as file:line:col, with a 1-based line and a 1-based byte column, or
// as file:#offset, with a 0-based byte offset.
//
// Locations are notated without access to file contents; use offset to
// resolve one against a Mapper.
type location struct {
	Path   string
	Line   int // zero for an offset location
	Column int
	Offset int
}

func parseLocation(arg string) (location, error) {
	bad := fmt.Errorf("invalid position %q: want file:line:col or file:#offset", arg)
	rest, last, ok := rcut(arg)
	if !ok {
		return location{}, bad
	}
	if strings.HasPrefix(last, "#") {
		offset, err := strconv.Atoi(last[1:])
		if err != nil || offset < 0 {
			return location{}, bad
		}
		return location{Path: rest, Offset: offset}, nil
	}
	path, linestr, ok := rcut(rest)
	if !ok {
		return location{}, bad
	}
	line, err1 := strconv.Atoi(linestr)
	col, err2 := strconv.Atoi(last)
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		return location{}, bad
	}
	return location{Path: path, Line: line, Column: col}, nil
}

// rcut splits s around its last colon. The part before must be
// non-empty, so that a Windows drive letter is never taken for a path.
func rcut(s string) (before, after string, ok bool) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

// offset returns the byte offset of l in the file mapped by m.
func (l location) offset(m *protocol.Mapper) (int, error) {
	if l.Line == 0 {
		if _, err := m.OffsetPosition(l.Offset); err != nil {
			return 0, err
		}
		return l.Offset, nil
	}
	return m.LineCol8Offset(l.Line, l.Column)
}

func (l location) String() string {
	if l.Line == 0 {
		return fmt.Sprintf("%s:#%d", l.Path, l.Offset)
	}
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}
