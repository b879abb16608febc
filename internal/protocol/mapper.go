// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

// This file defines Mapper, which wraps a file content buffer
// and provides efficient conversion between the encodings used here:
//
//   - byte offsets (UTF-8), as used by the syntax tree and the
//     synthesizer;
//   - (line, col8) pairs, 1-based, as used on the command line;
//   - protocol Positions, 0-based (line, col16), as used by LSP.

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

// A Mapper wraps the content of a file and provides mapping
// between byte offsets and notations of position such as:
//
//   - (line, col8) pairs, where col8 is a 1-based UTF-8 column number
//     (bytes), as used by the command-line interface;
//
//   - (line, col16) pairs, where col16 is a 0-based UTF-16 column
//     number, as used by the LSP protocol.
//
// The Mapper requires the content of the file to be immutable.
type Mapper struct {
	URI     DocumentURI
	Content []byte

	linesOnce sync.Once
	lineStart []int // byte offset of start of ith line (0-based); last=EOF iff \n-terminated
	nonASCII  bool
}

// NewMapper creates a new mapper for the given URI and content.
func NewMapper(uri DocumentURI, content []byte) *Mapper {
	return &Mapper{URI: uri, Content: content}
}

func (m *Mapper) initLines() {
	m.linesOnce.Do(func() {
		nlines := bytes.Count(m.Content, []byte("\n"))
		m.lineStart = make([]int, 1, nlines+1) // initially []int{0}
		for offset, b := range m.Content {
			if b == '\n' {
				m.lineStart = append(m.lineStart, offset+1)
			}
			if b >= utf8.RuneSelf {
				m.nonASCII = true
			}
		}
	})
}

// line returns the 0-based line index and the start offset of the line
// containing offset.
func (m *Mapper) line(offset int) (int, int) {
	m.initLines()
	i := sort.Search(len(m.lineStart), func(i int) bool {
		return offset < m.lineStart[i]
	}) - 1
	if i < 0 {
		i = 0
	}
	return i, m.lineStart[i]
}

// LineStart returns the byte offset of the first byte of the line
// containing offset.
func (m *Mapper) LineStart(offset int) int {
	_, start := m.line(offset)
	return start
}

// -- conversions from byte offsets --

// OffsetPosition converts a byte offset to a protocol (UTF-16) position.
func (m *Mapper) OffsetPosition(offset int) (Position, error) {
	if !(0 <= offset && offset <= len(m.Content)) {
		return Position{}, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(m.Content))
	}
	line, start := m.line(offset)
	col16 := offset - start
	if m.nonASCII {
		col16 = UTF16Len(m.Content[start:offset])
	}
	return Position{Line: uint32(line), Character: uint32(col16)}, nil
}

// OffsetRange converts a byte-offset interval to a protocol (UTF-16) range.
func (m *Mapper) OffsetRange(start, end int) (Range, error) {
	if start > end {
		return Range{}, fmt.Errorf("start offset (%d) > end (%d)", start, end)
	}
	startPosition, err := m.OffsetPosition(start)
	if err != nil {
		return Range{}, fmt.Errorf("start: %v", err)
	}
	endPosition, err := m.OffsetPosition(end)
	if err != nil {
		return Range{}, fmt.Errorf("end: %v", err)
	}
	return Range{Start: startPosition, End: endPosition}, nil
}

// -- conversions to byte offsets --

// LineCol8Offset converts a 1-based (line, col8) pair to a byte offset.
func (m *Mapper) LineCol8Offset(line, col8 int) (int, error) {
	m.initLines()
	line0 := line - 1 // 0-based
	if !(0 <= line0 && line0 < len(m.lineStart)) {
		return 0, fmt.Errorf("line is beyond end of file (%v)", len(m.lineStart))
	}
	start := m.lineStart[line0]
	end := len(m.Content)
	if line0+1 < len(m.lineStart) {
		end = m.lineStart[line0+1] - 1 // excluding \n
	}
	offset := start + col8 - 1
	if col8 < 1 || offset > end {
		return 0, fmt.Errorf("column is beyond end of line")
	}
	return offset, nil
}

// PositionOffset returns the byte offset for an LSP (UTF-16) position.
func (m *Mapper) PositionOffset(p Position) (int, error) {
	m.initLines()
	line := int(p.Line)
	if line >= len(m.lineStart) {
		return 0, fmt.Errorf("line number %d out of range 0-%d", line, len(m.lineStart)-1)
	}
	start := m.lineStart[line]
	end := len(m.Content)
	if line+1 < len(m.lineStart) {
		end = m.lineStart[line+1] - 1 // excluding \n
	}
	offset := start
	for col16 := int(p.Character); col16 > 0; col16-- {
		if offset >= end {
			return 0, fmt.Errorf("column %d is beyond end of line", p.Character)
		}
		r, w := utf8.DecodeRune(m.Content[offset:])
		offset += w
		if r >= 0x10000 {
			col16-- // surrogate pair
		}
	}
	return offset, nil
}

// UTF16Len returns the number of codes in the UTF-16 transcoding of s.
func UTF16Len(s []byte) int {
	var n int
	for len(s) > 0 {
		n++

		// Fast path for ASCII.
		if s[0] < 0x80 {
			s = s[1:]
			continue
		}

		r, size := utf8.DecodeRune(s)
		if r >= 0x10000 {
			n++ // surrogate pair
		}
		s = s[size:]
	}
	return n
}

// UTF16Slice returns the substring of s between the UTF-16 code unit
// offsets start and end, which is how LSP parameter labels given as
// offset pairs address the signature label.
func UTF16Slice(s string, start, end int) (string, error) {
	if start > end {
		return "", fmt.Errorf("invalid UTF-16 interval [%d, %d)", start, end)
	}
	var (
		col16      int
		begin, fin = -1, -1
	)
	for i, r := range s {
		if col16 == start {
			begin = i
		}
		if col16 == end {
			fin = i
			break
		}
		col16++
		if r >= 0x10000 {
			col16++
		}
	}
	if begin < 0 && col16 == start {
		begin = len(s)
	}
	if fin < 0 && col16 == end {
		fin = len(s)
	}
	if begin < 0 || fin < 0 {
		return "", fmt.Errorf("UTF-16 interval [%d, %d) out of range for %q", start, end, s)
	}
	return s[begin:fin], nil
}
