// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snippet implements the LSP snippet syntax: literal text mixed
// with numbered tab stops, placeholders that hold default text, and
// choices.
package snippet

import (
	"fmt"
	"strings"
)

// A SegmentKind is the kind of a snippet segment.
type SegmentKind int

const (
	Text SegmentKind = iota
	Placeholder
	Tabstop
	Choice
)

func (k SegmentKind) String() string {
	switch k {
	case Text:
		return "Text"
	case Placeholder:
		return "Placeholder"
	case Tabstop:
		return "Tabstop"
	case Choice:
		return "Choice"
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

// A Segment is one element of a snippet, in order.
type Segment struct {
	Kind    SegmentKind
	Text    string   // literal text, or a placeholder's default text
	Index   int      // tab stop number, from 1
	Choices []string // Choice only

	body   string // rendered placeholder content
	filled bool   // placeholder has content, possibly empty
}

// A Builder is used to build an LSP snippet piecemeal.
// The zero value is ready to use. Do not copy a non-zero Builder.
type Builder struct {
	segments []Segment

	// parent is the builder of the enclosing placeholder, which owns the
	// tab stop numbering.
	parent *Builder

	// currentTabStop is the index of the previous tab stop. The
	// next tab stop will be currentTabStop+1.
	currentTabStop int
}

// Escape characters defined in https://microsoft.github.io/language-server-protocol/specifications/specification-current/#snippet_syntax
var (
	textEscaper   = strings.NewReplacer(`\`, `\\`, `}`, `\}`, `$`, `\$`)
	choiceEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`, `,`, `\,`)
)

// WriteText writes s to the snippet, escaping it as necessary.
func (b *Builder) WriteText(s string) {
	if s == "" {
		return
	}
	if n := len(b.segments); n > 0 && b.segments[n-1].Kind == Text {
		b.segments[n-1].Text += s
		return
	}
	b.segments = append(b.segments, Segment{Kind: Text, Text: s})
}

// WritePlaceholder writes a tab stop and placeholder value to the snippet.
//
// The callback style allows for creating nested placeholders. To write an
// empty tab stop, provide a nil callback.
func (b *Builder) WritePlaceholder(fn func(*Builder)) {
	seg := Segment{Kind: Placeholder, Index: b.nextTabStop()}
	if fn != nil {
		inner := &Builder{parent: b}
		fn(inner)
		seg.Text = inner.PlainText()
		seg.body = inner.String()
		seg.filled = true
	}
	b.segments = append(b.segments, seg)
}

// WriteTabstop writes an empty tab stop.
func (b *Builder) WriteTabstop() {
	b.segments = append(b.segments, Segment{Kind: Tabstop, Index: b.nextTabStop()})
}

// WriteChoice writes a tab stop offering a fixed set of values, the
// first of which is the default.
func (b *Builder) WriteChoice(choices []string) {
	b.segments = append(b.segments, Segment{
		Kind:    Choice,
		Index:   b.nextTabStop(),
		Choices: append([]string(nil), choices...),
	})
}

func (b *Builder) nextTabStop() int {
	if b.parent != nil {
		return b.parent.nextTabStop()
	}
	b.currentTabStop++
	return b.currentTabStop
}

// Segments returns the segments of the snippet, in order.
func (b *Builder) Segments() []Segment {
	return append([]Segment(nil), b.segments...)
}

// Placeholders returns the number of tab stops the user visits.
func (b *Builder) Placeholders() int {
	n := 0
	for _, seg := range b.segments {
		if seg.Kind != Text {
			n++
		}
	}
	return n
}

// String returns the snippet in LSP snippet syntax.
func (b *Builder) String() string {
	var sb strings.Builder
	for _, seg := range b.segments {
		switch seg.Kind {
		case Text:
			textEscaper.WriteString(&sb, seg.Text)
		case Placeholder:
			if !seg.filled {
				fmt.Fprintf(&sb, "$%d", seg.Index)
			} else {
				fmt.Fprintf(&sb, "${%d:%s}", seg.Index, seg.body)
			}
		case Tabstop:
			fmt.Fprintf(&sb, "$%d", seg.Index)
		case Choice:
			fmt.Fprintf(&sb, "${%d|", seg.Index)
			for i, c := range seg.Choices {
				if i > 0 {
					sb.WriteByte(',')
				}
				choiceEscaper.WriteString(&sb, c)
			}
			sb.WriteString("|}")
		}
	}
	return sb.String()
}

// PlainText returns the text the snippet expands to when every
// placeholder keeps its default value and every choice its first value.
func (b *Builder) PlainText() string {
	var sb strings.Builder
	for _, seg := range b.segments {
		switch seg.Kind {
		case Text, Placeholder:
			sb.WriteString(seg.Text)
		case Choice:
			if len(seg.Choices) > 0 {
				sb.WriteString(seg.Choices[0])
			}
		}
	}
	return sb.String()
}
