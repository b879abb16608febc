// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"strings"

	"github.com/fromusage/fromusage/internal/settings"
	"github.com/fromusage/fromusage/internal/snippet"
	"github.com/fromusage/fromusage/internal/syntax"
	"github.com/fromusage/fromusage/internal/typelabel"
)

// codeStandIn is the placeholder text of an inline function body.
const codeStandIn = "/* code... */"

// DeclarationSnippet returns a snippet declaring the identifier ident as a
// constant of one of the candidate types, followed by the enclosing
// statement stmt re-emitted with the argument after the active one
// turned into a placeholder.
//
// A single candidate yields one placeholder for its value. Several
// candidates yield one placeholder per candidate, each holding a
// complete alternative, so the user keeps one and deletes the others.
func DeclarationSnippet(f *syntax.File, ident, stmt *syntax.Node, terms []typelabel.Term, activeParam int, opts *settings.Options) *snippet.Builder {
	text, indent := statementText(f, stmt)

	b := &snippet.Builder{}
	b.WriteText(indent + "const " + f.Text(ident) + " = ")
	if len(terms) == 1 {
		writeValue(b, terms[0], indent, opts)
		b.WriteText(";\n")
	} else {
		for i, t := range terms {
			if i > 0 {
				b.WriteText("\n" + indent)
			}
			b.WritePlaceholder(func(b *snippet.Builder) {
				b.WriteText(alternative(t, true, opts) + ";")
			})
		}
		b.WriteText("\n\n")
	}
	reemit(b, text, activeParam+1)
	return b
}

// InlineSnippet returns a snippet for a value of one of the candidate types, to
// replace the identifier itself. Several candidates become a choice.
func InlineSnippet(terms []typelabel.Term, opts *settings.Options) *snippet.Builder {
	b := &snippet.Builder{}
	if len(terms) == 1 {
		t := terms[0]
		if t.IsFunction {
			brackets(b, t, func() {
				b.WriteText(t.FuncText(false) + " => { ")
				b.WritePlaceholder(func(b *snippet.Builder) {
					b.WriteText(codeStandIn)
				})
				b.WriteText(" }")
			})
			return b
		}
		writeValue(b, t, "", opts)
		return b
	}
	choices := make([]string, len(terms))
	for i, t := range terms {
		choices[i] = alternative(t, false, opts)
	}
	b.WriteChoice(choices)
	return b
}

// writeValue writes the value of a sole candidate: a constructor call
// with an empty argument tab stop, a function with an empty body, or a
// default literal the user can overwrite.
func writeValue(b *snippet.Builder, t typelabel.Term, indent string, opts *settings.Options) {
	brackets(b, t, func() {
		switch {
		case t.IsFunction:
			b.WriteText(t.FuncText(true) + " => {\n" + indent + opts.Indent)
			b.WriteTabstop()
			b.WriteText("\n" + indent + "}")
		case t.IsConstructible:
			b.WriteText("new " + t.Name + "(")
			b.WriteTabstop()
			b.WriteText(")")
		default:
			lit := opts.DefaultLiteral(t.Name)
			quote := ""
			if t.Name == "string" {
				quote = "'"
			}
			b.WriteText(quote)
			b.WritePlaceholder(func(b *snippet.Builder) {
				b.WriteText(lit)
			})
			b.WriteText(quote)
		}
	})
}

// alternative returns the complete value text of a candidate competing
// with others. Function parameters keep their annotations if annotated.
func alternative(t typelabel.Term, annotated bool, opts *settings.Options) string {
	var value string
	switch {
	case t.IsFunction && annotated:
		value = t.FuncText(true) + " => {}"
	case t.IsFunction:
		value = t.FuncText(false) + " => { " + codeStandIn + " }"
	case t.IsConstructible:
		value = "new " + t.Name + "()"
	case t.Name == "string":
		value = "'" + opts.DefaultLiteral(t.Name) + "'"
	default:
		value = opts.DefaultLiteral(t.Name)
	}
	return strings.Repeat("[", t.Dims) + value + strings.Repeat("]", t.Dims)
}

// brackets wraps the value written by fn in one pair of brackets per
// array dimension of t.
func brackets(b *snippet.Builder, t typelabel.Term, fn func()) {
	b.WriteText(strings.Repeat("[", t.Dims))
	fn()
	b.WriteText(strings.Repeat("]", t.Dims))
}

// reemit writes the statement text split at commas, every segment
// verbatim except segment next, whose first alphanumeric run becomes a
// placeholder: it is the argument the user is likely to fill in next.
func reemit(b *snippet.Builder, text string, next int) {
	for i, seg := range strings.Split(text, ",") {
		if i > 0 {
			b.WriteText(",")
		}
		start, end := alnumRun(seg)
		if i != next || start < 0 {
			b.WriteText(seg)
			continue
		}
		b.WriteText(seg[:start])
		b.WritePlaceholder(func(b *snippet.Builder) {
			b.WriteText(seg[start:end])
		})
		b.WriteText(seg[end:])
	}
}

// alnumRun returns the bounds of the first run of ASCII letters and
// digits in s, or -1, -1.
func alnumRun(s string) (int, int) {
	start := strings.IndexFunc(s, isAlnum)
	if start < 0 {
		return -1, -1
	}
	end := strings.IndexFunc(s[start:], func(r rune) bool { return !isAlnum(r) })
	if end < 0 {
		return start, len(s)
	}
	return start, start + end
}

func isAlnum(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9'
}
