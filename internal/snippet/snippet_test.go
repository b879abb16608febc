// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snippet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSnippetBuilder(t *testing.T) {
	expect := func(expected string, fn func(*Builder)) {
		t.Helper()

		var b Builder
		fn(&b)
		if got := b.String(); got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
	}

	expect("", func(b *Builder) {})

	expect(`hi { \} \$ | " , / \\`, func(b *Builder) {
		b.WriteText(`hi { } $ | " , / \`)
	})

	expect("${1:}", func(b *Builder) {
		b.WritePlaceholder(func(b *Builder) {})
	})

	expect("$1", func(b *Builder) {
		b.WritePlaceholder(nil)
	})

	expect("const x = new Foo($1);", func(b *Builder) {
		b.WriteText("const x = new Foo(")
		b.WriteTabstop()
		b.WriteText(");")
	})

	expect(`'${1:string}'`, func(b *Builder) {
		b.WriteText("'")
		b.WritePlaceholder(func(b *Builder) {
			b.WriteText("string")
		})
		b.WriteText("'")
	})

	expect(`${1:new Foo();}${2:'string';}`, func(b *Builder) {
		b.WritePlaceholder(func(b *Builder) {
			b.WriteText("new Foo();")
		})
		b.WritePlaceholder(func(b *Builder) {
			b.WriteText("'string';")
		})
	})

	expect(`() => {${1:/* \} */}\} $2`, func(b *Builder) {
		b.WriteText("() => {")
		b.WritePlaceholder(func(b *Builder) {
			b.WriteText("/* } */")
		})
		b.WriteText("}")
		b.WriteText(" ")
		b.WriteTabstop()
	})

	expect(`${1|new Foo(),'string',a\,b\|c|}`, func(b *Builder) {
		b.WriteChoice([]string{"new Foo()", "'string'", "a,b|c"})
	})

	// Choice elements only unescape backslash, comma and pipe.
	expect(`${1|(a\, b) => { $x },\\|}`, func(b *Builder) {
		b.WriteChoice([]string{"(a, b) => { $x }", `\`})
	})

	expect(`${1:a ${2:b}}`, func(b *Builder) {
		b.WritePlaceholder(func(b *Builder) {
			b.WriteText("a ")
			b.WritePlaceholder(func(b *Builder) {
				b.WriteText("b")
			})
		})
	})
}

func TestSegments(t *testing.T) {
	var b Builder
	b.WriteText("f(")
	b.WritePlaceholder(func(b *Builder) { b.WriteText("a$") })
	b.WriteText(", ")
	b.WriteChoice([]string{"x", "y"})
	b.WriteText(")")
	b.WriteTabstop()

	want := []Segment{
		{Kind: Text, Text: "f("},
		{Kind: Placeholder, Text: "a$", Index: 1},
		{Kind: Text, Text: ", "},
		{Kind: Choice, Index: 2, Choices: []string{"x", "y"}},
		{Kind: Text, Text: ")"},
		{Kind: Tabstop, Index: 3},
	}
	if diff := cmp.Diff(want, b.Segments(), cmpopts.IgnoreUnexported(Segment{})); diff != "" {
		t.Errorf("Segments mismatch (-want +got):\n%s", diff)
	}
	if got, want := b.PlainText(), "f(a$, x)"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
	if got := b.Placeholders(); got != 3 {
		t.Errorf("Placeholders() = %d, want 3", got)
	}
}
