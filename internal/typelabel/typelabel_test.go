// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typelabel_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/fromusage/fromusage/internal/typelabel"
)

func TestTokenize(t *testing.T) {
	type tok struct {
		Kind typelabel.Kind
		Text string
	}
	tests := []struct {
		label string
		want  []tok
	}{
		{"x: Foo[] | string", []tok{
			{typelabel.Name, "x"},
			{typelabel.Colon, ":"},
			{typelabel.Name, "Foo"},
			{typelabel.ArraySuffix, "[]"},
			{typelabel.Union, "|"},
			{typelabel.Name, "string"},
		}},
		{"...rest?: (a: 'x|y') => void", []tok{
			{typelabel.Ellipsis, "..."},
			{typelabel.Name, "rest"},
			{typelabel.Question, "?"},
			{typelabel.Colon, ":"},
			{typelabel.LParen, "("},
			{typelabel.Name, "a"},
			{typelabel.Colon, ":"},
			{typelabel.String, "'x|y'"},
			{typelabel.RParen, ")"},
			{typelabel.Arrow, "=>"},
			{typelabel.Name, "void"},
		}},
		{"ns.Map<K, V[ ]> & {}", []tok{
			{typelabel.Name, "ns"},
			{typelabel.Dot, "."},
			{typelabel.Name, "Map"},
			{typelabel.LAngle, "<"},
			{typelabel.Name, "K"},
			{typelabel.Comma, ","},
			{typelabel.Name, "V"},
			{typelabel.ArraySuffix, "[ ]"},
			{typelabel.RAngle, ">"},
			{typelabel.Other, "&"},
			{typelabel.LBrace, "{"},
			{typelabel.RBrace, "}"},
		}},
		{"[number, 1.5]", []tok{
			{typelabel.LBracket, "["},
			{typelabel.Name, "number"},
			{typelabel.Comma, ","},
			{typelabel.Number, "1.5"},
			{typelabel.RBracket, "]"},
		}},
	}
	for _, test := range tests {
		var got []tok
		for _, t := range typelabel.Tokenize(test.label) {
			got = append(got, tok{t.Kind, t.Text})
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", test.label, diff)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	const label = "a: Foo"
	for _, tok := range typelabel.Tokenize(label) {
		if label[tok.Pos:tok.End] != tok.Text {
			t.Errorf("token %v spans %q", tok, label[tok.Pos:tok.End])
		}
	}
}

// term is a Term without the raw text and function details, for
// comparing shapes.
type term struct {
	Name                              string
	Dims                              int
	IsArray, IsFunction, Constructible bool
}

func shapes(terms []typelabel.Term) []term {
	var res []term
	for _, t := range terms {
		res = append(res, term{t.Name, t.Dims, t.IsArray, t.IsFunction, t.IsConstructible})
	}
	return res
}

func TestParse(t *testing.T) {
	tests := []struct {
		label string
		want  []term
	}{
		{"x: number", []term{{Name: "number"}}},
		{"x: Foo | string", []term{
			{Name: "Foo", Constructible: true},
			{Name: "string"},
		}},
		{"x?: Foo | undefined", []term{{Name: "Foo", Constructible: true}}},
		{"x: undefined | boolean", []term{{Name: "boolean"}}},
		{"items: Foo[]", []term{{Name: "Foo", Dims: 1, IsArray: true, Constructible: true}}},
		{"grid: number[][]", []term{{Name: "number", Dims: 2, IsArray: true}}},
		{"xs: Array<Bar>", []term{{Name: "Bar", Dims: 1, IsArray: true, Constructible: true}}},
		{"xs: readonly string[]", []term{{Name: "string", Dims: 1, IsArray: true}}},
		{"xs: (string | number)[]", []term{{Name: "string", Dims: 1, IsArray: true}}},
		// An array of a union keeps only the first element type.
		{"x: (Foo | string)[]", []term{{Name: "Foo", Dims: 1, IsArray: true, Constructible: true}}},
		{"e: vscode.Range", []term{{Name: "vscode.Range", Constructible: true}}},
		{"m: Map<string, number>", []term{{Name: "Map<string, number>", Constructible: true}}},
		{"p: Promise<string | undefined>", []term{{Name: "Promise<string | undefined>", Constructible: true}}},
		{"f: (a: number) => void", []term{{Name: "(a: number) => void", IsFunction: true}}},
		{"f: (a: Foo) => string | undefined", []term{{Name: "(a: Foo) => string | undefined", IsFunction: true}}},
		{"cb: ((err: Error) => void) | null", []term{
			{Name: "(err: Error) => void", IsFunction: true},
			{Name: "null"},
		}},
		{"mode: 'a' | 'b'", []term{{Name: "'a'"}, {Name: "'b'"}}},
		{"{ a, b }: Options", []term{{Name: "Options", Constructible: true}}},
		{"o: { a: string }", []term{{Name: "{ a: string }"}}},
		{"T", []term{{Name: "T", Constructible: true}}},
		{"k: keyof T", []term{{Name: "keyof T"}}},
	}
	for _, test := range tests {
		terms, err := typelabel.Parse(test.label)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", test.label, err)
			continue
		}
		if diff := cmp.Diff(test.want, shapes(terms)); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.label, diff)
		}
	}
}

func TestParseFunction(t *testing.T) {
	terms, err := typelabel.Parse("listener: <T>(ev: T, opts?: { once: boolean }, ...rest: any[]) => boolean")
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 1 {
		t.Fatalf("got %d terms, want 1", len(terms))
	}
	got := terms[0]
	want := typelabel.Term{
		Raw:        "listener: <T>(ev: T, opts?: { once: boolean }, ...rest: any[]) => boolean",
		Name:       "<T>(ev: T, opts?: { once: boolean }, ...rest: any[]) => boolean",
		IsFunction: true,
		TypeParams: "<T>",
		Params: []typelabel.Param{
			{Text: "ev: T", Name: "ev"},
			{Text: "opts?: { once: boolean }", Name: "opts", Optional: true},
			{Text: "...rest: any[]", Name: "rest", Rest: true},
		},
		Result: "boolean",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	if got, want := got.FuncText(true), "<T>(ev: T, opts?: { once: boolean }, ...rest: any[])"; got != want {
		t.Errorf("FuncText(true) = %q, want %q", got, want)
	}
	if got, want := got.FuncText(false), "(ev, opts, ...rest)"; got != want {
		t.Errorf("FuncText(false) = %q, want %q", got, want)
	}
}

func TestParseNoParams(t *testing.T) {
	terms, err := typelabel.Parse("fn: () => void")
	if err != nil {
		t.Fatal(err)
	}
	if got := terms[0].FuncText(false); got != "()" {
		t.Errorf("FuncText(false) = %q, want ()", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		label string
		want  error
	}{
		{"x: any", typelabel.ErrAnyType},
		{"any", typelabel.ErrAnyType},
		{"xs: any[]", typelabel.ErrAnyType},
		{"xs: Array<any>", typelabel.ErrAnyType},
		{"x: string | any", typelabel.ErrAnyType},
		{"x: undefined", typelabel.ErrEmpty},
		{"", typelabel.ErrEmpty},
	}
	for _, test := range tests {
		_, err := typelabel.Parse(test.label)
		if !errors.Is(err, test.want) {
			t.Errorf("Parse(%q) error = %v, want %v", test.label, err, test.want)
		}
	}

	// A function taking any is still a function.
	if _, err := typelabel.Parse("f: (x: any) => void"); err != nil {
		t.Errorf("Parse of function with any parameter: %v", err)
	}
}

func TestParseElement(t *testing.T) {
	tests := []struct {
		label string
		want  []term
	}{
		{"...xs: number[]", []term{{Name: "number"}}},
		{"...xs: (Foo | string)[]", []term{{Name: "Foo", Constructible: true}, {Name: "string"}}},
		{"...xs: Array<Foo[]>", []term{{Name: "Foo", Dims: 1, IsArray: true, Constructible: true}}},
		{"...xs: T", []term{{Name: "T", Constructible: true}}},
	}
	for _, test := range tests {
		terms, err := typelabel.ParseElement(test.label)
		if err != nil {
			t.Errorf("ParseElement(%q) failed: %v", test.label, err)
			continue
		}
		if diff := cmp.Diff(test.want, shapes(terms), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ParseElement(%q) mismatch (-want +got):\n%s", test.label, diff)
		}
	}
}

// Order is preserved and undefined never yields a term, wherever it is.
func TestParseUnionOrder(t *testing.T) {
	terms, err := typelabel.Parse("x: undefined | C | undefined | b | A[] | undefined")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, t := range terms {
		names = append(names, t.Name)
	}
	if diff := cmp.Diff([]string{"C", "b", "A"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
