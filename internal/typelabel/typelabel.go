// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typelabel parses the parameter labels reported by a TypeScript
// language server, such as "options?: Options | string[]", into the
// candidate types a value could be synthesized for.
//
// A label is tokenized first; the shape rules then work on tokens, with
// bracket nesting respected, so that a union inside a generic argument or
// a function result is not mistaken for a top-level alternative.
package typelabel

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrAnyType reports a label whose type is any, which carries no
	// information to synthesize a value from.
	ErrAnyType = errors.New("type is any")

	// ErrEmpty reports a label with no candidate types.
	ErrEmpty = errors.New("no candidate types")
)

// A Term is one alternative of a union type.
type Term struct {
	Raw  string // the alternative as it appears in the label
	Name string // the type, without qualifier or array markers

	IsArray bool
	Dims    int // number of array dimensions; zero unless IsArray

	IsFunction      bool
	IsConstructible bool

	// Function types only.
	TypeParams string  // e.g. "<T>", or empty
	Params     []Param // parameters, in order
	Result     string  // result type
}

// A Param is one parameter of a function type.
type Param struct {
	Text     string // as written, e.g. "b?: string"
	Name     string // binding name or destructuring pattern
	Optional bool
	Rest     bool
}

// FuncText returns the parameter list of a function type, with the type
// parameters. If annotated is false, parameter types (and type
// parameters) are dropped, leaving the bare names.
func (t Term) FuncText(annotated bool) string {
	var b strings.Builder
	if annotated {
		b.WriteString(t.TypeParams)
	}
	b.WriteByte('(')
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		switch {
		case annotated:
			b.WriteString(p.Text)
		case p.Rest:
			b.WriteString("..." + p.Name)
		default:
			b.WriteString(p.Name)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Parse parses a parameter label into its candidate types, in label
// order. Alternatives naming undefined are dropped.
//
// It returns ErrAnyType if the type is any, and ErrEmpty if no
// alternative remains.
func Parse(label string) ([]Term, error) {
	return parse(label, false)
}

// ParseElement is like Parse, for the label of a rest parameter: the
// candidates are those of the element type. "...xs: (A | B)[]" yields A
// and B.
func ParseElement(label string) ([]Term, error) {
	return parse(label, true)
}

func parse(label string, elem bool) ([]Term, error) {
	p := &parser{src: label}
	toks := Tokenize(label)
	if elem {
		toks = elementOf(stripQualifier(toks))
	}
	terms := p.union(toks)
	for _, t := range terms {
		if t.Name == "any" {
			return nil, ErrAnyType
		}
	}
	if len(terms) == 0 {
		return nil, ErrEmpty
	}
	return terms, nil
}

type parser struct {
	src string
}

// text returns the source text spanned by toks.
func (p *parser) text(toks []Token) string {
	if len(toks) == 0 {
		return ""
	}
	return p.src[toks[0].Pos:toks[len(toks)-1].End]
}

// union splits toks into alternatives and classifies each.
func (p *parser) union(toks []Token) []Term {
	var terms []Term
	for _, alt := range splitUnion(toks) {
		terms = append(terms, p.alternative(alt)...)
	}
	return terms
}

// alternative classifies one union alternative. A parenthesized union
// contributes each of its alternatives.
func (p *parser) alternative(toks []Token) []Term {
	raw := p.text(toks)
	toks = stripQualifier(toks)
	toks = trimKeyword(toks, "readonly")
	if len(toks) == 0 {
		return nil
	}
	if inner, ok := parenthesized(toks); ok {
		return p.union(inner)
	}
	if len(toks) == 1 && toks[0].Kind == Name && toks[0].Text == "undefined" {
		return nil
	}

	term := Term{Raw: raw}
	if arrow := topLevel(toks, Arrow); arrow >= 0 {
		p.function(&term, toks, arrow)
		return []Term{term}
	}

	core, dims := arrayOf(toks)
	if dims > 0 {
		// The element type decides the shape: Foo[] is constructible.
		if inner, ok := parenthesized(core); ok {
			if elems := p.union(inner); len(elems) > 0 {
				elem := elems[0]
				elem.Raw = raw
				elem.Dims += dims
				elem.IsArray = true
				return []Term{elem}
			}
		}
		term.IsArray, term.Dims = true, dims
	}
	term.Name = p.text(core)
	term.IsConstructible = constructible(core)
	return []Term{term}
}

// function fills in a function type term. arrow is the index of the
// top-level arrow in toks.
func (p *parser) function(term *Term, toks []Token, arrow int) {
	term.IsFunction = true
	term.Name = p.text(toks)
	term.Result = p.text(toks[arrow+1:])

	head := trimKeyword(toks[:arrow], "new")
	if len(head) > 0 && head[0].Kind == LAngle {
		if end := closing(head, 0); end > 0 {
			term.TypeParams = p.text(head[:end+1])
			head = head[end+1:]
		}
	}
	inner, ok := parenthesized(head)
	if !ok {
		return
	}
	for _, toks := range split(inner, Comma) {
		if len(toks) == 0 {
			continue
		}
		term.Params = append(term.Params, p.param(toks))
	}
}

func (p *parser) param(toks []Token) Param {
	param := Param{Text: p.text(toks)}
	if toks[0].Kind == Ellipsis {
		param.Rest = true
		toks = toks[1:]
	}
	end := len(toks)
	if colon := topLevel(toks, Colon); colon >= 0 {
		end = colon
	}
	name := toks[:end]
	if n := len(name); n > 0 && name[n-1].Kind == Question {
		param.Optional = true
		name = name[:n-1]
	}
	param.Name = p.text(name)
	return param
}

// constructible reports whether a type names a class: its first name,
// or any dotted segment of a qualified name, starts with an upper-case
// letter. Type arguments are not considered.
func constructible(toks []Token) bool {
	for i, t := range toks {
		if t.Kind == LAngle {
			break
		}
		if t.Kind != Name {
			continue
		}
		if i == 0 || toks[i-1].Kind == Dot {
			r, _ := utf8.DecodeRuneInString(t.Text)
			if unicode.IsUpper(r) {
				return true
			}
		}
	}
	return false
}

// -- token list helpers --

// splitUnion splits toks at top-level union separators. Splitting stops
// at a top-level arrow: the rest is the result type of a function.
func splitUnion(toks []Token) [][]Token {
	var (
		alts  [][]Token
		depth int
		start int
	)
	for i, t := range toks {
		switch {
		case t.Kind.opens():
			depth++
		case t.Kind.closes():
			depth--
		case depth == 0 && t.Kind == Arrow:
			return append(alts, toks[start:])
		case depth == 0 && t.Kind == Union:
			if i > start {
				alts = append(alts, toks[start:i])
			}
			start = i + 1
		}
	}
	if start < len(toks) {
		alts = append(alts, toks[start:])
	}
	return alts
}

// split splits toks at top-level tokens of kind sep.
func split(toks []Token, sep Kind) [][]Token {
	var (
		parts [][]Token
		depth int
		start int
	)
	for i, t := range toks {
		switch {
		case t.Kind.opens():
			depth++
		case t.Kind.closes():
			depth--
		case depth == 0 && t.Kind == sep:
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	return append(parts, toks[start:])
}

// topLevel returns the index of the first token of kind k outside any
// brackets, or -1.
func topLevel(toks []Token, k Kind) int {
	depth := 0
	for i, t := range toks {
		switch {
		case t.Kind.opens():
			depth++
		case t.Kind.closes():
			depth--
		case depth == 0 && t.Kind == k:
			return i
		}
	}
	return -1
}

// closing returns the index of the token closing the group opened at
// toks[open], or -1.
func closing(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch {
		case toks[i].Kind.opens():
			depth++
		case toks[i].Kind.closes():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parenthesized reports whether toks is entirely enclosed in one pair of
// parentheses, and returns the tokens between them.
func parenthesized(toks []Token) ([]Token, bool) {
	if len(toks) < 2 || toks[0].Kind != LParen || closing(toks, 0) != len(toks)-1 {
		return nil, false
	}
	return toks[1 : len(toks)-1], true
}

// stripQualifier removes a leading parameter qualifier: an optional
// "...", a name or destructuring pattern, an optional "?", and a colon.
func stripQualifier(toks []Token) []Token {
	i := 0
	if i < len(toks) && toks[i].Kind == Ellipsis {
		i++
	}
	if i >= len(toks) {
		return toks
	}
	switch toks[i].Kind {
	case Name:
		i++
	case LBrace, LBracket:
		end := closing(toks, i)
		if end < 0 {
			return toks
		}
		i = end + 1
	default:
		return toks
	}
	if i < len(toks) && toks[i].Kind == Question {
		i++
	}
	if i < len(toks) && toks[i].Kind == Colon {
		return toks[i+1:]
	}
	return toks
}

// trimKeyword removes a leading keyword used as a type modifier.
func trimKeyword(toks []Token, keyword string) []Token {
	if len(toks) > 1 && toks[0].Kind == Name && toks[0].Text == keyword {
		return toks[1:]
	}
	return toks
}

// arrayOf strips array markers from a type: trailing "[]" suffixes and
// Array<T> or ReadonlyArray<T> wrappers. It returns the element type and
// the number of dimensions removed.
func arrayOf(toks []Token) ([]Token, int) {
	dims := 0
	for {
		switch n := len(toks); {
		case n > 1 && toks[n-1].Kind == ArraySuffix:
			toks = toks[:n-1]
		case n > 3 && toks[0].Kind == Name &&
			(toks[0].Text == "Array" || toks[0].Text == "ReadonlyArray") &&
			toks[1].Kind == LAngle && closing(toks, 1) == n-1:
			toks = toks[2 : n-1]
		default:
			return toks, dims
		}
		dims++
		toks = trimKeyword(toks, "readonly")
	}
}

// elementOf returns the element type of an array type, for a rest
// parameter. A type that is not an array is returned unchanged.
func elementOf(toks []Token) []Token {
	toks = trimKeyword(toks, "readonly")
	switch n := len(toks); {
	case n > 1 && toks[n-1].Kind == ArraySuffix:
		return toks[:n-1]
	case n > 3 && toks[0].Kind == Name &&
		(toks[0].Text == "Array" || toks[0].Text == "ReadonlyArray") &&
		toks[1].Kind == LAngle && closing(toks, 1) == n-1:
		return toks[2 : n-1]
	}
	return toks
}
