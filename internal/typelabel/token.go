// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typelabel

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Kind is the kind of a label token.
type Kind int

const (
	Other       Kind = iota
	Name             // identifier or keyword
	Number           // numeric literal
	String           // quoted literal, including template literals
	ArraySuffix      // []
	Union            // |
	Arrow            // =>
	Colon            // :
	Question         // ?
	Ellipsis         // ...
	Comma            // ,
	Dot              // .
	LParen           // (
	RParen           // )
	LAngle           // <
	RAngle           // >
	LBrace           // {
	RBrace           // }
	LBracket         // [
	RBracket         // ]
)

var kindNames = [...]string{
	Other:       "Other",
	Name:        "Name",
	Number:      "Number",
	String:      "String",
	ArraySuffix: "ArraySuffix",
	Union:       "Union",
	Arrow:       "Arrow",
	Colon:       "Colon",
	Question:    "Question",
	Ellipsis:    "Ellipsis",
	Comma:       "Comma",
	Dot:         "Dot",
	LParen:      "LParen",
	RParen:      "RParen",
	LAngle:      "LAngle",
	RAngle:      "RAngle",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
}

func (k Kind) String() string {
	if 0 <= int(k) && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// opens reports whether k opens a bracketed group, and closes whether
// it ends one.
func (k Kind) opens() bool { return k == LParen || k == LAngle || k == LBrace || k == LBracket }
func (k Kind) closes() bool { return k == RParen || k == RAngle || k == RBrace || k == RBracket }

// A Token is a lexical element of a type label. Pos and End are byte
// offsets into the label.
type Token struct {
	Kind Kind
	Text string
	Pos  int
	End  int
}

func (t Token) String() string {
	return fmt.Sprintf("%v %q", t.Kind, t.Text)
}

// Tokenize splits a type label into tokens. White space separates tokens
// and is otherwise ignored. Tokenize never fails: characters it does not
// recognize become Other tokens.
func Tokenize(label string) []Token {
	var toks []Token
	emit := func(kind Kind, pos, end int) {
		toks = append(toks, Token{Kind: kind, Text: label[pos:end], Pos: pos, End: end})
	}
	for i := 0; i < len(label); {
		r, w := utf8.DecodeRuneInString(label[i:])
		switch {
		case unicode.IsSpace(r):
			i += w

		case isIdentStart(r):
			j := i + w
			for j < len(label) {
				r, w := utf8.DecodeRuneInString(label[j:])
				if !isIdentPart(r) {
					break
				}
				j += w
			}
			emit(Name, i, j)
			i = j

		case '0' <= r && r <= '9':
			j := i + 1
			for j < len(label) && (isDigit(label[j]) || label[j] == '.' || label[j] == '_' || label[j] == 'n') {
				j++
			}
			emit(Number, i, j)
			i = j

		case r == '\'' || r == '"' || r == '`':
			j := i + 1
			for j < len(label) && label[j] != byte(r) {
				if label[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, len(label)) // closing quote, if any
			emit(String, i, j)
			i = j

		case hasPrefix(label, i, "..."):
			emit(Ellipsis, i, i+3)
			i += 3

		case hasPrefix(label, i, "=>"):
			emit(Arrow, i, i+2)
			i += 2

		case r == '[':
			j := i + 1
			for j < len(label) && label[j] == ' ' {
				j++
			}
			if j < len(label) && label[j] == ']' {
				emit(ArraySuffix, i, j+1)
				i = j + 1
			} else {
				emit(LBracket, i, i+1)
				i++
			}

		default:
			kind := Other
			switch r {
			case '|':
				kind = Union
			case ':':
				kind = Colon
			case '?':
				kind = Question
			case ',':
				kind = Comma
			case '.':
				kind = Dot
			case '(':
				kind = LParen
			case ')':
				kind = RParen
			case '<':
				kind = LAngle
			case '>':
				kind = RAngle
			case '{':
				kind = LBrace
			case '}':
				kind = RBrace
			case ']':
				kind = RBracket
			}
			emit(kind, i, i+w)
			i += w
		}
	}
	return toks
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func hasPrefix(s string, i int, prefix string) bool {
	return len(s)-i >= len(prefix) && s[i:i+len(prefix)] == prefix
}
