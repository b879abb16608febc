// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the syntax tree consumed by the synthesizer and
// the queries over it: the node under a position, and the statement
// enclosing a node.
package syntax

import (
	"fmt"
	"strings"

	"github.com/fromusage/fromusage/internal/protocol"
)

// Kind classifies the nodes the synthesizer cares about. Every other node
// has kind Other; its grammar type is still available as Node.Type.
type Kind int

const (
	Other Kind = iota
	Identifier
	DeclarationList
	ReturnStatement
	ExpressionStatement
	CallExpression
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case DeclarationList:
		return "DeclarationList"
	case ReturnStatement:
		return "ReturnStatement"
	case ExpressionStatement:
		return "ExpressionStatement"
	case CallExpression:
		return "CallExpression"
	default:
		return "Other"
	}
}

// A Node is one node of a syntax tree. Start and End are byte offsets
// into the file content; End is exclusive.
type Node struct {
	Kind     Kind
	Type     string // grammar node type, e.g. "lexical_declaration"
	Start    int
	End      int
	Parent   *Node
	Children []*Node
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[%d:%d]", n.Type, n.Start, n.End)
}

// Contains reports whether offset lies within the node, counting both
// ends: a caret just after the last character is still "in" the node.
func (n *Node) Contains(offset int) bool {
	return n.Start <= offset && offset <= n.End
}

// A File is a parsed source file.
type File struct {
	Path    string
	Src     []byte
	Root    *Node
	Mapper  *protocol.Mapper
	Version int // tracker version the tree was parsed at, if known

	// ParseErrors reports whether the parser had to recover from syntax
	// errors. Edits in progress usually have some.
	ParseErrors bool
}

// NewFile returns a File for src rooted at root.
func NewFile(path string, src []byte, root *Node) *File {
	return &File{
		Path:   path,
		Src:    src,
		Root:   root,
		Mapper: protocol.NewMapper(protocol.URIFromPath(path), src),
	}
}

// Text returns the source text of n.
func (f *File) Text(n *Node) string {
	return string(f.Src[n.Start:n.End])
}

// Dump returns an indented outline of the tree, for debugging.
func (f *File) Dump() string {
	var b strings.Builder
	var dump func(n *Node, depth int)
	dump = func(n *Node, depth int) {
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), n)
		if len(n.Children) == 0 {
			fmt.Fprintf(&b, " %q", f.Text(n))
		}
		b.WriteByte('\n')
		for _, c := range n.Children {
			dump(c, depth+1)
		}
	}
	if f.Root != nil {
		dump(f.Root, 0)
	}
	return b.String()
}
