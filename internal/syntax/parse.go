// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/fromusage/fromusage/internal/file"
)

// kinds maps tree-sitter TypeScript node types onto Kinds.
var kinds = map[string]Kind{
	"identifier":           Identifier,
	"lexical_declaration":  DeclarationList,
	"variable_declaration": DeclarationList,
	"return_statement":     ReturnStatement,
	"expression_statement": ExpressionStatement,
	"call_expression":      CallExpression,
}

// Parse parses src as a TypeScript (or TSX) file.
//
// Parse succeeds on sources with syntax errors; the recovered tree is
// returned with ParseErrors set.
func Parse(ctx context.Context, kind file.Kind, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	switch kind {
	case file.TSX:
		parser.SetLanguage(tsx.GetLanguage())
	case file.TypeScript:
		parser.SetLanguage(typescript.GetLanguage())
	default:
		return nil, fmt.Errorf("cannot parse %s: unsupported file kind %v", path, kind)
	}

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parsing %s: no root node", path)
	}
	f := NewFile(path, src, convert(root, nil))
	f.ParseErrors = root.HasError()
	return f, nil
}

// convert copies the tree-sitter tree rooted at n, anonymous tokens
// included, so that the result outlives the parser.
func convert(n *sitter.Node, parent *Node) *Node {
	typ := n.Type()
	node := &Node{
		Kind:   kinds[typ],
		Type:   typ,
		Start:  int(n.StartByte()),
		End:    int(n.EndByte()),
		Parent: parent,
	}
	count := int(n.ChildCount())
	if count > 0 {
		node.Children = make([]*Node, 0, count)
	}
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil {
			node.Children = append(node.Children, convert(c, node))
		}
	}
	return node
}
