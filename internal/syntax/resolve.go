// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Resolve returns the most specific node containing offset, or nil if
// the offset lies outside the tree.
//
// The walk is depth-first, children before siblings, and only enters a
// node whose start is at or before offset. The last containing node
// visited wins, so where two tokens abut (the end of one identifier is
// the start of the next token) the later one is returned.
func Resolve(root *Node, offset int) *Node {
	var last *Node
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.Start > offset {
			return
		}
		if n.Contains(offset) {
			last = n
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	if root != nil {
		visit(root)
	}
	return last
}
