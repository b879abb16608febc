// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Matcher selects the nearest ancestor of a given kind within MaxHops
// parent steps of the starting node. MaxHops <= 0 means unbounded.
type Matcher struct {
	Kind    Kind
	MaxHops int
}

// Enclosing tries each matcher in order, each walking up from n afresh,
// and returns the first node matched along with its matcher.
// It returns nil if no matcher matches.
func Enclosing(n *Node, matchers []Matcher) (*Node, Matcher) {
	for _, m := range matchers {
		for cur, hops := n, 0; cur != nil; cur, hops = cur.Parent, hops+1 {
			if m.MaxHops > 0 && hops > m.MaxHops {
				break
			}
			if cur.Kind == m.Kind {
				return cur, m
			}
		}
	}
	return nil, Matcher{}
}
