// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import "fmt"

// Format implements fmt.Formatter, printing 1-based line:col pairs as
// editors display them.
func (r Range) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v-%v", r.Start, r.End)
}

// Format implements fmt.Formatter.
func (p Position) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%d:%d", p.Line+1, p.Character+1)
}
