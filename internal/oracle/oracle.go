// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oracle defines the static-analysis service the synthesizer
// consults: it supplies syntax trees and the signature help of the call
// surrounding a position. The synthesizer never infers types itself.
package oracle

import (
	"context"
	"errors"
	"strings"

	"github.com/fromusage/fromusage/internal/syntax"
)

var (
	// ErrNoCallContext reports that a position is not inside the
	// argument list of a call.
	ErrNoCallContext = errors.New("no call context")

	// ErrNoParameter reports that the active argument has no matching
	// parameter in the selected signature.
	ErrNoParameter = errors.New("no parameter for active argument")
)

// An Oracle answers questions about the current contents of source files.
type Oracle interface {
	// SourceTree returns the syntax tree of path at its current revision.
	SourceTree(ctx context.Context, path string) (*syntax.File, error)

	// SignatureHelp returns the signatures of the call whose argument
	// list contains offset, or (nil, nil) if there is no such call.
	SignatureHelp(ctx context.Context, path string, offset int) (*SignatureHelp, error)

	// Close releases the resources held by the oracle.
	Close() error
}

// SignatureHelp describes the candidate overloads of a call, the one
// the oracle considers the best match, and the argument under the
// position.
type SignatureHelp struct {
	Overloads   []Overload
	Selected    int // index into Overloads
	ActiveParam int // index of the argument under the position
}

// An Overload is one signature of a callable.
type Overload struct {
	Label  string // e.g. "f(x: number, y?: string): void"
	Params []Param
}

// A Param is one parameter of an overload.
type Param struct {
	Label string // e.g. "y?: string"
}

// Rest reports whether p is a rest parameter.
func (p Param) Rest() bool {
	return strings.HasPrefix(p.Label, "...")
}

// ActiveParameter returns the parameter of the selected overload that
// receives the active argument, falling back to the first overload when
// the selection is out of range. A rest parameter receives every
// argument from its position on.
func (h *SignatureHelp) ActiveParameter() (Param, error) {
	if h == nil || len(h.Overloads) == 0 {
		return Param{}, ErrNoCallContext
	}
	o := h.Overloads[0]
	if 0 <= h.Selected && h.Selected < len(h.Overloads) {
		o = h.Overloads[h.Selected]
	}
	i := h.ActiveParam
	if n := len(o.Params); n > 0 && i >= n && o.Params[n-1].Rest() {
		i = n - 1
	}
	if i < 0 || i >= len(o.Params) {
		return Param{}, ErrNoParameter
	}
	return o.Params[i], nil
}

// Overload returns the selected overload, or the first.
func (h *SignatureHelp) Overload() Overload {
	if h == nil || len(h.Overloads) == 0 {
		return Overload{}
	}
	if 0 <= h.Selected && h.Selected < len(h.Overloads) {
		return h.Overloads[h.Selected]
	}
	return h.Overloads[0]
}
