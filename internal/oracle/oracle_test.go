// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"errors"
	"testing"
)

func TestActiveParameter(t *testing.T) {
	overloads := []Overload{
		{Label: "f(a: string): void", Params: []Param{{"a: string"}}},
		{Label: "f(a: number, b: Foo): void", Params: []Param{{"a: number"}, {"b: Foo"}}},
		{Label: "f(a: boolean, ...rest: Bar[]): void", Params: []Param{{"a: boolean"}, {"...rest: Bar[]"}}},
	}
	tests := []struct {
		selected, active int
		want             string
		err              error
	}{
		{0, 0, "a: string", nil},
		{1, 1, "b: Foo", nil},
		{1, 2, "", ErrNoParameter},
		{7, 0, "a: string", nil}, // selection out of range
		{2, 1, "...rest: Bar[]", nil},
		{2, 5, "...rest: Bar[]", nil},
		{0, -1, "", ErrNoParameter},
	}
	for _, test := range tests {
		h := &SignatureHelp{Overloads: overloads, Selected: test.selected, ActiveParam: test.active}
		got, err := h.ActiveParameter()
		if !errors.Is(err, test.err) {
			t.Errorf("ActiveParameter(sel=%d, active=%d) error = %v, want %v", test.selected, test.active, err, test.err)
			continue
		}
		if got.Label != test.want {
			t.Errorf("ActiveParameter(sel=%d, active=%d) = %q, want %q", test.selected, test.active, got.Label, test.want)
		}
	}

	var none *SignatureHelp
	if _, err := none.ActiveParameter(); !errors.Is(err, ErrNoCallContext) {
		t.Errorf("nil help: got %v, want ErrNoCallContext", err)
	}
}
