// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import "fmt"

// Message is the user-facing text of every synthesis failure.
const Message = "Could not find type information at caret position."

// A Reason says why synthesis failed. It is for logs; the user sees
// Message whatever the reason.
type Reason int

const (
	NoSourceTree Reason = iota + 1
	NotIdentifier
	NoSignatureHelp
	AnyType
	NoCandidates
	NoEnclosingStatement
)

func (r Reason) String() string {
	switch r {
	case NoSourceTree:
		return "no source tree"
	case NotIdentifier:
		return "not an identifier"
	case NoSignatureHelp:
		return "no signature help"
	case AnyType:
		return "parameter type is any"
	case NoCandidates:
		return "no candidate types"
	case NoEnclosingStatement:
		return "no enclosing statement"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// A Failure is the error returned when no snippet can be synthesized at
// the caret. Synthesis is all or nothing: a Failure carries no partial
// result.
type Failure struct {
	Reason Reason
	Err    error // underlying cause, if any
}

func (f *Failure) Error() string { return Message }

func (f *Failure) Unwrap() error { return f.Err }

// Detail describes the failure for logs.
func (f *Failure) Detail() string {
	if f.Err != nil {
		return fmt.Sprintf("%v: %v", f.Reason, f.Err)
	}
	return f.Reason.String()
}
