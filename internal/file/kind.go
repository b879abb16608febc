// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package file

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind describes the kind of the file in question.
type Kind int

const (
	// UnknownKind is a file type we don't know about.
	UnknownKind = Kind(iota)

	// TypeScript is a .ts, .mts or .cts source file.
	TypeScript
	// TSX is a TypeScript source file containing JSX.
	TSX
)

func (k Kind) String() string {
	switch k {
	case TypeScript:
		return "typescript"
	case TSX:
		return "typescriptreact"
	default:
		return fmt.Sprintf("internal error: unknown file kind %d", k)
	}
}

// LanguageID returns the LSP language identifier for the kind.
func (k Kind) LanguageID() string {
	if k == UnknownKind {
		return ""
	}
	return k.String()
}

// KindForLang returns the file kind associated with the given language ID
// (from protocol.TextDocumentItem.LanguageID), or UnknownKind if the language
// ID is not recognized.
func KindForLang(langID string) Kind {
	switch langID {
	case "typescript":
		return TypeScript
	case "typescriptreact":
		return TSX
	default:
		return UnknownKind
	}
}

// KindForPath returns the file kind implied by the extension of path.
// Declaration files (.d.ts) are reported as UnknownKind: nothing is ever
// synthesized into them.
func KindForPath(path string) Kind {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".d.ts") {
		return UnknownKind
	}
	switch filepath.Ext(base) {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		return UnknownKind
	}
}
