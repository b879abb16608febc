// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth synthesizes a value for an identifier used as a call
// argument, from the type the call expects for it.
//
// Given a caret on an undeclared identifier such as opts in
//
//	render(opts, 1)
//
// where render's first parameter is "options: Options | string", it
// produces either a declaration placed before the statement
//
//	const opts = ${1:new Options();}
//	${2:'string';}
//
//	render(opts, ${3:1})
//
// or, in inline mode, a value replacing the identifier itself:
//
//	${1|new Options(),'string'|}
//
// Types come from an oracle.Oracle; nothing here infers them.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fromusage/fromusage/internal/cache"
	"github.com/fromusage/fromusage/internal/oracle"
	"github.com/fromusage/fromusage/internal/protocol"
	"github.com/fromusage/fromusage/internal/settings"
	"github.com/fromusage/fromusage/internal/snippet"
	"github.com/fromusage/fromusage/internal/syntax"
	"github.com/fromusage/fromusage/internal/typelabel"
)

// Mode selects what is synthesized.
type Mode int

const (
	// Declaration synthesizes a const declaration inserted before the
	// enclosing statement.
	Declaration Mode = iota
	// Inline synthesizes a value that replaces the identifier.
	Inline
)

func (m Mode) String() string {
	if m == Inline {
		return "inline"
	}
	return "declaration"
}

// A Request asks for a snippet at a caret.
type Request struct {
	Path   string
	Offset int // byte offset of the caret
	Mode   Mode

	// Buffer, if non-nil, is the unsaved content of Path in the editor.
	Buffer []byte
}

// A Result is a synthesized snippet and where it goes.
type Result struct {
	Snippet *snippet.Builder
	Text    string         // LSP snippet syntax
	Range   protocol.Range // range replaced by the snippet
	Start   int            // byte offsets of Range
	End     int

	Name      string // the identifier
	Param     string // label of the parameter the value is for
	Signature string // label of the selected overload
	Terms     []typelabel.Term
}

// A Creator synthesizes snippets. It owns the session state shared by
// its requests, and releases it on Close.
//
// Requests are serialized, so a Creator may be used from any goroutine.
type Creator struct {
	session *cache.Session
	oracle  oracle.Oracle
	opts    *settings.Options
	logger  *slog.Logger

	mu sync.Mutex
}

// New returns a Creator consulting o. The Creator takes ownership of
// session and o. Nil opts means settings.Default().
func New(session *cache.Session, o oracle.Oracle, opts *settings.Options, logger *slog.Logger) *Creator {
	if opts == nil {
		opts = settings.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Creator{session: session, oracle: o, opts: opts, logger: logger}
}

// SynthesizeAtCaret synthesizes a snippet for the identifier at the
// caret. Any failure is a *Failure.
func (c *Creator) SynthesizeAtCaret(ctx context.Context, req Request) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := filepath.Abs(req.Path)
	if err != nil {
		return nil, &Failure{Reason: NoSourceTree, Err: err}
	}
	if req.Buffer != nil && c.session != nil {
		c.session.Source.SetOverlay(path, req.Buffer)
	}

	res, err := c.synthesize(ctx, path, req)
	if err != nil {
		var failure *Failure
		if errors.As(err, &failure) {
			c.logger.Info("synthesis failed", "path", path, "offset", req.Offset, "reason", failure.Detail())
		}
		return nil, err
	}
	c.logger.Debug("synthesized", "path", path, "offset", req.Offset, "mode", req.Mode, "param", res.Param, "range", res.Range, "placeholders", res.Snippet.Placeholders())
	return res, nil
}

func (c *Creator) synthesize(ctx context.Context, path string, req Request) (*Result, error) {
	f, err := c.oracle.SourceTree(ctx, path)
	if err != nil {
		return nil, &Failure{Reason: NoSourceTree, Err: err}
	}
	ident := syntax.Resolve(f.Root, req.Offset)
	if ident == nil || ident.Kind != syntax.Identifier {
		return nil, &Failure{Reason: NotIdentifier}
	}

	help, err := c.oracle.SignatureHelp(ctx, path, req.Offset)
	if err != nil {
		return nil, &Failure{Reason: NoSignatureHelp, Err: err}
	}
	if help == nil {
		return nil, &Failure{Reason: NoSignatureHelp, Err: oracle.ErrNoCallContext}
	}
	return Synthesize(f, ident, help, req.Mode, c.opts)
}

// Synthesize builds the snippet for ident, the identifier at the caret,
// given the signature help of the call around it. Nil opts means
// settings.Default().
func Synthesize(f *syntax.File, ident *syntax.Node, help *oracle.SignatureHelp, mode Mode, opts *settings.Options) (*Result, error) {
	if opts == nil {
		opts = settings.Default()
	}
	param, err := help.ActiveParameter()
	if err != nil {
		return nil, &Failure{Reason: NoSignatureHelp, Err: err}
	}
	parse := typelabel.Parse
	if param.Rest() {
		parse = typelabel.ParseElement
	}
	terms, err := parse(param.Label)
	switch {
	case errors.Is(err, typelabel.ErrAnyType):
		return nil, &Failure{Reason: AnyType, Err: err}
	case err != nil:
		return nil, &Failure{Reason: NoCandidates, Err: err}
	}

	stmt, _ := syntax.Enclosing(ident, opts.EnclosingHops.Matchers())
	if stmt == nil {
		return nil, &Failure{Reason: NoEnclosingStatement}
	}

	var b *snippet.Builder
	switch mode {
	case Inline:
		b = InlineSnippet(terms, opts)
	default:
		b = DeclarationSnippet(f, ident, stmt, terms, help.ActiveParam, opts)
	}
	start, end := ReplacementRange(f, ident, stmt, mode)
	rng, err := f.Mapper.OffsetRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("replacement range: %w", err)
	}
	return &Result{
		Snippet:   b,
		Text:      b.String(),
		Range:     rng,
		Start:     start,
		End:       end,
		Name:      f.Text(ident),
		Param:     param.Label,
		Signature: help.Overload().Label,
		Terms:     terms,
	}, nil
}

// Close releases the oracle and the session.
func (c *Creator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	if c.oracle != nil {
		errs = append(errs, c.oracle.Close())
	}
	if c.session != nil {
		errs = append(errs, c.session.Close())
	}
	return errors.Join(errs...)
}
