// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fromusage/fromusage/internal/file"
	"github.com/fromusage/fromusage/internal/protocol"
	"github.com/fromusage/fromusage/internal/snippet"
	"github.com/fromusage/fromusage/internal/synth"
)

var errNotTypeScript = errors.New(`"Create From Usage" only supports TypeScript files.`)

type synthFlags struct {
	inline bool
	json   bool
	apply  bool
	stdin  bool
}

func (app *Application) synthCommand() *cobra.Command {
	var flags synthFlags
	cmd := &cobra.Command{
		Use:   "synth file.ts:line:col | file.ts:#offset",
		Short: "Synthesize a value for the identifier at a position",
		Long: `Synthesize a value for the identifier at a position.

By default the snippet declares the identifier as a const before the
statement using it, and the statement is re-emitted with the following
argument as a placeholder. With -inline the snippet is a value that
replaces the identifier.

The snippet is printed in LSP snippet syntax. With -apply, the file is
rewritten with every placeholder at its default value instead.

Examples:
  $ fromusage synth src/app.ts:12:17
  $ fromusage synth -inline src/app.ts:#240
  $ cat src/app.ts | fromusage synth -stdin -apply src/app.ts:12:17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSynth(cmd.Context(), args[0], flags)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.inline, "inline", false, "replace the identifier with a value instead of declaring it")
	f.BoolVar(&flags.json, "json", false, "print the result as JSON")
	f.BoolVar(&flags.apply, "apply", false, "write the plain-text expansion into the file")
	f.BoolVar(&flags.stdin, "stdin", false, "read the unsaved file contents from standard input")
	cmd.MarkFlagsMutuallyExclusive("json", "apply")
	return cmd
}

func (app *Application) runSynth(ctx context.Context, arg string, flags synthFlags) error {
	loc, err := parseLocation(arg)
	if err != nil {
		return err
	}
	var buffer []byte
	if flags.stdin {
		if buffer, err = io.ReadAll(app.Stdin); err != nil {
			return err
		}
	}
	mode := synth.Declaration
	if flags.inline {
		mode = synth.Inline
	}

	c, err := app.newCreator(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			app.logger.Warn("closing session", "err", err)
		}
	}()

	res, content, err := app.synthesize(ctx, c, loc, mode, buffer)
	if err != nil {
		return err
	}

	switch {
	case flags.json:
		enc := json.NewEncoder(app.Stdout)
		enc.SetIndent("", "\t")
		return enc.Encode(newOutput(loc.Path, res))
	case flags.apply:
		edited := slices.Concat(content[:res.Start], []byte(res.Snippet.PlainText()), content[res.End:])
		if flags.stdin {
			_, err := app.Stdout.Write(edited)
			return err
		}
		fi, err := os.Stat(loc.Path)
		if err != nil {
			return err
		}
		return os.WriteFile(loc.Path, edited, fi.Mode().Perm())
	default:
		if app.Verbose {
			fmt.Fprintf(app.Stderr, "signature: %s\nparameter: %s\n", res.Signature, res.Param)
		}
		fmt.Fprintln(app.Stdout, res.Text)
		return nil
	}
}

// synthesize resolves loc against the file contents (buffer, if
// non-nil) and synthesizes at it. It also returns the contents used.
func (app *Application) synthesize(ctx context.Context, c *synth.Creator, loc location, mode synth.Mode, buffer []byte) (*synth.Result, []byte, error) {
	if file.KindForPath(loc.Path) == file.UnknownKind {
		return nil, nil, errNotTypeScript
	}
	content := buffer
	if content == nil {
		data, err := os.ReadFile(loc.Path)
		if err != nil {
			return nil, nil, err
		}
		content = data
	}
	path, err := filepath.Abs(loc.Path)
	if err != nil {
		return nil, nil, err
	}
	offset, err := loc.offset(protocol.NewMapper(protocol.URIFromPath(path), content))
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", loc, err)
	}
	res, err := c.SynthesizeAtCaret(ctx, synth.Request{
		Path:   path,
		Offset: offset,
		Mode:   mode,
		Buffer: buffer,
	})
	if err != nil {
		return nil, nil, err
	}
	return res, content, nil
}

// output is the JSON form of a synthesis result, printed by synth -json
// and returned by the MCP tool.
type output struct {
	URI       protocol.DocumentURI `json:"uri"`
	Range     protocol.Range       `json:"range" jsonschema:"the range replaced by the snippet"`
	Snippet   string               `json:"snippet" jsonschema:"the snippet in LSP snippet syntax"`
	Text      string               `json:"text" jsonschema:"the snippet with every placeholder at its default"`
	Param     string               `json:"param,omitempty" jsonschema:"label of the parameter the value is for"`
	Signature string               `json:"signature,omitempty" jsonschema:"label of the called signature"`
	Defaults  []string             `json:"defaults,omitempty" jsonschema:"default text of each tab stop, in order"`
}

func newOutput(path string, res *synth.Result) output {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	out := output{
		URI:       protocol.URIFromPath(abs),
		Range:     res.Range,
		Snippet:   res.Text,
		Text:      res.Snippet.PlainText(),
		Param:     res.Param,
		Signature: res.Signature,
	}
	for _, seg := range res.Snippet.Segments() {
		switch seg.Kind {
		case snippet.Placeholder, snippet.Tabstop:
			out.Defaults = append(out.Defaults, seg.Text)
		case snippet.Choice:
			if len(seg.Choices) == 0 {
				continue
			}
			out.Defaults = append(out.Defaults, seg.Choices[0])
		}
	}
	return out
}
