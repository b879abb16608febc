// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings defines the user-configurable options and how they
// are loaded from a YAML file and the environment.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fromusage/fromusage/internal/syntax"
)

// DefaultFile is the configuration file read when none is named.
const DefaultFile = ".fromusage.yaml"

// Options holds the configuration of a synthesis session.
type Options struct {
	// Server is the language server providing signature help.
	Server ServerOptions `yaml:"server"`

	// EnclosingHops bounds, per statement kind, how far the search for the
	// statement enclosing the caret walks up the tree. Zero is unbounded.
	EnclosingHops HopOptions `yaml:"enclosingHops"`

	// Defaults maps primitive type names to the default literal offered
	// for them. Names not listed are offered verbatim.
	Defaults map[string]string `yaml:"defaults"`

	// TreeCacheSize is the number of parsed files kept in memory.
	TreeCacheSize int `yaml:"treeCacheSize"`

	// Watch enables file system notifications for tracked files, so that
	// revisions advance as soon as a file changes on disk.
	Watch bool `yaml:"watch"`

	// Indent is the unit of indentation of a synthesized function body.
	Indent string `yaml:"indent"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// ServerOptions describes how to start the language server.
type ServerOptions struct {
	Command               string         `yaml:"command"`
	Args                  []string       `yaml:"args"`
	InitializationOptions map[string]any `yaml:"initializationOptions"`
}

// HopOptions holds the per-kind bounds of the enclosing statement search.
type HopOptions struct {
	DeclarationList     int `yaml:"declarationList"`
	ReturnStatement     int `yaml:"returnStatement"`
	ExpressionStatement int `yaml:"expressionStatement"`
	CallExpression      int `yaml:"callExpression"`
}

// Matchers returns the enclosing statement matchers, in priority order:
// a declaration list, then a return statement, an expression statement,
// and a call.
func (h HopOptions) Matchers() []syntax.Matcher {
	return []syntax.Matcher{
		{Kind: syntax.DeclarationList, MaxHops: h.DeclarationList},
		{Kind: syntax.ReturnStatement, MaxHops: h.ReturnStatement},
		{Kind: syntax.ExpressionStatement, MaxHops: h.ExpressionStatement},
		{Kind: syntax.CallExpression, MaxHops: h.CallExpression},
	}
}

// Default returns the default options.
func Default() *Options {
	return &Options{
		Server: ServerOptions{
			Command: "typescript-language-server",
			Args:    []string{"--stdio"},
		},
		// The bound counts the "arguments" node tree-sitter places between
		// a call and its argument.
		EnclosingHops: HopOptions{DeclarationList: 4},
		Defaults: map[string]string{
			"string":  "string",
			"number":  "0",
			"boolean": "false",
		},
		TreeCacheSize: 32,
		Indent:        "\t",
		LogLevel:      "info",
	}
}

// DefaultLiteral returns the default literal text for a primitive type.
func (o *Options) DefaultLiteral(typ string) string {
	if lit, ok := o.Defaults[typ]; ok && lit != "" {
		return lit
	}
	return typ
}

// Level returns the slog level named by LogLevel.
func (o *Options) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load returns the default options overridden by the YAML file at path
// and then by the environment. An empty path reads DefaultFile if it
// exists; a named file must exist.
//
// Environment variables, optionally from a .env file:
//
//	FROMUSAGE_SERVER       language server command line
//	FROMUSAGE_LOG          log level
//	FROMUSAGE_TREE_CACHE   tree cache size
//	FROMUSAGE_WATCH        watch tracked files (true/false)
func Load(path string) (*Options, error) {
	opts := Default()

	name, required := path, true
	if name == "" {
		name, required = DefaultFile, false
	}
	data, err := os.ReadFile(name)
	switch {
	case err == nil:
		if err := opts.decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// no config file
	default:
		return nil, err
	}

	_ = godotenv.Load() // .env is optional
	if err := opts.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return opts, opts.validate()
}

// decode overlays YAML data onto o. Maps are merged key by key, so a
// file naming one default keeps the others.
func (o *Options) decode(data []byte) error {
	defaults := o.Defaults
	o.Defaults = nil
	if err := yaml.Unmarshal(data, o); err != nil {
		o.Defaults = defaults
		return err
	}
	for k, v := range o.Defaults {
		if defaults == nil {
			defaults = make(map[string]string)
		}
		defaults[k] = v
	}
	o.Defaults = defaults
	return nil
}

func (o *Options) applyEnv(getenv func(string) string) error {
	if fields := strings.Fields(getenv("FROMUSAGE_SERVER")); len(fields) > 0 {
		o.Server.Command, o.Server.Args = fields[0], fields[1:]
	}
	if v := getenv("FROMUSAGE_LOG"); v != "" {
		o.LogLevel = v
	}
	if v := getenv("FROMUSAGE_TREE_CACHE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FROMUSAGE_TREE_CACHE: %w", err)
		}
		o.TreeCacheSize = n
	}
	if v := getenv("FROMUSAGE_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FROMUSAGE_WATCH: %w", err)
		}
		o.Watch = b
	}
	return nil
}

func (o *Options) validate() error {
	if o.Server.Command == "" {
		return fmt.Errorf("no language server command")
	}
	if o.TreeCacheSize <= 0 {
		return fmt.Errorf("invalid tree cache size %d", o.TreeCacheSize)
	}
	h := o.EnclosingHops
	if h.DeclarationList < 0 || h.ReturnStatement < 0 || h.ExpressionStatement < 0 || h.CallExpression < 0 {
		return fmt.Errorf("negative enclosing hop bound")
	}
	return nil
}
