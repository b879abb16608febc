// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lsp implements an oracle backed by a TypeScript language
// server, spoken to over JSON-RPC, and by tree-sitter syntax trees.
package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"golang.org/x/sync/errgroup"

	"github.com/fromusage/fromusage/internal/cache"
	"github.com/fromusage/fromusage/internal/file"
	"github.com/fromusage/fromusage/internal/oracle"
	"github.com/fromusage/fromusage/internal/protocol"
	"github.com/fromusage/fromusage/internal/settings"
	"github.com/fromusage/fromusage/internal/syntax"
)

// shutdownTimeout bounds the shutdown handshake in Close.
const shutdownTimeout = 5 * time.Second

// A Client is an oracle.Oracle that asks a language server for signature
// help. Documents are synchronized with the server before each request,
// using the session's revision tracker for document versions.
type Client struct {
	session *cache.Session
	logger  *slog.Logger
	conn    *jsonrpc2.Conn
	cmd     *exec.Cmd // server process, if started by Dial

	mu   sync.Mutex
	docs map[protocol.DocumentURI]*document // documents opened on the server
}

var _ oracle.Oracle = (*Client)(nil)

// A document is the server's view of a file.
type document struct {
	version int32
	hash    file.Hash
}

// Dial starts the language server named by opts and connects to it over
// its standard input and output.
func Dial(ctx context.Context, session *cache.Session, opts *settings.Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cmd := exec.Command(opts.Server.Command, opts.Server.Args...)
	cmd.Stderr = &logWriter{logger: logger.With("server", opts.Server.Command)}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting language server: %w", err)
	}
	logger.Debug("started language server", "command", cmd.String(), "pid", cmd.Process.Pid)

	c, err := newClient(ctx, &pipe{stdout, stdin}, session, opts, logger)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	c.cmd = cmd
	return c, nil
}

// NewClient connects to a language server over rwc and initializes it.
func NewClient(ctx context.Context, rwc io.ReadWriteCloser, session *cache.Session, opts *settings.Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return newClient(ctx, rwc, session, opts, logger)
}

func newClient(ctx context.Context, rwc io.ReadWriteCloser, session *cache.Session, opts *settings.Options, logger *slog.Logger) (*Client, error) {
	c := &Client{
		session: session,
		logger:  logger,
		docs:    make(map[protocol.DocumentURI]*document),
	}
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	c.conn = jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(c.handle))
	if err := c.initialize(ctx, opts); err != nil {
		c.conn.Close()
		return nil, fmt.Errorf("initializing language server: %w", err)
	}
	return c, nil
}

func (c *Client) initialize(ctx context.Context, opts *settings.Options) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("finding workdir: %v", err)
	}
	params := &protocol.ParamInitialize{
		ProcessID:  int32(os.Getpid()),
		ClientInfo: &protocol.ClientInfo{Name: "fromusage"},
		RootURI:    protocol.URIFromPath(wd),
	}
	params.Capabilities.TextDocument.SignatureHelp = &protocol.SignatureHelpClientCapabilities{
		SignatureInformation: &protocol.ClientSignatureInformationOptions{
			ParameterInformation:   &protocol.ClientSignatureParameterInformationOptions{LabelOffsetSupport: true},
			ActiveParameterSupport: true,
		},
	}
	if len(opts.Server.InitializationOptions) > 0 {
		params.InitializationOptions = opts.Server.InitializationOptions
	}

	var result protocol.InitializeResult
	if err := c.conn.Call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return err
	}
	if result.Capabilities.SignatureHelpProvider == nil {
		c.logger.Warn("language server does not advertise signature help")
	}
	if result.ServerInfo != nil {
		c.logger.Debug("initialized language server", "name", result.ServerInfo.Name, "version", result.ServerInfo.Version)
	}
	return c.conn.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{})
}

// handle serves the requests and notifications the server sends to the
// client. Only the ones a language server sends unprompted are
// answered meaningfully.
func (c *Client) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case protocol.MethodLogMessage, protocol.MethodShowMessage:
		var p protocol.LogMessageParams
		if req.Params != nil && json.Unmarshal(*req.Params, &p) == nil {
			c.logger.Log(ctx, messageLevel(p.Type), p.Message, "method", req.Method)
		}
		return nil, nil

	case protocol.MethodConfiguration:
		var p struct {
			Items []json.RawMessage `json:"items"`
		}
		if req.Params != nil {
			if err := json.Unmarshal(*req.Params, &p); err != nil {
				return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
			}
		}
		return make([]any, len(p.Items)), nil // no configuration for any section
	}
	// Registrations, progress tokens and the like need no action.
	return nil, nil
}

// messageLevel maps an LSP MessageType to a log level.
func messageLevel(typ uint32) slog.Level {
	switch typ {
	case 1:
		return slog.LevelError
	case 2:
		return slog.LevelWarn
	case 3:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// SourceTree returns the tree-sitter syntax tree of path.
func (c *Client) SourceTree(ctx context.Context, path string) (*syntax.File, error) {
	return c.session.Trees.Get(ctx, path)
}

// SignatureHelp synchronizes path with the server and asks for the
// signature help at offset.
func (c *Client) SignatureHelp(ctx context.Context, path string, offset int) (*oracle.SignatureHelp, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	content, ok := c.session.Source.Snapshot(ctx, path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, cache.ErrNoSnapshot)
	}
	uri := protocol.URIFromPath(path)
	if err := c.sync(ctx, path, uri, content); err != nil {
		return nil, err
	}

	mapper := protocol.NewMapper(uri, content)
	pos, err := mapper.OffsetPosition(offset)
	if err != nil {
		return nil, err
	}
	params := &protocol.SignatureHelpParams{
		Context: &protocol.SignatureHelpContext{TriggerKind: protocol.SigInvoked},
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     pos,
		},
	}
	var result *protocol.SignatureHelp
	if err := c.conn.Call(ctx, protocol.MethodSignatureHelp, params, &result); err != nil {
		return nil, fmt.Errorf("signature help: %w", err)
	}
	if result == nil || len(result.Signatures) == 0 {
		return nil, nil
	}
	return convertSignatureHelp(result)
}

// convertSignatureHelp converts an LSP signature help result, resolving
// parameter labels given as offsets into the signature label.
func convertSignatureHelp(result *protocol.SignatureHelp) (*oracle.SignatureHelp, error) {
	help := &oracle.SignatureHelp{
		Selected:    int(result.ActiveSignature),
		ActiveParam: int(result.ActiveParameter),
	}
	for i, sig := range result.Signatures {
		o := oracle.Overload{Label: sig.Label}
		for _, p := range sig.Parameters {
			label, err := p.Label.Resolve(sig.Label)
			if err != nil {
				return nil, fmt.Errorf("signature %q: %w", sig.Label, err)
			}
			o.Params = append(o.Params, oracle.Param{Label: label})
		}
		// A per-signature active parameter takes precedence.
		if i == help.Selected && sig.ActiveParameter != nil {
			help.ActiveParam = int(*sig.ActiveParameter)
		}
		help.Overloads = append(help.Overloads, o)
	}
	return help, nil
}

// sync opens path on the server, or updates it if its content changed
// since it was last sent.
func (c *Client) sync(ctx context.Context, path string, uri protocol.DocumentURI, content []byte) error {
	hash := file.HashOf(content)
	tracked, _ := c.session.Tracker.VersionOf(path)

	c.mu.Lock()
	doc, open := c.docs[uri]
	if open && doc.hash == hash {
		c.mu.Unlock()
		return nil
	}
	version := int32(tracked)
	if open {
		version = max(version, doc.version+1)
	}
	c.docs[uri] = &document{version: version, hash: hash}
	c.mu.Unlock()

	if !open {
		lang := file.KindForPath(path).LanguageID()
		if lang == "" {
			lang = file.TypeScript.LanguageID()
		}
		c.logger.Debug("opening document", "path", path, "version", version)
		return c.conn.Notify(ctx, protocol.MethodDidOpen, &protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{
				URI:        uri,
				LanguageID: lang,
				Version:    version,
				Text:       string(content),
			},
		})
	}
	c.logger.Debug("updating document", "path", path, "version", version)
	return c.conn.Notify(ctx, protocol.MethodDidChange, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			Version:                version,
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: string(content)}},
	})
}

// Close shuts the server down and waits for it to exit.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	c.mu.Lock()
	uris := make([]protocol.DocumentURI, 0, len(c.docs))
	for uri := range c.docs {
		uris = append(uris, uri)
	}
	c.docs = make(map[protocol.DocumentURI]*document)
	c.mu.Unlock()
	for _, uri := range uris {
		_ = c.conn.Notify(ctx, protocol.MethodDidClose, &protocol.DidCloseTextDocumentParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		})
	}

	shutdownErr := c.conn.Call(ctx, protocol.MethodShutdown, nil, nil)
	_ = c.conn.Notify(ctx, protocol.MethodExit, nil)

	var g errgroup.Group
	g.Go(func() error {
		select {
		case <-c.conn.DisconnectNotify():
			return nil
		case <-ctx.Done():
			return c.conn.Close()
		}
	})
	if c.cmd != nil {
		g.Go(func() error {
			done := make(chan error, 1)
			go func() { done <- c.cmd.Wait() }()
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				_ = c.cmd.Process.Kill()
				return <-done
			}
		})
	}
	err := g.Wait()
	if errors.Is(err, jsonrpc2.ErrClosed) {
		err = nil
	}
	if shutdownErr != nil && !errors.Is(shutdownErr, jsonrpc2.ErrClosed) {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return err
}

// pipe joins a process's standard output and input into one stream.
type pipe struct {
	io.ReadCloser
	io.WriteCloser
}

func (p *pipe) Close() error {
	return errors.Join(p.WriteCloser.Close(), p.ReadCloser.Close())
}

// logWriter logs the lines written to it, as the server's stderr.
type logWriter struct {
	logger *slog.Logger

	mu  sync.Mutex
	buf []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if line := string(w.buf[:i]); line != "" {
			w.logger.Debug("server stderr", "line", line)
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
