// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsp

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/fromusage/fromusage/internal/cache"
	"github.com/fromusage/fromusage/internal/oracle"
	"github.com/fromusage/fromusage/internal/protocol"
	"github.com/fromusage/fromusage/internal/settings"
)

// fakeServer is a language server that answers every signature help
// request with the same result and records document notifications.
type fakeServer struct {
	help *protocol.SignatureHelp

	mu      sync.Mutex
	methods []string
	opened  []protocol.TextDocumentItem
	changed []protocol.VersionedTextDocumentIdentifier
	asked   []protocol.Position
}

func (s *fakeServer) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, req.Method)
	switch req.Method {
	case protocol.MethodInitialize:
		return json.RawMessage(`{"capabilities":{"signatureHelpProvider":{"triggerCharacters":["("]}},"serverInfo":{"name":"fake"}}`), nil
	case protocol.MethodDidOpen:
		var p protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(*req.Params, &p); err != nil {
			return nil, err
		}
		s.opened = append(s.opened, p.TextDocument)
	case protocol.MethodDidChange:
		var p protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(*req.Params, &p); err != nil {
			return nil, err
		}
		s.changed = append(s.changed, p.TextDocument)
	case protocol.MethodSignatureHelp:
		var p protocol.SignatureHelpParams
		if err := json.Unmarshal(*req.Params, &p); err != nil {
			return nil, err
		}
		s.asked = append(s.asked, p.Position)
		return s.help, nil
	case protocol.MethodExit:
		go conn.Close()
	}
	return nil, nil
}

func newTestClient(t *testing.T, help *protocol.SignatureHelp) (*Client, *fakeServer, *cache.Session) {
	t.Helper()
	ctx := context.Background()
	opts := settings.Default()
	session, err := cache.NewSession(opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { session.Close() })

	clientSide, serverSide := net.Pipe()
	server := &fakeServer{help: help}
	jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}), jsonrpc2.HandlerWithError(server.handle))

	client, err := NewClient(ctx, clientSide, session, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	return client, server, session
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSignatureHelp(t *testing.T) {
	const label = "greet(who: Person | string, times?: number): void"
	offsets := [2]uint32{6, 26} // "who: Person | string"
	active := uint32(0)
	help := &protocol.SignatureHelp{
		Signatures: []protocol.SignatureInformation{
			{Label: "greet(): void"},
			{
				Label: label,
				Parameters: []protocol.ParameterInformation{
					{Label: protocol.ParameterLabel{Offsets: &offsets}},
					{Label: protocol.ParameterLabel{Text: "times?: number"}},
				},
				ActiveParameter: &active,
			},
		},
		ActiveSignature: 1,
		ActiveParameter: 1,
	}
	client, server, _ := newTestClient(t, help)

	path := writeFile(t, "a.ts", "// é\ngreet(bob);\n")
	got, err := client.SignatureHelp(context.Background(), path, len("// é\ngreet(b"))
	if err != nil {
		t.Fatal(err)
	}
	want := &oracle.SignatureHelp{
		Overloads: []oracle.Overload{
			{Label: "greet(): void"},
			{Label: label, Params: []oracle.Param{{Label: "who: Person | string"}, {Label: "times?: number"}}},
		},
		Selected:    1,
		ActiveParam: 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SignatureHelp mismatch (-want +got):\n%s", diff)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	wantMethods := []string{
		protocol.MethodInitialize,
		protocol.MethodInitialized,
		protocol.MethodDidOpen,
		protocol.MethodSignatureHelp,
		protocol.MethodDidClose,
		protocol.MethodShutdown,
		protocol.MethodExit,
	}
	if diff := cmp.Diff(wantMethods, server.methods); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]protocol.Position{{Line: 1, Character: 7}}, server.asked); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if len(server.opened) != 1 || server.opened[0].LanguageID != "typescript" || server.opened[0].Version != 0 {
		t.Errorf("opened = %+v, want one typescript document at version 0", server.opened)
	}
}

func TestDocumentSync(t *testing.T) {
	client, server, session := newTestClient(t, nil)
	defer client.Close()
	ctx := context.Background()

	path := writeFile(t, "b.tsx", "f(x);\n")
	ask := func() {
		t.Helper()
		help, err := client.SignatureHelp(ctx, path, 2)
		if err != nil {
			t.Fatal(err)
		}
		if help != nil {
			t.Errorf("SignatureHelp = %+v, want nil for no call context", help)
		}
	}

	ask()
	ask() // unchanged: no notification
	session.Source.SetOverlay(path, []byte("f(y);\n"))
	ask()
	session.Source.SetOverlay(path, []byte("f(yy);\n"))
	ask()

	server.mu.Lock()
	defer server.mu.Unlock()
	if len(server.opened) != 1 || server.opened[0].LanguageID != "typescriptreact" {
		t.Fatalf("opened = %+v, want one typescriptreact document", server.opened)
	}
	var versions []int32
	for _, c := range server.changed {
		versions = append(versions, c.Version)
	}
	if diff := cmp.Diff([]int32{1, 2}, versions); diff != "" {
		t.Errorf("didChange versions mismatch (-want +got):\n%s", diff)
	}
}

func TestSignatureHelpNoSnapshot(t *testing.T) {
	client, _, _ := newTestClient(t, nil)
	defer client.Close()
	_, err := client.SignatureHelp(context.Background(), filepath.Join(t.TempDir(), "missing.ts"), 0)
	if err == nil {
		t.Fatal("SignatureHelp of a missing file succeeded")
	}
}
