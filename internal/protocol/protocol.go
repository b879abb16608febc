// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protocol contains the subset of the Language Server Protocol
// types exchanged with the type oracle, plus position mapping helpers.
//
// For the LSP definition of these types, see
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/
package protocol

import (
	"encoding/json"
	"fmt"
)

// Position in a text document expressed as zero-based line and zero-based
// character offset, counted in UTF-16 code units.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// A range in a text document expressed as (zero-based) start and end positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// A TextEdit is a textual edit applicable to a text document.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// TextDocumentIdentifier identifies a text document by its URI.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// VersionedTextDocumentIdentifier identifies a specific version of a text document.
type VersionedTextDocumentIdentifier struct {
	Version int32 `json:"version"`
	TextDocumentIdentifier
}

// TextDocumentItem is an item to transfer a text document from the client
// to the server.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int32       `json:"version"`
	Text       string      `json:"text"`
}

// TextDocumentPositionParams is a parameter literal used in requests to
// pass a text document and a position inside that document.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// DidOpenTextDocumentParams are the parameters sent in an open text
// document notification.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent describes a full-document content change.
type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

// DidChangeTextDocumentParams are the change parameters sent in a change
// text document notification.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams are the parameters sent in a close text
// document notification.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// SignatureHelpTriggerKind says how a signature help request was triggered.
type SignatureHelpTriggerKind uint32

const (
	// SigInvoked means signature help was invoked manually by the user or
	// by a command.
	SigInvoked SignatureHelpTriggerKind = 1
)

// SignatureHelpContext carries additional information about the context
// in which a signature help request was triggered.
type SignatureHelpContext struct {
	TriggerKind SignatureHelpTriggerKind `json:"triggerKind"`
	IsRetrigger bool                     `json:"isRetrigger"`
}

// SignatureHelpParams are the parameters of textDocument/signatureHelp.
type SignatureHelpParams struct {
	Context *SignatureHelpContext `json:"context,omitempty"`
	TextDocumentPositionParams
}

// SignatureHelp represents the signature of something callable.
type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature uint32                 `json:"activeSignature"`
	ActiveParameter uint32                 `json:"activeParameter"`
}

// SignatureInformation represents the signature of something callable.
type SignatureInformation struct {
	Label           string                 `json:"label"`
	Parameters      []ParameterInformation `json:"parameters,omitempty"`
	ActiveParameter *uint32                `json:"activeParameter,omitempty"`
}

// ParameterInformation represents a parameter of a callable-signature.
type ParameterInformation struct {
	Label ParameterLabel `json:"label"`
}

// A ParameterLabel is either a string or an inclusive-exclusive pair of
// UTF-16 offsets into the containing signature label.
type ParameterLabel struct {
	Text    string
	Offsets *[2]uint32
}

func (l ParameterLabel) MarshalJSON() ([]byte, error) {
	if l.Offsets != nil {
		return json.Marshal(l.Offsets)
	}
	return json.Marshal(l.Text)
}

func (l *ParameterLabel) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = ParameterLabel{Text: text}
		return nil
	}
	var offsets [2]uint32
	if err := json.Unmarshal(data, &offsets); err != nil {
		return fmt.Errorf("parameter label is neither string nor [uint32, uint32]: %s", data)
	}
	*l = ParameterLabel{Offsets: &offsets}
	return nil
}

// Resolve returns the text of the label, using the signature label when
// the parameter label is given as offsets.
func (l ParameterLabel) Resolve(signature string) (string, error) {
	if l.Offsets == nil {
		return l.Text, nil
	}
	return UTF16Slice(signature, int(l.Offsets[0]), int(l.Offsets[1]))
}

// ClientInfo is information about the client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// SignatureHelpClientCapabilities are the client capabilities specific to
// signature help.
type SignatureHelpClientCapabilities struct {
	SignatureInformation *ClientSignatureInformationOptions `json:"signatureInformation,omitempty"`
}

// ClientSignatureInformationOptions describes what the client supports in
// SignatureInformation.
type ClientSignatureInformationOptions struct {
	ParameterInformation   *ClientSignatureParameterInformationOptions `json:"parameterInformation,omitempty"`
	ActiveParameterSupport bool                                        `json:"activeParameterSupport,omitempty"`
}

// ClientSignatureParameterInformationOptions describes parameter label support.
type ClientSignatureParameterInformationOptions struct {
	LabelOffsetSupport bool `json:"labelOffsetSupport,omitempty"`
}

// TextDocumentClientCapabilities define capabilities the editor / tool
// provides on text documents.
type TextDocumentClientCapabilities struct {
	SignatureHelp *SignatureHelpClientCapabilities `json:"signatureHelp,omitempty"`
}

// ClientCapabilities defines the capabilities provided by the client.
type ClientCapabilities struct {
	TextDocument TextDocumentClientCapabilities `json:"textDocument"`
}

// ParamInitialize are the parameters of the initialize request.
type ParamInitialize struct {
	ProcessID             int32              `json:"processId"`
	ClientInfo            *ClientInfo        `json:"clientInfo,omitempty"`
	RootURI               DocumentURI        `json:"rootUri"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions any                `json:"initializationOptions,omitempty"`
}

// InitializeResult is the result returned from an initialize request.
// Only the fields inspected by the client are declared.
type InitializeResult struct {
	Capabilities struct {
		SignatureHelpProvider *json.RawMessage `json:"signatureHelpProvider,omitempty"`
	} `json:"capabilities"`
	ServerInfo *ClientInfo `json:"serverInfo,omitempty"`
}

// InitializedParams are the parameters of the initialized notification.
type InitializedParams struct{}

// LogMessageParams are the parameters of window/logMessage and
// window/showMessage notifications.
type LogMessageParams struct {
	Type    uint32 `json:"type"`
	Message string `json:"message"`
}

// LSP method names used by the oracle client.
const (
	MethodInitialize    = "initialize"
	MethodInitialized   = "initialized"
	MethodShutdown      = "shutdown"
	MethodExit          = "exit"
	MethodDidOpen       = "textDocument/didOpen"
	MethodDidChange     = "textDocument/didChange"
	MethodDidClose      = "textDocument/didClose"
	MethodSignatureHelp = "textDocument/signatureHelp"
	MethodLogMessage    = "window/logMessage"
	MethodShowMessage   = "window/showMessage"
	MethodConfiguration = "workspace/configuration"
)
