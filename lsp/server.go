/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lsp serves document formatting over the Language Server Protocol.
//
// Documents are synchronized in full. Formatting returns a single edit
// replacing the whole document, or no edits when nothing changes.
package lsp

import (
	"context"
	"sync"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"gitlab.com/tozd/go/errors"

	"bennypowers.dev/twsort/internal/logger"
)

// Name is the server name reported to clients.
const Name = "twsort"

// FormatTimeout bounds a single formatting request.
const FormatTimeout = 30 * time.Second

// Formatter formats a whole Elm document.
type Formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// Server is a formatting language server.
type Server struct {
	formatter Formatter
	version   string
	handler   protocol.Handler

	mu   sync.RWMutex
	docs map[protocol.DocumentUri]string
}

// New creates a server formatting with f.
func New(f Formatter, version string) *Server {
	s := &Server{
		formatter: f,
		version:   version,
		docs:      make(map[protocol.DocumentUri]string),
	}
	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentFormatting: s.formatting,
	}
	return s
}

// RunStdio serves on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	return server.NewServer(&s.handler, Name, false).RunStdio()
}

// Document returns the current text of uri.
func (s *Server) Document(uri protocol.DocumentUri) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[uri]
	return text, ok
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[params.TextDocument.URI] = params.TextDocument.Text
	return nil
}

func (s *Server) didChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := s.docs[params.TextDocument.URI]
	for _, change := range params.ContentChanges {
		text = applyChange(text, change)
	}
	s.docs[params.TextDocument.URI] = text
	return nil
}

func (s *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, params.TextDocument.URI)
	return nil
}

func (s *Server) formatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	text, ok := s.Document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), FormatTimeout)
	defer cancel()
	out, err := s.formatter.Format(ctx, []byte(text))
	if err != nil {
		logger.Warn("formatting %s: %v", params.TextDocument.URI, err)
		return nil, errors.Errorf("formatting %s: %w", params.TextDocument.URI, err)
	}
	return computeEdits(text, string(out)), nil
}
