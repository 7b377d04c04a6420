/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lsp

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bennypowers.dev/twsort/internal/logger"
	"bennypowers.dev/twsort/order"
	"bennypowers.dev/twsort/printer"
	"bennypowers.dev/twsort/splice"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const uri = protocol.DocumentUri("file:///project/src/Main.elm")

type failingFormatter struct{}

func (failingFormatter) Format(context.Context, []byte) ([]byte, error) {
	return nil, errors.New("elm-format: syntax problem")
}

func newServer() *Server {
	return New(&printer.Pipeline{Printer: printer.New(splice.SourceFunc(order.Order))}, "test")
}

func open(t *testing.T, s *Server, text string) {
	t.Helper()
	require.NoError(t, s.didOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "elm", Version: 1, Text: text},
	}))
}

func format(t *testing.T, s *Server) []protocol.TextEdit {
	t.Helper()
	edits, err := s.formatting(nil, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	return edits
}

func TestInitialize(t *testing.T) {
	result, err := newServer().initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, Name, res.ServerInfo.Name)
	assert.Equal(t, "test", *res.ServerInfo.Version)

	syncOpts, ok := res.Capabilities.TextDocumentSync.(protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *syncOpts.Change)
	assert.True(t, *syncOpts.OpenClose)
	assert.NotNil(t, res.Capabilities.DocumentFormattingProvider)
}

func TestFormatting_WholeDocumentEdit(t *testing.T) {
	s := newServer()
	open(t, s, "view =\n    div [ class \"text-lg flex\" ] []\n")

	edits := format(t, s)
	require.Len(t, edits, 1)
	assert.Equal(t, "view =\n    div [ class \"flex text-lg\" ] []\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, edits[0].Range.End)
}

func TestFormatting_NoChange(t *testing.T) {
	s := newServer()
	open(t, s, `view = div [ class "flex text-lg" ] []`)
	assert.Empty(t, format(t, s))
}

func TestFormatting_UnknownDocument(t *testing.T) {
	assert.Nil(t, format(t, newServer()))
}

func TestFormatting_Error(t *testing.T) {
	s := New(failingFormatter{}, "test")
	open(t, s, `view = div [ class "text-lg flex" ] []`)

	_, err := s.formatting(nil, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

func TestDidChange(t *testing.T) {
	s := newServer()
	open(t, s, `class "flex"`)

	require.NoError(t, s.didChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: `class "text-lg flex"`},
		},
	}))

	text, ok := s.Document(uri)
	require.True(t, ok)
	assert.Equal(t, `class "text-lg flex"`, text)
	require.Len(t, format(t, s), 1)
}

func TestDidClose(t *testing.T) {
	s := newServer()
	open(t, s, "x")
	require.NoError(t, s.didClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	_, ok := s.Document(uri)
	assert.False(t, ok)
}
