/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package printer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/twsort/order"
	"bennypowers.dev/twsort/printer"
	"bennypowers.dev/twsort/splice"
)

type fakeRunner struct {
	out   []byte
	err   error
	name  string
	args  []string
	stdin []byte
}

func (f *fakeRunner) Run(_ context.Context, _ string, stdin []byte, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	f.stdin = stdin
	return f.out, f.err
}

func newPrinter() *printer.Printer {
	return printer.New(splice.SourceFunc(order.Order))
}

func TestPrinter_Print(t *testing.T) {
	node := printer.Node{Body: `view = div [ class "text-lg flex p-4 bg-blue-500" ] []`}
	assert.Equal(t, `view = div [ class "flex p-4 bg-blue-500 text-lg" ] []`, newPrinter().Print(node))
}

func TestPrinter_PrintPassesThrough(t *testing.T) {
	node := printer.Node{Body: "module Main exposing (main)\n"}
	assert.Equal(t, node.Body, newPrinter().Print(node))
}

func TestPipeline_Identity(t *testing.T) {
	p := &printer.Pipeline{Printer: newPrinter()}
	out, err := p.Format(context.Background(), []byte(`class "text-lg flex"`))
	require.NoError(t, err)
	assert.Equal(t, `class "flex text-lg"`, string(out))
}

func TestPipeline_ElmFormat(t *testing.T) {
	runner := &fakeRunner{out: []byte("view =\n    div [ class \"text-lg flex\" ] []\n")}
	p := &printer.Pipeline{
		Pre:     printer.ElmFormat{Runner: runner},
		Printer: newPrinter(),
	}

	out, err := p.Format(context.Background(), []byte(`view = div [class "text-lg flex"] []`))
	require.NoError(t, err)
	assert.Equal(t, "view =\n    div [ class \"flex text-lg\" ] []\n", string(out))
	assert.Equal(t, printer.DefaultElmFormat, runner.name)
	assert.Equal(t, []string{"--stdin"}, runner.args)
	assert.Equal(t, `view = div [class "text-lg flex"] []`, string(runner.stdin))
}

func TestPipeline_ElmFormatCustomPath(t *testing.T) {
	runner := &fakeRunner{out: []byte("x")}
	_, err := printer.ElmFormat{Path: "/opt/elm-format", Runner: runner}.Format(context.Background(), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/elm-format", runner.name)
}

func TestPipeline_ElmFormatFailure(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
	}{
		{name: "command error", runner: &fakeRunner{err: errors.New("exit status 1")}},
		{name: "empty output", runner: &fakeRunner{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &printer.Pipeline{Pre: printer.ElmFormat{Runner: tt.runner}, Printer: newPrinter()}
			_, err := p.Format(context.Background(), []byte(`class "flex"`))
			require.Error(t, err)
			assert.ErrorIs(t, err, printer.ErrFormatter)
		})
	}
}

func TestIdentity(t *testing.T) {
	out, err := printer.Identity{}.Format(context.Background(), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
}
