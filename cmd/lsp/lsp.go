/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lsp provides the lsp command for twsort.
package lsp

import (
	"io"

	"github.com/spf13/cobra"

	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/internal/logger"
	"bennypowers.dev/twsort/internal/session"
	"bennypowers.dev/twsort/internal/version"
	"bennypowers.dev/twsort/lsp"
)

// Cmd is the lsp cobra command.
var Cmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the formatting language server on stdio",
	Long: `Run a Language Server Protocol server on stdin/stdout that answers
textDocument/formatting for Elm documents. The external sorter is loaded in
the background; requests made before it is ready use the built-in ordering.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)

	s, err := session.New(twfs.NewOSFileSystem(), session.OverridesFromViper())
	if err != nil {
		return err
	}
	s.Start(cmd.Context())

	return lsp.New(s.Pipeline(), version.Full()).RunStdio()
}
