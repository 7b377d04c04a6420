/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package sort provides the sort command for twsort.
package sort

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/internal/session"
	"bennypowers.dev/twsort/splice"
)

// Cmd is the sort cobra command.
var Cmd = &cobra.Command{
	Use:   "sort [classes...]",
	Short: "Sort a class string",
	Long: `Sort a single class string. Arguments are joined with spaces. Without
arguments each line of stdin is sorted on its own.

Examples:
  twsort sort "text-lg flex p-4 bg-blue-500"
  echo "text-lg flex" | twsort sort --no-external`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("source", false, "Print the sorter used to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	showSource, _ := cmd.Flags().GetBool("source")

	s, err := session.New(twfs.NewOSFileSystem(), session.OverridesFromViper())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s.Start(ctx)
	s.Settle(ctx)

	if showSource {
		fmt.Fprintf(cmd.ErrOrStderr(), "sorter: %s (%s)\n", s.Resolver.Source(), s.Resolver.State())
	}

	if len(args) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), s.Resolver.Sort(strings.Join(args, " ")))
		return nil
	}
	return Lines(s.Resolver, cmd.InOrStdin(), cmd.OutOrStdout())
}

// Lines sorts each line of r and writes it to w.
func Lines(src splice.Source, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, src.Sort(scanner.Text())); err != nil {
			return errors.Errorf("writing output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("reading input: %w", err)
	}
	return nil
}
