/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package format provides the format command for twsort.
package format

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"bennypowers.dev/twsort/config"
	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/internal/session"
	"bennypowers.dev/twsort/printer"
)

// ErrUnsorted is returned in check mode when any file would change.
var ErrUnsorted = errors.Base("files have unsorted classes")

// ErrStdinWrite is returned when --write is combined with stdin input.
var ErrStdinWrite = errors.Base("cannot write sorted output back to stdin")

// StdinName stands for stdin in check mode output.
const StdinName = "<stdin>"

// Mode selects what happens to formatted output.
type Mode int

const (
	// Print writes formatted sources to the output.
	Print Mode = iota
	// Write rewrites changed files in place and lists them.
	Write
	// Check lists changed files and fails if there are any.
	Check
)

// Cmd is the format cobra command.
var Cmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Sort Tailwind classes in Elm files",
	Long: `Sort the Tailwind CSS classes of every class attribute in the given Elm
files. Without arguments the files configured in .config/twsort.yaml are
used (default: **/*.elm). Use - to read from stdin; --check works with
stdin, --write does not.

Examples:
  # Print sorted output
  twsort format src/Main.elm

  # Rewrite files in place
  twsort format --write 'src/**/*.elm'

  # Fail when any file is not sorted (CI)
  twsort format --check`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().BoolP("write", "w", false, "Write sorted output back to the files")
	Cmd.Flags().Bool("check", false, "Exit non-zero if any file is not sorted")
	Cmd.MarkFlagsMutuallyExclusive("write", "check")
}

func run(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")

	mode := Print
	switch {
	case write:
		mode = Write
	case check:
		mode = Check
	}

	filesystem := twfs.NewOSFileSystem()
	s, err := session.New(filesystem, session.OverridesFromViper())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s.Start(ctx)
	s.Settle(ctx)
	pipeline := s.Pipeline()

	if len(args) == 1 && args[0] == "-" {
		return Stdin(ctx, pipeline, cmd.InOrStdin(), mode, cmd.OutOrStdout())
	}

	var paths []string
	if len(args) == 0 {
		paths, err = s.Config.ExpandFiles(filesystem, s.Root)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			paths, err = config.ExpandPatterns(filesystem, wd, args)
		}
	}
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no Elm files matched")
	}

	return Files(ctx, filesystem, pipeline, paths, mode, cmd.OutOrStdout())
}

// Stdin formats r. In Print mode the result goes to w; in Check mode w
// receives StdinName and ErrUnsorted is returned when the input would
// change. Write mode is rejected.
func Stdin(ctx context.Context, pipeline *printer.Pipeline, r io.Reader, mode Mode, w io.Writer) error {
	if mode == Write {
		return errors.WithStack(ErrStdinWrite)
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Errorf("reading stdin: %w", err)
	}
	out, err := pipeline.Format(ctx, src)
	if err != nil {
		return err
	}
	if mode == Check {
		if bytes.Equal(src, out) {
			return nil
		}
		fmt.Fprintln(w, StdinName)
		return errors.Errorf("%w: %s", ErrUnsorted, StdinName)
	}
	_, err = w.Write(out)
	return err
}

type result struct {
	path string
	in   []byte
	out  []byte
	mode fs.FileMode
	ok   bool
}

// Files formats paths concurrently. Output is reported in path order.
// Failures are collected rather than stopping the run.
func Files(ctx context.Context, filesystem twfs.FileSystem, pipeline *printer.Pipeline, paths []string, mode Mode, w io.Writer) error {
	results := make([]result, len(paths))

	var (
		mu   sync.Mutex
		errs error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = multierr.Append(errs, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			in, err := filesystem.ReadFile(path)
			if err != nil {
				fail(errors.Errorf("reading %s: %w", path, err))
				return nil
			}
			out, err := pipeline.Format(gctx, in)
			if err != nil {
				fail(errors.Errorf("formatting %s: %w", path, err))
				return nil
			}
			perm := fs.FileMode(0644)
			if info, err := filesystem.Stat(path); err == nil {
				perm = info.Mode().Perm()
			}
			results[i] = result{path: path, in: in, out: out, mode: perm, ok: true}
			return nil
		})
	}
	_ = g.Wait()

	unsorted := 0
	for _, r := range results {
		if !r.ok {
			continue
		}
		changed := !bytes.Equal(r.in, r.out)
		switch mode {
		case Write:
			if !changed {
				continue
			}
			if err := filesystem.WriteFile(r.path, r.out, r.mode); err != nil {
				errs = multierr.Append(errs, errors.Errorf("writing %s: %w", r.path, err))
				continue
			}
			fmt.Fprintln(w, r.path)
		case Check:
			if changed {
				unsorted++
				fmt.Fprintln(w, r.path)
			}
		default:
			if _, err := w.Write(r.out); err != nil {
				return errors.Errorf("writing output: %w", err)
			}
		}
	}

	if unsorted > 0 {
		errs = multierr.Append(errs, errors.Errorf("%w: %d of %d", ErrUnsorted, unsorted, len(paths)))
	}
	return errs
}
