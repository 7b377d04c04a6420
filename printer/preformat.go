/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package printer

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"bennypowers.dev/twsort/plugin"
)

// ErrFormatter is returned when the Elm formatter cannot produce output.
var ErrFormatter = errors.Base("elm formatter failed")

// DefaultElmFormat is the elm-format executable looked up on PATH.
const DefaultElmFormat = "elm-format"

// Preformatter produces the formatted source the printer works on.
type Preformatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// Identity returns its input unchanged.
type Identity struct{}

// Format implements Preformatter.
func (Identity) Format(_ context.Context, src []byte) ([]byte, error) {
	return src, nil
}

// ElmFormat runs elm-format over stdin.
type ElmFormat struct {
	// Path is the executable. Empty means DefaultElmFormat.
	Path string
	// Runner executes the command. Nil means plugin.ExecRunner.
	Runner plugin.Runner
}

// Format implements Preformatter.
func (e ElmFormat) Format(ctx context.Context, src []byte) ([]byte, error) {
	path := e.Path
	if path == "" {
		path = DefaultElmFormat
	}
	runner := e.Runner
	if runner == nil {
		runner = plugin.ExecRunner{}
	}
	out, err := runner.Run(ctx, "", src, path, "--stdin")
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrFormatter, err)
	}
	if len(out) == 0 && len(src) != 0 {
		return nil, errors.WithStack(ErrFormatter)
	}
	return out, nil
}
