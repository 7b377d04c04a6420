/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package printer is the host printing step: it turns a parsed Elm source
// node into text and splices sorted class strings into it.
package printer

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"bennypowers.dev/twsort/splice"
)

// Node is the unit handed to the printer. The body is already formatted.
type Node struct {
	Body string
}

// Printer prints nodes with their class strings sorted.
type Printer struct {
	splicer *splice.Splicer
}

// New creates a printer that sorts with src.
func New(src splice.Source, patterns ...splice.Pattern) *Printer {
	return &Printer{splicer: splice.New(src, patterns...)}
}

// Print returns the node body with every recognized class string sorted.
// It never fails; unrecognized text passes through unchanged.
func (p *Printer) Print(node Node) string {
	return p.splicer.Splice(node.Body)
}

// Pipeline runs the preformatter and then the printer.
type Pipeline struct {
	Pre     Preformatter
	Printer *Printer
}

// Format formats src. A nil Pre is treated as Identity.
func (p *Pipeline) Format(ctx context.Context, src []byte) ([]byte, error) {
	pre := p.Pre
	if pre == nil {
		pre = Identity{}
	}
	formatted, err := pre.Format(ctx, src)
	if err != nil {
		return nil, errors.Errorf("preformatting: %w", err)
	}
	return []byte(p.Printer.Print(Node{Body: string(formatted)})), nil
}
