/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lsp

import (
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// computeEdits returns one edit replacing all of oldText with newText, or
// an empty slice when they are equal.
func computeEdits(oldText, newText string) []protocol.TextEdit {
	if oldText == newText {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endPosition(oldText),
		},
		NewText: newText,
	}}
}

// endPosition is the position just past the last character of text.
// Characters are counted in UTF-16 code units.
func endPosition(text string) protocol.Position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(last)),
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// offset converts an LSP position to a byte offset in text, clamped to
// the end of its line.
func offset(text string, pos protocol.Position) int {
	start := 0
	for i := protocol.UInteger(0); i < pos.Line; i++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return len(text)
		}
		start += nl + 1
	}

	units := 0
	for i := start; i < len(text); {
		if text[i] == '\n' || protocol.UInteger(units) >= pos.Character {
			return i
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return len(text)
}

// applyChange applies a content change event to text.
func applyChange(text string, change any) string {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text
	case *protocol.TextDocumentContentChangeEventWhole:
		return c.Text
	case protocol.TextDocumentContentChangeEvent:
		return applyRange(text, c)
	case *protocol.TextDocumentContentChangeEvent:
		return applyRange(text, *c)
	}
	return text
}

func applyRange(text string, c protocol.TextDocumentContentChangeEvent) string {
	if c.Range == nil {
		return c.Text
	}
	start := offset(text, c.Range.Start)
	end := offset(text, c.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + c.Text + text[end:]
}
