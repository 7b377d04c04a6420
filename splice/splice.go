/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package splice rewrites class-string literals inside formatted Elm source.
//
// Matching is textual. Inputs that do not have the exact shape of a
// pattern are left alone rather than reported.
package splice

import "bennypowers.dev/twsort/internal/logger"

// Source provides the sorter to use for each substitution.
type Source interface {
	Sort(classString string) string
}

// SourceFunc adapts a function to Source.
type SourceFunc func(classString string) string

// Sort calls f.
func (f SourceFunc) Sort(classString string) string {
	return f(classString)
}

// Default returns the built-in patterns in application order.
func Default() []Pattern {
	return []Pattern{Literal(), Concat(), Tuple()}
}

// Splicer applies patterns to formatted text.
type Splicer struct {
	source   Source
	patterns []Pattern
}

// New creates a splicer. With no patterns, Default() is used.
func New(src Source, patterns ...Pattern) *Splicer {
	if len(patterns) == 0 {
		patterns = Default()
	}
	return &Splicer{source: src, patterns: patterns}
}

// Splice returns text with every recognized class payload sorted. Each
// occurrence is sorted by a separate call to the source. If a
// substitution panics, text is returned unchanged.
func (s *Splicer) Splice(text string) (result string) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("class splicing failed, leaving text unchanged: %v", p)
			result = text
		}
	}()

	out := text
	for _, p := range s.patterns {
		out = p.Apply(out, s.source.Sort)
	}
	return out
}
