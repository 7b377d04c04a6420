/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package splice

import (
	"regexp"
	"strings"
)

// Pattern finds class-bearing expressions in text and rewrites their
// class-string payloads with sort. Text outside a payload is preserved.
type Pattern interface {
	Name() string
	Apply(text string, sort func(string) string) string
}

// Keyword is the function name introducing a class attribute.
const Keyword = "class"

var (
	// literalPattern matches: class "<classes>"
	literalPattern = regexp.MustCompile(`\bclass(\s+)"([^"]+)"`)

	// concatPattern matches: class "<classes>" ++ "<classes>"
	concatPattern = regexp.MustCompile(`\bclass(\s+)"([^"]+)"(\s*\+{2}\s*)"([^"]+)"`)

	// tuplePattern matches: ( "<classes>", <condition> )
	tuplePattern = regexp.MustCompile(`\((\s*)"([^"]+)"(\s*,\s*)([^)]+)\)`)
)

type literal struct{}

// Literal rewrites `class "..."`.
func Literal() Pattern { return literal{} }

func (literal) Name() string { return "literal" }

func (literal) Apply(text string, sort func(string) string) string {
	return replaceAllSubmatchFunc(literalPattern, text, func(groups []string) string {
		return Keyword + groups[1] + `"` + sort(strings.TrimSpace(groups[2])) + `"`
	})
}

type concat struct{}

// Concat rewrites `class "..." ++ "..."`, sorting each side on its own.
func Concat() Pattern { return concat{} }

func (concat) Name() string { return "concat" }

func (concat) Apply(text string, sort func(string) string) string {
	return replaceAllSubmatchFunc(concatPattern, text, func(groups []string) string {
		first := sort(strings.TrimSpace(groups[2]))
		second := sort(strings.TrimSpace(groups[4]))
		return Keyword + groups[1] + `"` + first + `"` + groups[3] + `"` + second + `"`
	})
}

type tuple struct{}

// Tuple rewrites `( "...", condition )` entries of a class list. The
// condition is left untouched.
func Tuple() Pattern { return tuple{} }

func (tuple) Name() string { return "tuple" }

func (tuple) Apply(text string, sort func(string) string) string {
	return replaceAllSubmatchFunc(tuplePattern, text, func(groups []string) string {
		return "(" + groups[1] + `"` + sort(strings.TrimSpace(groups[2])) + `"` + groups[3] + groups[4] + ")"
	})
}

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to
// submatches. groups[0] is the whole match.
func replaceAllSubmatchFunc(re *regexp.Regexp, text string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		sb.WriteString(text[last:loc[0]])
		sb.WriteString(repl(groups))
		last = loc[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}
