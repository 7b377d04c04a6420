/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier parses npm package specifiers and resolves them
// against node_modules.
package specifier

import (
	"regexp"
	"strings"
)

// Kind distinguishes package specifiers from plain paths.
type Kind int

const (
	KindLocal Kind = iota
	KindNPM
)

// NPMPrefix introduces an npm specifier, as in npm:@scope/pkg/file.
const NPMPrefix = "npm:"

// Specifier is a parsed sorter script reference. For npm specifiers
// Package holds the package name and File the path inside it; for local
// paths File holds the path as written.
type Specifier struct {
	Kind    Kind
	Package string
	File    string
	Raw     string
}

// npmPattern splits a specifier into a (possibly scoped) package name and
// an optional file path.
var npmPattern = regexp.MustCompile(`^npm:(@[^/]+/[^/]+|[^/]+)(/.*)?$`)

// Parse classifies spec. Anything that is not a well-formed npm specifier
// is a local path.
func Parse(spec string) *Specifier {
	if m := npmPattern.FindStringSubmatch(spec); m != nil {
		return &Specifier{
			Kind:    KindNPM,
			Package: m[1],
			File:    strings.TrimPrefix(m[2], "/"),
			Raw:     spec,
		}
	}
	return &Specifier{Kind: KindLocal, File: spec, Raw: spec}
}

// NPM builds the specifier string for a file inside an npm package.
func NPM(pkg, file string) string {
	if file == "" {
		return NPMPrefix + pkg
	}
	return NPMPrefix + pkg + "/" + strings.TrimPrefix(file, "/")
}

// IsPackageSpecifier reports whether spec is a well-formed npm specifier.
func IsPackageSpecifier(spec string) bool {
	return Parse(spec).IsNPM()
}

// IsNPM reports whether s names a file in an npm package.
func (s *Specifier) IsNPM() bool {
	return s.Kind == KindNPM
}
