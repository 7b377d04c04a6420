/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	twfs "bennypowers.dev/twsort/fs"
)

// ErrPackageNotFound is returned when no node_modules directory holds the package.
var ErrPackageNotFound = errors.Base("package not found")

// NPMResolver resolves npm: specifiers by walking up from a starting
// directory through each ancestor's node_modules, the way node does.
type NPMResolver struct {
	fs    twfs.FileSystem
	start string
}

// NewNPMResolver creates a resolver whose node_modules lookup begins at start.
func NewNPMResolver(fs twfs.FileSystem, start string) *NPMResolver {
	return &NPMResolver{fs: fs, start: start}
}

// Resolve returns the first existing node_modules entry for spec.
func (r *NPMResolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if !parsed.IsNPM() {
		return nil, errors.Errorf("%w: %q is not an npm specifier", ErrUnresolvable, spec)
	}

	start, err := filepath.Abs(r.start)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, dir := range ancestors(start) {
		candidate := filepath.Join(dir, "node_modules", parsed.Package, parsed.File)
		if r.fs.Exists(candidate) {
			return &ResolvedFile{Specifier: spec, Path: candidate, Kind: KindNPM}, nil
		}
	}
	return nil, errors.Errorf("%w: %s (searched node_modules from %s)", ErrPackageNotFound, parsed.Package, start)
}

// CanResolve reports whether spec carries the npm: prefix.
func (r *NPMResolver) CanResolve(spec string) bool {
	return strings.HasPrefix(spec, NPMPrefix)
}

// ResolvePackage returns the directory of an installed package.
func (r *NPMResolver) ResolvePackage(pkg string) (string, error) {
	rf, err := r.Resolve(NPM(pkg, ""))
	if err != nil {
		return "", err
	}
	return rf.Path, nil
}

// ancestors lists dir followed by each of its parents up to the root.
func ancestors(dir string) []string {
	dirs := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dirs = append(dirs, parent)
		dir = parent
	}
}
