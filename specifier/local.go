/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "path/filepath"

// LocalResolver resolves plain filesystem paths. Relative paths are
// anchored at BaseDir; an empty BaseDir leaves them relative.
type LocalResolver struct {
	BaseDir string
}

// Resolve anchors spec at BaseDir unless it is already absolute.
func (r LocalResolver) Resolve(spec string) (*ResolvedFile, error) {
	p := spec
	if r.BaseDir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(r.BaseDir, p)
	}
	return &ResolvedFile{Specifier: spec, Path: p, Kind: KindLocal}, nil
}

// CanResolve reports whether spec is anything other than a package specifier.
func (r LocalResolver) CanResolve(spec string) bool {
	return spec != "" && !IsPackageSpecifier(spec)
}
