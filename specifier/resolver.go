/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"gitlab.com/tozd/go/errors"

	twfs "bennypowers.dev/twsort/fs"
)

// ErrUnresolvable is returned when no resolver in a chain accepts a specifier.
var ErrUnresolvable = errors.Base("no resolver for specifier")

// ResolvedFile preserves both the original specifier and the resolved filesystem path.
type ResolvedFile struct {
	Specifier string
	Path      string
	Kind      Kind
}

// Resolver resolves specifiers to filesystem paths.
type Resolver interface {
	Resolve(spec string) (*ResolvedFile, error)
	CanResolve(spec string) bool
}

// ChainResolver tries multiple resolvers in order.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a resolver that tries each resolver in order.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// New resolves npm: specifiers from node_modules directories at or above
// nodeModulesDir and anchors local paths at baseDir.
func New(fs twfs.FileSystem, nodeModulesDir, baseDir string) *ChainResolver {
	return NewChainResolver(
		NewNPMResolver(fs, nodeModulesDir),
		LocalResolver{BaseDir: baseDir},
	)
}

// Resolve hands spec to the first resolver that accepts it.
func (c *ChainResolver) Resolve(spec string) (*ResolvedFile, error) {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return r.Resolve(spec)
		}
	}
	return nil, errors.Errorf("%w: %q", ErrUnresolvable, spec)
}

// CanResolve returns true if any resolver can handle the specifier.
func (c *ChainResolver) CanResolve(spec string) bool {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return true
		}
	}
	return false
}
