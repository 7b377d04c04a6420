/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package plugin loads external class sorters.
//
// Two sources are supported: an npm package (prettier-plugin-tailwindcss by
// default) driven through a node subprocess, and a Go script interpreted
// with yaegi.
package plugin

import (
	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/sorter"
)

// Settings selects and configures the external sorter sources.
type Settings struct {
	// Disabled turns external acquisition off; the fallback is permanent.
	Disabled bool

	// Script is the path of a Go sorter script. Tried before node.
	Script string

	// NodeModulesRoot is the directory where node_modules lookup starts.
	NodeModulesRoot string

	// Node is the node executable name or path.
	Node string

	// Package is the npm package providing the sorter.
	Package string
}

// Loader returns the loader described by s, or nil when acquisition is
// disabled. Extra node options are applied after the settings.
func (s Settings) Loader(filesystem twfs.FileSystem, nodeOpts ...NodeOption) sorter.Loader {
	if s.Disabled {
		return nil
	}
	var loaders []sorter.Loader
	if s.Script != "" {
		loaders = append(loaders, NewScriptLoaderFS(filesystem, s.Script))
	}
	root := s.NodeModulesRoot
	if root == "" {
		root = "."
	}
	opts := append([]NodeOption{WithPackage(s.Package), WithNode(s.Node)}, nodeOpts...)
	loaders = append(loaders, NewNodeLoader(filesystem, root, opts...))
	return sorter.FirstOf(loaders...)
}
