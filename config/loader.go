/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	twfs "bennypowers.dev/twsort/fs"
)

const (
	// ConfigFileName is the base name of the config file without extension.
	ConfigFileName = "twsort"
	// ConfigDir is the project directory holding the config file.
	ConfigDir = ".config"
)

type decoder struct {
	ext    string
	decode func([]byte, *Config) error
}

// decoders are tried in order; the first config file present wins.
var decoders = []decoder{
	{".yaml", decodeYAML},
	{".yml", decodeYAML},
	{".json", decodeJSONC},
}

func decodeYAML(data []byte, cfg *Config) error {
	return yaml.Unmarshal(data, cfg)
}

func decodeJSONC(data []byte, cfg *Config) error {
	return json.Unmarshal(jsonc.ToJSON(data), cfg)
}

// Load reads .config/twsort.{yaml,yml,json} under rootDir. It returns
// nil, nil when there is no config file.
func Load(filesystem twfs.FileSystem, rootDir string) (*Config, error) {
	for _, d := range decoders {
		p := filepath.Join(rootDir, ConfigDir, ConfigFileName+d.ext)
		if !filesystem.Exists(p) {
			continue
		}

		data, err := filesystem.ReadFile(p)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", p, err)
		}

		cfg := &Config{}
		if err := d.decode(data, cfg); err != nil {
			return nil, errors.Errorf("parsing %s: %w", p, err)
		}
		if len(cfg.Files) == 0 {
			cfg.Files = []string{DefaultFiles}
		}
		return cfg, nil
	}
	return nil, nil
}

// ExpandFiles resolves Files against rootDir.
func (c *Config) ExpandFiles(filesystem twfs.FileSystem, rootDir string) ([]string, error) {
	return ExpandPatterns(filesystem, rootDir, c.Files)
}

// ExpandPatterns resolves each pattern relative to rootDir and returns the
// sorted, deduplicated absolute paths. Literal paths are returned whether
// or not they exist; globs only yield existing files and never descend
// into skipDirs.
func ExpandPatterns(filesystem twfs.FileSystem, rootDir string, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(rootDir, pattern)
		}
		if !containsGlob(pattern) {
			paths = append(paths, pattern)
			continue
		}
		matches, err := glob(filesystem, pattern)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// skipDirs are dependency and build directories that never hold project sources.
var skipDirs = []string{"node_modules", "elm-stuff", ".git"}

func glob(filesystem twfs.FileSystem, pattern string) ([]string, error) {
	base := pattern
	for containsGlob(base) {
		base = filepath.Dir(base)
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(pattern, base), "/")

	var matches []string
	err := fs.WalkDir(filesystem, base, func(p string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		case d.IsDir():
			if p != base && slices.Contains(skipDirs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if ok, _ := doublestar.Match(rel, strings.TrimPrefix(strings.TrimPrefix(p, base), "/")); ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("expanding %s: %w", pattern, err)
	}
	return matches, nil
}
