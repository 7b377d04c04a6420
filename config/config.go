/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for twsort.
package config

import (
	"encoding/json"
	"time"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/twsort/category"
	"bennypowers.dev/twsort/plugin"
	"bennypowers.dev/twsort/sorter"
)

// DefaultFiles is the glob used when no files are configured.
const DefaultFiles = "**/*.elm"

// DefaultWaitTimeout bounds how long the CLI waits for the external
// sorter before formatting with whatever is current.
const DefaultWaitTimeout = 5 * time.Second

// DefaultCallTimeout bounds a single external sorter call.
const DefaultCallTimeout = 10 * time.Second

// Config represents the twsort configuration.
type Config struct {
	// Files specifies Elm sources to format (paths or doublestar globs).
	Files []string `yaml:"files" json:"files"`

	// External enables acquisition of the external sorter. Defaults to true.
	External *bool `yaml:"external" json:"external"`

	// Script is a Go source file defining SortClasses, run by the interpreter.
	Script string `yaml:"script" json:"script"`

	// NodeModules is the directory from which node_modules lookup starts.
	NodeModules string `yaml:"nodeModules" json:"nodeModules"`

	// Node is the node executable.
	Node string `yaml:"node" json:"node"`

	// Package overrides the npm package providing the sorter.
	Package string `yaml:"package" json:"package"`

	// Functions are the Tailwind function names passed to the external sorter.
	Functions []string `yaml:"functions" json:"functions"`

	// TailwindConfig is passed through to the external sorter.
	TailwindConfig map[string]any `yaml:"tailwindConfig" json:"tailwindConfig"`

	// Prefixes adds classification prefixes per category name.
	Prefixes map[string][]string `yaml:"prefixes" json:"prefixes"`

	// Variants adds variant names stripped before classification.
	Variants []string `yaml:"variants" json:"variants"`

	// ElmFormat runs elm-format before sorting.
	ElmFormat bool `yaml:"elmFormat" json:"elmFormat"`

	// WaitTimeout bounds the wait for the external sorter.
	WaitTimeout Duration `yaml:"waitTimeout" json:"waitTimeout"`

	// CallTimeout bounds each external sorter call before the fallback answers.
	CallTimeout Duration `yaml:"callTimeout" json:"callTimeout"`
}

// Duration is a time.Duration written as a Go duration string ("5s") or
// as a number of milliseconds.
type Duration time.Duration

// UnmarshalYAML handles both string and number forms for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var ms int64
		if err := node.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	return d.parse(node.Value)
}

// UnmarshalJSON handles both string and number forms for Duration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Errorf("invalid duration %s: %w", data, err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Files: []string{DefaultFiles},
	}
}

// ExternalEnabled reports whether the external sorter should be tried.
func (c *Config) ExternalEnabled() bool {
	return c.External == nil || *c.External
}

// Call returns the configured per-call timeout or DefaultCallTimeout.
func (c *Config) Call() time.Duration {
	if c.CallTimeout <= 0 {
		return DefaultCallTimeout
	}
	return time.Duration(c.CallTimeout)
}

// Wait returns the configured wait timeout or DefaultWaitTimeout.
func (c *Config) Wait() time.Duration {
	if c.WaitTimeout <= 0 {
		return DefaultWaitTimeout
	}
	return time.Duration(c.WaitTimeout)
}

// CategoryPrefixes converts Prefixes to category keys.
func (c *Config) CategoryPrefixes() (map[category.Category][]string, error) {
	if len(c.Prefixes) == 0 {
		return nil, nil
	}
	out := make(map[category.Category][]string, len(c.Prefixes))
	for name, prefixes := range c.Prefixes {
		cat, err := category.Parse(name)
		if err != nil {
			return nil, errors.Errorf("prefixes: %w", err)
		}
		out[cat] = append(out[cat], prefixes...)
	}
	return out, nil
}

// Classifier builds the classifier described by Prefixes and Variants.
// Without either it returns the default classifier.
func (c *Config) Classifier() (*category.Classifier, error) {
	if len(c.Prefixes) == 0 && len(c.Variants) == 0 {
		return category.Default(), nil
	}
	extra, err := c.CategoryPrefixes()
	if err != nil {
		return nil, err
	}
	variants := append(category.DefaultVariants(), c.Variants...)
	return category.NewClassifier(category.DefaultTable().Extend(extra), variants), nil
}

// SorterOptions returns the options handed to the external sorter.
func (c *Config) SorterOptions() sorter.Options {
	opts := sorter.DefaultOptions()
	if len(c.Functions) > 0 {
		opts.TailwindFunctions = append([]string(nil), c.Functions...)
	}
	if c.TailwindConfig != nil {
		opts.TailwindConfig = c.TailwindConfig
	}
	return opts
}

// PluginSettings returns the external loader settings.
func (c *Config) PluginSettings() plugin.Settings {
	return plugin.Settings{
		Disabled:        !c.ExternalEnabled(),
		Script:          c.Script,
		NodeModulesRoot: c.NodeModules,
		Node:            c.Node,
		Package:         c.Package,
	}
}
