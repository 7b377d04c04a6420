/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package session assembles the configured sorter, printer and
// preformatter for a CLI or LSP run.
package session

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"bennypowers.dev/twsort/config"
	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/internal/logger"
	"bennypowers.dev/twsort/order"
	"bennypowers.dev/twsort/printer"
	"bennypowers.dev/twsort/sorter"
	"bennypowers.dev/twsort/specifier"
)

// Flag keys shared by the root command and viper.
const (
	KeyRoot        = "root"
	KeyNoExternal  = "no-external"
	KeyScript      = "script"
	KeyNodeModules = "node-modules"
	KeyElmFormat   = "elm-format"
	KeyWait        = "wait"
	KeyLogLevel    = "log-level"
)

// Overrides are command-line values applied on top of the config file.
// Zero values leave the config untouched.
type Overrides struct {
	Root        string
	NoExternal  bool
	Script      string
	NodeModules string
	ElmFormat   bool
	Wait        time.Duration
}

// OverridesFromViper reads overrides bound from flags and TWSORT_* variables.
func OverridesFromViper() Overrides {
	return Overrides{
		Root:        viper.GetString(KeyRoot),
		NoExternal:  viper.GetBool(KeyNoExternal),
		Script:      viper.GetString(KeyScript),
		NodeModules: viper.GetString(KeyNodeModules),
		ElmFormat:   viper.GetBool(KeyElmFormat),
		Wait:        viper.GetDuration(KeyWait),
	}
}

// Session holds everything needed to format Elm sources.
type Session struct {
	FS       twfs.FileSystem
	Root     string
	Config   *config.Config
	Engine   *order.Engine
	Resolver *sorter.Resolver
	Printer  *printer.Printer

	pre    printer.Preformatter
	loader sorter.Loader
}

// New loads config from the project root and builds a session. The
// external sorter is not acquired until Start.
func New(filesystem twfs.FileSystem, ov Overrides) (*Session, error) {
	root, err := projectRoot(ov.Root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	ov.apply(cfg)
	cfg.NodeModules = resolvePath(root, cfg.NodeModules)
	if cfg.NodeModules == "" {
		cfg.NodeModules = root
	}
	cfg.Script = resolveScript(filesystem, root, cfg.NodeModules, cfg.Script)

	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, errors.Errorf("building classifier: %w", err)
	}
	engine := order.New(classifier)
	resolver := sorter.New(engine.Order,
		sorter.WithOptions(cfg.SorterOptions()),
		sorter.WithCallTimeout(cfg.Call()),
	)

	var pre printer.Preformatter = printer.Identity{}
	if cfg.ElmFormat {
		pre = printer.ElmFormat{}
	}

	return &Session{
		FS:       filesystem,
		Root:     root,
		Config:   cfg,
		Engine:   engine,
		Resolver: resolver,
		Printer:  printer.New(resolver),
		pre:      pre,
		loader:   cfg.PluginSettings().Loader(filesystem),
	}, nil
}

func (ov Overrides) apply(cfg *config.Config) {
	if ov.NoExternal {
		off := false
		cfg.External = &off
	}
	if ov.Script != "" {
		cfg.Script = ov.Script
	}
	if ov.NodeModules != "" {
		cfg.NodeModules = ov.NodeModules
	}
	if ov.ElmFormat {
		cfg.ElmFormat = true
	}
	if ov.Wait > 0 {
		cfg.WaitTimeout = config.Duration(ov.Wait)
	}
}

func projectRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("resolving root %s: %w", root, err)
	}
	return abs, nil
}

// resolveScript maps a script setting to a file path. npm: specifiers are
// looked up in node_modules; unresolvable ones are kept so loading fails
// over to the next source.
func resolveScript(filesystem twfs.FileSystem, root, nodeModules, script string) string {
	if script == "" {
		return ""
	}
	rf, err := specifier.New(filesystem, nodeModules, root).Resolve(script)
	if err != nil {
		logger.Warn("resolving sorter script %s: %v", script, err)
		return script
	}
	return rf.Path
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Start begins acquiring the external sorter in the background. Formatting
// may proceed at once with the fallback.
func (s *Session) Start(ctx context.Context) {
	s.Resolver.Start(ctx, s.loader)
}

// Settle waits up to the configured timeout for the acquisition attempt.
// On timeout the current sorter stays in use.
func (s *Session) Settle(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.Config.Wait())
	defer cancel()
	if err := s.Resolver.Wait(ctx); err != nil {
		logger.Warn("class sorter not settled, continuing with %s: %v", s.Resolver.Source(), err)
		return
	}
	logger.Debug("class sorter %s (%s)", s.Resolver.Source(), s.Resolver.State())
}

// Pipeline returns the formatting pipeline for this session.
func (s *Session) Pipeline() *printer.Pipeline {
	return &printer.Pipeline{Pre: s.pre, Printer: s.Printer}
}
