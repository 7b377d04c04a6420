/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package plugin

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"os/exec"
	"strings"

	"gitlab.com/tozd/go/errors"

	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/sorter"
	"bennypowers.dev/twsort/specifier"
)

// DefaultPackage is the npm package providing the authoritative sorter.
const DefaultPackage = "prettier-plugin-tailwindcss"

// DefaultNode is the node executable looked up on PATH.
const DefaultNode = "node"

var (
	//go:embed bridge/probe.mjs
	probeScript string

	//go:embed bridge/sort.mjs
	sortScript string
)

// Runner runs a command in dir with stdin and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, stdin []byte, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, errors.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, errors.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// NodeLoader acquires the sorter exported by an npm package through node.
type NodeLoader struct {
	fs       twfs.FileSystem
	root     string
	pkg      string
	node     string
	runner   Runner
	lookPath func(string) (string, error)
}

// NodeOption configures a NodeLoader.
type NodeOption func(*NodeLoader)

// WithPackage overrides the npm package name.
func WithPackage(pkg string) NodeOption {
	return func(l *NodeLoader) {
		if pkg != "" {
			l.pkg = pkg
		}
	}
}

// WithNode overrides the node executable.
func WithNode(node string) NodeOption {
	return func(l *NodeLoader) {
		if node != "" {
			l.node = node
		}
	}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) NodeOption {
	return func(l *NodeLoader) {
		l.runner = r
	}
}

// WithLookPath replaces executable lookup.
func WithLookPath(fn func(string) (string, error)) NodeOption {
	return func(l *NodeLoader) {
		l.lookPath = fn
	}
}

// NewNodeLoader creates a loader that looks for the package in node_modules
// starting at root.
func NewNodeLoader(filesystem twfs.FileSystem, root string, opts ...NodeOption) *NodeLoader {
	l := &NodeLoader{
		fs:       filesystem,
		root:     root,
		pkg:      DefaultPackage,
		node:     DefaultNode,
		runner:   ExecRunner{},
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type probeResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Load implements sorter.Loader.
func (l *NodeLoader) Load(ctx context.Context) (sorter.External, error) {
	resolver := specifier.NewNPMResolver(l.fs, l.root)
	dir, err := resolver.ResolvePackage(l.pkg)
	if err != nil {
		if errors.Is(err, specifier.ErrPackageNotFound) {
			return nil, errors.Errorf("%w: %s", sorter.ErrUnavailable, err)
		}
		return nil, errors.Errorf("resolving %s: %w", l.pkg, err)
	}

	nodePath, err := l.lookPath(l.node)
	if err != nil {
		return nil, errors.Errorf("%w: %s", sorter.ErrUnavailable, err)
	}

	out, err := l.runner.Run(ctx, l.root, nil, nodePath, "--input-type=module", "-e", probeScript, l.pkg)
	if err != nil {
		return nil, errors.Errorf("probing %s: %w", dir, err)
	}
	var probe probeResult
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, errors.Errorf("probing %s: %w", dir, err)
	}
	if !probe.OK {
		if probe.Error != "" {
			return nil, errors.Errorf("%w: %s: %s", sorter.ErrShape, l.pkg, probe.Error)
		}
		return nil, errors.Errorf("%w: %s does not export parsers.babel.preprocess", sorter.ErrShape, l.pkg)
	}

	return &NodeSorter{
		node:   nodePath,
		root:   l.root,
		pkg:    l.pkg,
		runner: l.runner,
	}, nil
}

// NodeSorter calls parsers.babel.preprocess of an npm package through node.
type NodeSorter struct {
	node   string
	root   string
	pkg    string
	runner Runner
}

type sortRequest struct {
	Fragment string         `json:"fragment"`
	Options  sorter.Options `json:"options"`
}

type sortResponse struct {
	Result *string `json:"result"`
	Error  string  `json:"error"`
}

// Name implements sorter.Named.
func (s *NodeSorter) Name() string {
	return specifier.NPM(s.pkg, "")
}

// SortFragment implements sorter.External.
func (s *NodeSorter) SortFragment(ctx context.Context, fragment string, opts sorter.Options) (string, error) {
	payload, err := json.Marshal(sortRequest{Fragment: fragment, Options: opts})
	if err != nil {
		return "", errors.Errorf("encoding request: %w", err)
	}
	out, err := s.runner.Run(ctx, s.root, payload, s.node, "--input-type=module", "-e", sortScript, s.pkg)
	if err != nil {
		return "", err
	}
	var resp sortResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", errors.Errorf("decoding response: %w", err)
	}
	if resp.Error != "" {
		return "", errors.Errorf("%s: %s", s.pkg, resp.Error)
	}
	if resp.Result == nil {
		return "", errors.Errorf("%s: empty response", s.pkg)
	}
	return *resp.Result, nil
}
