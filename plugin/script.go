/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package plugin

import (
	"context"
	"io/fs"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"gitlab.com/tozd/go/errors"

	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/sorter"
)

// ScriptFuncName is the function a sorter script must define:
//
//	func SortClasses(fragment string, options map[string]any) (string, error)
const ScriptFuncName = "SortClasses"

// ScriptFunc is the signature of ScriptFuncName.
type ScriptFunc = func(fragment string, options map[string]any) (string, error)

var packageClause = regexp.MustCompile(`(?m)^package\s+(\w+)`)

// ScriptLoader interprets a Go sorter script with yaegi.
type ScriptLoader struct {
	fs   twfs.FileSystem
	path string
}

// NewScriptLoaderFS creates a loader reading the script from filesystem.
func NewScriptLoaderFS(filesystem twfs.FileSystem, path string) *ScriptLoader {
	return &ScriptLoader{fs: filesystem, path: path}
}

// Load implements sorter.Loader.
func (l *ScriptLoader) Load(ctx context.Context) (sorter.External, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	code, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", sorter.ErrUnavailable, err)
		}
		return nil, errors.Errorf("reading %s: %w", l.path, err)
	}
	if strings.TrimSpace(string(code)) == "" {
		return nil, errors.Errorf("%w: %s is empty", sorter.ErrShape, l.path)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Errorf("loading stdlib symbols: %w", err)
	}
	if _, err := i.Eval(string(code)); err != nil {
		return nil, errors.Errorf("interpreting %s: %w", l.path, err)
	}

	value, err := lookupFunc(i, string(code))
	if err != nil {
		return nil, errors.Errorf("%w: %s must define %s: %s", sorter.ErrShape, l.path, ScriptFuncName, err)
	}
	fn, err := asScriptFunc(value)
	if err != nil {
		return nil, errors.Errorf("%w: %s: %s", sorter.ErrShape, l.path, err)
	}
	return &ScriptSorter{path: l.path, fn: fn}, nil
}

func lookupFunc(i *interp.Interpreter, code string) (reflect.Value, error) {
	value, err := i.Eval(ScriptFuncName)
	if err == nil {
		return value, nil
	}
	if m := packageClause.FindStringSubmatch(code); m != nil && m[1] != "main" {
		return i.Eval(m[1] + "." + ScriptFuncName)
	}
	return reflect.Value{}, err
}

func asScriptFunc(value reflect.Value) (ScriptFunc, error) {
	if !value.IsValid() || value.Kind() != reflect.Func {
		return nil, errors.Errorf("%s is not a function", ScriptFuncName)
	}
	fn, ok := value.Interface().(ScriptFunc)
	if !ok {
		return nil, errors.Errorf("%s has type %s", ScriptFuncName, value.Type())
	}
	return fn, nil
}

// ErrStuck is returned by a ScriptSorter after a call outlived its context.
// The interpreter cannot be interrupted, so the sorter refuses further calls.
var ErrStuck = errors.Base("sorter script did not return")

// ScriptSorter calls a SortClasses function defined by a script. Calls are
// serialized; one that outlives its context poisons the sorter.
type ScriptSorter struct {
	path     string
	mu       sync.Mutex
	fn       ScriptFunc
	poisoned atomic.Bool
}

type scriptResult struct {
	out string
	err error
}

// Name implements sorter.Named.
func (s *ScriptSorter) Name() string {
	return "script:" + s.path
}

// SortFragment implements sorter.External.
func (s *ScriptSorter) SortFragment(ctx context.Context, fragment string, opts sorter.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}
	options := map[string]any{
		"tailwindConfig":    opts.TailwindConfig,
		"tailwindFunctions": opts.TailwindFunctions,
	}
	if s.poisoned.Load() {
		return "", errors.Errorf("%w: %s", ErrStuck, s.Name())
	}

	done := make(chan scriptResult, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.poisoned.Load() {
			done <- scriptResult{err: errors.Errorf("%w: %s", ErrStuck, s.Name())}
			return
		}
		defer func() {
			if p := recover(); p != nil {
				done <- scriptResult{err: errors.Errorf("%s panicked: %v", s.Name(), p)}
			}
		}()
		out, err := s.fn(fragment, options)
		done <- scriptResult{out: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", errors.Errorf("%s: %w", s.Name(), res.err)
		}
		return res.out, nil
	case <-ctx.Done():
		s.poisoned.Store(true)
		return "", errors.Errorf("%s: %w", s.Name(), ctx.Err())
	}
}
