/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package sorter resolves which class sorter is active.
//
// A Resolver starts with a fallback sorter that is usable immediately and
// makes a single asynchronous attempt to acquire an authoritative external
// sorter. On success the external sorter replaces the fallback; on failure
// the fallback stays for the life of the resolver.
package sorter

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// Func sorts a class string.
type Func func(classString string) string

// Sort calls f.
func (f Func) Sort(classString string) string {
	return f(classString)
}

// DefaultFunctions are the function names treated as class-bearing.
var DefaultFunctions = []string{"class", "classList"}

// Options is the configuration object passed to an external sorter.
type Options struct {
	// TailwindConfig is the framework configuration object.
	TailwindConfig map[string]any `json:"tailwindConfig"`

	// TailwindFunctions names functions whose arguments carry classes.
	TailwindFunctions []string `json:"tailwindFunctions"`
}

// DefaultOptions returns an empty framework configuration and DefaultFunctions.
func DefaultOptions() Options {
	return Options{
		TailwindConfig:    map[string]any{},
		TailwindFunctions: append([]string(nil), DefaultFunctions...),
	}
}

// External is an authoritative class sorter. It receives an HTML fragment
// and returns it with its class attribute rewritten in sorted order.
type External interface {
	SortFragment(ctx context.Context, fragment string, opts Options) (string, error)
}

// Named is implemented by externals that can describe their origin.
type Named interface {
	Name() string
}

// Loader acquires an external sorter.
type Loader interface {
	Load(ctx context.Context) (External, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (External, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (External, error) {
	return f(ctx)
}

var (
	// ErrUnavailable means the external dependency is not installed.
	ErrUnavailable = errors.Base("external sorter unavailable")

	// ErrShape means the dependency is present but does not expose the
	// expected callable.
	ErrShape = errors.Base("external sorter has unexpected shape")
)

// FirstOf returns a loader that tries each loader in order and returns the
// first external acquired. If all fail, the errors are joined.
func FirstOf(loaders ...Loader) Loader {
	return LoaderFunc(func(ctx context.Context) (External, error) {
		var errs []error
		for _, l := range loaders {
			if l == nil {
				continue
			}
			ext, err := l.Load(ctx)
			if err == nil {
				return ext, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return nil, errors.WithStack(ErrUnavailable)
		}
		return nil, errors.Join(errs...)
	})
}
