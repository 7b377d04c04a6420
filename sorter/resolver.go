/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package sorter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tozd/go/errors"

	"bennypowers.dev/twsort/internal/logger"
)

// State is the lifecycle state of a Resolver.
type State int32

const (
	// FallbackActive is the initial state: no acquisition attempted yet.
	FallbackActive State = iota
	// Attempting means acquisition is in flight; the fallback serves calls.
	Attempting
	// ExternalActive means the external sorter was acquired.
	ExternalActive
	// FallbackFinal means acquisition failed; the fallback is permanent.
	FallbackFinal
)

func (s State) String() string {
	switch s {
	case FallbackActive:
		return "fallback-active"
	case Attempting:
		return "external-attempted"
	case ExternalActive:
		return "external-active"
	case FallbackFinal:
		return "fallback-final"
	default:
		return "unknown"
	}
}

// FallbackSource is the Source name reported while the fallback is active.
const FallbackSource = "fallback"

type active struct {
	source string
	sort   Func
}

// Resolver owns the current sorter. Sort and Current never block.
type Resolver struct {
	fallback    Func
	opts        Options
	callTimeout time.Duration

	current atomic.Pointer[active]
	state   atomic.Int32
	ready   atomic.Bool

	start   sync.Once
	settled chan struct{}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOptions sets the options passed to the external sorter.
func WithOptions(opts Options) Option {
	return func(r *Resolver) {
		r.opts = opts
	}
}

// WithCallTimeout bounds each external sorter call.
func WithCallTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.callTimeout = d
	}
}

// New creates a resolver whose fallback is active and ready immediately.
func New(fallback Func, opts ...Option) *Resolver {
	r := &Resolver{
		fallback:    fallback,
		opts:        DefaultOptions(),
		callTimeout: 10 * time.Second,
		settled:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(&active{source: FallbackSource, sort: fallback})
	r.ready.Store(true)
	return r
}

// Sort sorts classString with the current sorter.
func (r *Resolver) Sort(classString string) string {
	return r.current.Load().sort(classString)
}

// Current returns a snapshot of the current sorter.
func (r *Resolver) Current() Func {
	return r.current.Load().sort
}

// Source names the current sorter.
func (r *Resolver) Source() string {
	return r.current.Load().source
}

// State returns the lifecycle state.
func (r *Resolver) State() State {
	return State(r.state.Load())
}

// Ready reports whether a sorter is usable. It is true from construction.
func (r *Resolver) Ready() bool {
	return r.ready.Load()
}

// Settled is closed once the acquisition attempt has resolved.
func (r *Resolver) Settled() <-chan struct{} {
	return r.settled
}

// Wait blocks until the acquisition attempt resolves or ctx is done.
// Callers that need the final sorter choice use it before formatting.
func (r *Resolver) Wait(ctx context.Context) error {
	select {
	case <-r.Settled():
		return nil
	case <-ctx.Done():
		return errors.Errorf("waiting for class sorter: %w", ctx.Err())
	}
}

// Start launches the acquisition attempt. Only the first call has effect.
// A nil loader settles the resolver on the fallback.
func (r *Resolver) Start(ctx context.Context, loader Loader) {
	r.start.Do(func() {
		r.state.Store(int32(Attempting))
		go r.acquire(ctx, loader)
	})
}

func (r *Resolver) acquire(ctx context.Context, loader Loader) {
	defer close(r.settled)
	defer r.ready.Store(true)

	ext, err := r.load(ctx, loader)
	if err != nil {
		logger.Warn("could not load external class sorter, using fallback: %v", err)
		r.state.Store(int32(FallbackFinal))
		return
	}

	source := "external"
	if named, ok := ext.(Named); ok {
		source = named.Name()
	}
	guarded := Guard(ext, r.fallback, r.opts, r.callTimeout)
	r.current.Store(&active{source: source, sort: guarded})
	r.state.Store(int32(ExternalActive))
	logger.Debug("using external class sorter %s", source)
}

func (r *Resolver) load(ctx context.Context, loader Loader) (ext External, err error) {
	if loader == nil {
		return nil, errors.WithStack(ErrUnavailable)
	}
	defer func() {
		if p := recover(); p != nil {
			ext = nil
			err = errors.Errorf("loader panicked: %v", p)
		}
	}()
	ext, err = loader.Load(ctx)
	if err == nil && ext == nil {
		err = errors.WithStack(ErrShape)
	}
	return ext, err
}
