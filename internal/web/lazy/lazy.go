// Package lazy defers building page components until first use.
//
// A Component runs its loader on first Load. Concurrent first callers share
// one in-flight load. A successful result is kept for the life of the
// process; a failed load is reported to every waiter and retried by the next
// caller.
package lazy

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader builds a component.
type Loader func(ctx context.Context) (templ.Component, error)

// LoadError reports a component that could not be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load component %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Component is a lazily loaded templ.Component.
type Component struct {
	name    string
	loader  Loader
	metrics *Registry

	group singleflight.Group

	mu     sync.RWMutex
	loaded templ.Component
}

var _ templ.Component = (*Component)(nil)

// New returns a component named name that is built by loader on first use.
func New(name string, loader Loader) *Component {
	return &Component{name: name, loader: loader}
}

// Name identifies the component in errors and metrics.
func (c *Component) Name() string { return c.name }

// Loaded reports whether a load has succeeded.
func (c *Component) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded != nil
}

// Load returns the built component, running the loader if no load has
// succeeded yet. Waiting stops when ctx is done; the shared load goes on.
func (c *Component) Load(ctx context.Context) (templ.Component, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded != nil {
		return loaded, nil
	}

	// The shared load must not die with whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.name, func() (any, error) {
		return c.run(loadCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(templ.Component), nil
	case <-ctx.Done():
		return nil, &LoadError{Name: c.name, Err: ctx.Err()}
	}
}

func (c *Component) run(ctx context.Context) (comp templ.Component, err error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded != nil {
		return loaded, nil
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			comp, err = nil, &LoadError{Name: c.name, Err: fmt.Errorf("panic: %v", r)}
		}
		c.metrics.observe(c.name, err, time.Since(start))
	}()

	comp, err = c.loader(ctx)
	if err == nil && comp == nil {
		err = fmt.Errorf("loader returned no component")
	}
	if err != nil {
		return nil, &LoadError{Name: c.name, Err: err}
	}

	c.mu.Lock()
	c.loaded = comp
	c.mu.Unlock()
	return comp, nil
}

// Render loads the component if needed and renders it.
func (c *Component) Render(ctx context.Context, w io.Writer) error {
	comp, err := c.Load(ctx)
	if err != nil {
		return err
	}
	return comp.Render(ctx, w)
}

// Preload loads every component concurrently and returns the first error.
func Preload(ctx context.Context, comps ...*Component) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, comp := range comps {
		if comp == nil || comp.Loaded() {
			continue
		}
		g.Go(func() error {
			_, err := comp.Load(gctx)
			return err
		})
	}
	return g.Wait()
}
