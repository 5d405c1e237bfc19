package reactive

import (
	"fmt"
	"sync"
	"weak"

	"github.com/go-drift/reactive/pkg/errors"
)

// Context owns the four identity caches, the tracker, and the handler
// set. Independent Contexts are fully isolated: wrapping the same
// original in two Contexts yields two unrelated wrappers.
//
// All methods are safe for concurrent use. The lookup-then-insert window
// of a wrap call is one critical section, so concurrent wraps of the
// same original in the same mode return one wrapper.
type Context struct {
	mu       sync.Mutex
	caches   [modeCount]registry
	tracker  Tracker
	handlers HandlerSet
}

// Option configures a Context.
type Option func(*Context)

// WithTracker installs the tracker that receives Track/Trigger calls
// from mutable wrappers.
func WithTracker(t Tracker) Option {
	return func(c *Context) { c.tracker = t }
}

// WithHandlers replaces the default reflection-based interception layer.
// Nil fields keep their defaults.
func WithHandlers(hs HandlerSet) Option {
	return func(c *Context) {
		if hs.Plain != nil {
			c.handlers.Plain = hs.Plain
		}
		if hs.Collection != nil {
			c.handlers.Collection = hs.Collection
		}
	}
}

// NewContext creates an isolated reactivity context.
func NewContext(opts ...Option) *Context {
	c := &Context{handlers: DefaultHandlers()}
	for i := range c.caches {
		c.caches[i] = newRegistry()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultContext = NewContext()

// Default returns the context backing the package-level constructors.
func Default() *Context { return defaultContext }

// SetTracker installs or replaces the context's tracker. Pass nil to
// detach tracking.
func (c *Context) SetTracker(t Tracker) {
	c.mu.Lock()
	c.tracker = t
	c.mu.Unlock()
}

// track reports a read to the tracker, if one is installed.
func (c *Context) track(target, key any) {
	c.mu.Lock()
	t := c.tracker
	c.mu.Unlock()
	if t != nil {
		t.Track(target, key)
	}
}

// trigger reports a write to the tracker, if one is installed.
func (c *Context) trigger(target, key any) {
	c.mu.Lock()
	t := c.tracker
	c.mu.Unlock()
	if t != nil {
		t.Trigger(target, key)
	}
}

// wrap is the wrapper factory. First match wins:
//
//  1. non-object values pass through (debug diagnostic);
//  2. existing wrappers pass through, except readonly requested over a
//     mutable wrapper, which layers a readonly view over it;
//  3. a cached wrapper is returned;
//  4. ineligible targets pass through silently;
//  5. a wrapper is built with the handler for (kind, mode), registered,
//     and returned.
//
// No path raises; every failure degrades to returning the target.
func (c *Context) wrap(target any, mode Mode) any {
	if !isObjectLike(target) {
		if DebugMode {
			errors.Report(&errors.ReactiveError{
				Op:     "reactive.wrap",
				Kind:   errors.KindInvalidTarget,
				Target: fmt.Sprintf("%T", target),
				Err:    fmt.Errorf("value cannot be made %s", mode),
			})
		}
		return target
	}
	if p, ok := target.(*Proxy); ok {
		// Re-wrapping a wrapper is a no-op, except readonly over a
		// mutable wrapper: that builds a distinct readonly view whose
		// raw is the inner wrapper, keeping enforcement irreversible.
		if !(mode.Readonly() && p.IsReactive()) {
			return target
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := identityOf(target)
	cache := &c.caches[mode]
	if p := cache.lookup(key, target); p != nil {
		return p
	}

	kind := classify(target)
	if kind == targetInvalid {
		return target
	}

	var h Handler
	if kind == targetCollection {
		h = c.handlers.Collection(mode)
	} else {
		h = c.handlers.Plain(mode)
	}
	p := &Proxy{ctx: c, target: target, mode: mode, handler: h}
	cache.register(key, target, p, func(k uintptr, wp weak.Pointer[Proxy]) {
		c.mu.Lock()
		c.caches[mode].remove(k, wp)
		c.mu.Unlock()
	})
	return p
}

// wrapIfObject wraps eligible values and silently passes through the
// rest. Used for nested wrapping and the To* escape hatches, which must
// not emit the non-object diagnostic.
func (c *Context) wrapIfObject(v any, mode Mode) any {
	if !isObjectLike(v) {
		return v
	}
	return c.wrap(v, mode)
}

// Reactive returns a mutable, deep wrapper over target, or target
// unchanged when it is ineligible.
func (c *Context) Reactive(target any) any { return c.wrap(target, ModeReactive) }

// ShallowReactive returns a mutable wrapper that leaves nested values
// unwrapped.
func (c *Context) ShallowReactive(target any) any { return c.wrap(target, ModeShallowReactive) }

// Readonly returns a readonly, deep wrapper over target. Over an
// already-readonly wrapper it returns the wrapper itself; over a mutable
// wrapper it layers a distinct readonly view.
func (c *Context) Readonly(target any) any { return c.wrap(target, ModeReadonly) }

// ShallowReadonly returns a readonly wrapper that leaves nested values
// unwrapped.
func (c *Context) ShallowReadonly(target any) any { return c.wrap(target, ModeShallowReadonly) }

// ToReactive wraps object-like values mutably and passes everything else
// through without diagnostics.
func (c *Context) ToReactive(v any) any { return c.wrapIfObject(v, ModeReactive) }

// ToReadonly wraps object-like values readonly and passes everything
// else through without diagnostics.
func (c *Context) ToReadonly(v any) any { return c.wrapIfObject(v, ModeReadonly) }
