package reactive

// Proxy is an intercepting view over a single target in a single mode.
// Every accessor routes through the interception handler selected when
// the wrapper was built. A Proxy never mutates its target structurally
// and stores no data of its own beyond the binding itself.
//
// The wrapper self-describes through IsReactive, IsReadonly, IsShallow,
// and Raw; these answer from the binding and never touch the target.
type Proxy struct {
	ctx     *Context
	target  any
	mode    Mode
	handler Handler
}

// Get reads the value at key through the interception layer.
func (p *Proxy) Get(key any) any { return p.handler.Get(p, key) }

// Set writes value at key through the interception layer. It reports
// whether the write was applied; readonly wrappers always report false.
func (p *Proxy) Set(key, value any) bool { return p.handler.Set(p, key, value) }

// Has reports whether key exists on the target.
func (p *Proxy) Has(key any) bool { return p.handler.Has(p, key) }

// Delete removes key from the target. It reports whether an entry was
// removed; readonly wrappers always report false.
func (p *Proxy) Delete(key any) bool { return p.handler.Delete(p, key) }

// Keys enumerates the target's keys.
func (p *Proxy) Keys() []any { return p.handler.Keys(p) }

// Raw returns the directly wrapped value: the original, or the inner
// wrapper when this wrapper is layered over another.
func (p *Proxy) Raw() any { return p.target }

// Mode returns the wrapper's mode.
func (p *Proxy) Mode() Mode { return p.mode }

// IsReactive reports whether the wrapper's mode is mutable.
func (p *Proxy) IsReactive() bool { return !p.mode.Readonly() }

// IsReadonly reports whether the wrapper's mode is readonly.
func (p *Proxy) IsReadonly() bool { return p.mode.Readonly() }

// IsShallow reports whether the wrapper's mode is shallow.
func (p *Proxy) IsShallow() bool { return p.mode.Shallow() }
