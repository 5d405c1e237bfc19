package reactive

import (
	"reflect"
	"runtime"
	"weak"
)

// registry is one identity-keyed wrapper cache. Each Context holds four,
// one per mode. Entries reference the wrapper weakly: the wrapper holds
// its target strongly, so neither original nor wrapper gains lifetime
// from registry membership, and a live entry's identity word can never
// belong to a different object.
//
// Callers synchronize through the owning Context's mutex.
type registry struct {
	entries map[uintptr]registryEntry
}

type registryEntry struct {
	wrapper weak.Pointer[Proxy]
	// typ is the target's dynamic type. A hit must match it: distinct
	// objects of different types can share an identity word (a struct
	// and its first field, a zero-sized object).
	typ reflect.Type
}

func newRegistry() registry {
	return registry{entries: make(map[uintptr]registryEntry)}
}

// lookup returns the cached wrapper for the target, or nil.
func (r *registry) lookup(key uintptr, target any) *Proxy {
	e, ok := r.entries[key]
	if !ok {
		return nil
	}
	if e.typ != reflect.TypeOf(target) {
		return nil
	}
	p := e.wrapper.Value()
	if p == nil {
		// Wrapper collected; drop the stale entry eagerly.
		delete(r.entries, key)
		return nil
	}
	return p
}

// register associates the target's identity with the wrapper and arranges
// eviction when the wrapper is collected.
func (r *registry) register(key uintptr, target any, p *Proxy, evict func(key uintptr, wp weak.Pointer[Proxy])) {
	wp := weak.Make(p)
	r.entries[key] = registryEntry{wrapper: wp, typ: reflect.TypeOf(target)}
	runtime.AddCleanup(p, func(k uintptr) {
		evict(k, wp)
	}, key)
}

// remove deletes the entry for key if it still holds the given weak
// wrapper. Used by cleanup: the slot may have been re-registered for a
// new object at a recycled identity word.
func (r *registry) remove(key uintptr, wp weak.Pointer[Proxy]) {
	if e, ok := r.entries[key]; ok && e.wrapper == wp {
		delete(r.entries, key)
	}
}
