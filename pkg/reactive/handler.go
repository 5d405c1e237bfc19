package reactive

import (
	"math"
	"reflect"
)

// Handler implements interception for one (structural kind, mode) pair.
// Handlers receive the Proxy so they can reach its target, mode, and
// owning Context. Implementations must be total: misuse degrades to a
// zero value or false, never a panic.
type Handler interface {
	// Get reads the value at key. Missing keys yield nil.
	Get(p *Proxy, key any) any
	// Set writes value at key and reports whether the write was applied.
	Set(p *Proxy, key, value any) bool
	// Has reports whether key exists on the target.
	Has(p *Proxy, key any) bool
	// Delete removes key and reports whether an entry was removed.
	Delete(p *Proxy, key any) bool
	// Keys enumerates the target's keys: field names for structs,
	// indices for arrays and slices, map keys for collections.
	Keys(p *Proxy) []any
}

// HandlerSet supplies the interception layer consumed by a Context: one
// handler per mode for record/sequence targets and one per mode for
// associative collections.
type HandlerSet struct {
	Plain      func(mode Mode) Handler
	Collection func(mode Mode) Handler
}

// DefaultHandlers returns the reflection-based interception layer.
func DefaultHandlers() HandlerSet {
	return HandlerSet{
		Plain:      func(mode Mode) Handler { return baseHandler{mode: mode} },
		Collection: func(mode Mode) Handler { return collectionHandler{mode: mode} },
	}
}

// Tracker observes reads and writes flowing through mutable wrappers.
// Track is called with the key being read; Trigger with the key being
// written. Readonly wrappers report nothing. Implementations decide what
// to record and when to re-run dependents.
type Tracker interface {
	Track(target, key any)
	Trigger(target, key any)
}

type iterationKey struct{}

func (iterationKey) String() string { return "reactive.IterateKey" }

// IterateKey is the key reported for whole-structure operations: Keys
// tracks it, and structural changes (map add/delete) trigger it.
var IterateKey iterationKey

// hasChanged reports whether a write meaningfully altered a value.
// Replacing NaN with NaN counts as unchanged, unlike NaN != NaN.
// Incomparable types always count as changed.
func hasChanged(old, new any) bool {
	ro, rn := reflect.ValueOf(old), reflect.ValueOf(new)
	if !ro.IsValid() || !rn.IsValid() {
		return ro.IsValid() != rn.IsValid()
	}
	if ro.Type() != rn.Type() {
		return true
	}
	switch ro.Kind() {
	case reflect.Float32, reflect.Float64:
		a, b := ro.Float(), rn.Float()
		if math.IsNaN(a) && math.IsNaN(b) {
			return false
		}
		return a != b
	}
	if !ro.Type().Comparable() {
		return true
	}
	return old != new
}
