package reactive

import (
	"reflect"
	"runtime"
	"sync"
)

// The skip set records objects permanently opted out of wrapping. The flag
// belongs to the object, not to a Context, so the set is package-global.
// Entries hold only the identity word and dynamic type, never the object;
// for pointer targets a cleanup drops the entry when the object is
// collected, so membership does not extend its lifetime. Map entries are
// pinned: a map header cannot carry a collection cleanup, and the entry
// is two words.
var (
	skipMu  sync.Mutex
	skipSeq uint64
	skipped = make(map[uintptr]skipEntry)
)

type skipEntry struct {
	typ reflect.Type
	// seq distinguishes this entry from a later one registered at a
	// recycled identity word, so a stale cleanup cannot evict it.
	seq uint64
}

// MarkRaw permanently marks the object *v points to as skip, so no mode
// will ever wrap it. It returns v unchanged. Idempotent, and irreversible
// for the object's lifetime.
//
// When v points to a map, the map itself is flagged as well, so the
// collection stays unwrapped no matter how it is reached. Bare maps can
// also be flagged directly with MarkRawMap.
func MarkRaw[T any](v *T) *T {
	if v == nil {
		return v
	}
	rv := reflect.ValueOf(v)
	if seq, added := registerSkip(rv.Pointer(), rv.Type()); added {
		addSkipCleanup(v, rv.Pointer(), seq)
	}
	if ev := rv.Elem(); ev.Kind() == reflect.Map && !ev.IsNil() {
		registerSkip(ev.Pointer(), ev.Type())
	}
	return v
}

// MarkRawMap is MarkRaw for bare map targets: it permanently marks the
// map as skip and returns it unchanged. Nil maps are a no-op.
func MarkRawMap[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return m
	}
	rv := reflect.ValueOf(m)
	registerSkip(rv.Pointer(), rv.Type())
	return m
}

// registerSkip adds an entry for the identity word, reporting whether it
// was newly added.
func registerSkip(key uintptr, typ reflect.Type) (uint64, bool) {
	skipMu.Lock()
	defer skipMu.Unlock()
	if _, present := skipped[key]; present {
		return 0, false
	}
	skipSeq++
	skipped[key] = skipEntry{typ: typ, seq: skipSeq}
	return skipSeq, true
}

// addSkipCleanup evicts the skip entry once the object is collected.
// AddCleanup rejects some pointers (zero-sized objects, non-heap memory);
// those objects live for the process anyway, so a pinned entry is harmless.
func addSkipCleanup[T any](v *T, key uintptr, seq uint64) {
	defer func() { _ = recover() }()
	runtime.AddCleanup(v, func(k uintptr) {
		skipMu.Lock()
		if e, ok := skipped[k]; ok && e.seq == seq {
			delete(skipped, k)
		}
		skipMu.Unlock()
	}, key)
}

// isSkipped reports whether the target carries the skip flag. The stored
// type must match, so a recycled identity word of a different type never
// reads as skipped. A pointer-to-map target is skipped when its map is.
func isSkipped(target any) bool {
	key := identityOf(target)
	if key == 0 {
		return false
	}
	if lookupSkip(key, reflect.TypeOf(target)) {
		return true
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Pointer && rv.Type().Elem().Kind() == reflect.Map {
		if mv := rv.Elem(); !mv.IsNil() && lookupSkip(mv.Pointer(), mv.Type()) {
			return true
		}
	}
	return false
}

func lookupSkip(key uintptr, typ reflect.Type) bool {
	skipMu.Lock()
	e, ok := skipped[key]
	skipMu.Unlock()
	return ok && e.typ == typ
}
