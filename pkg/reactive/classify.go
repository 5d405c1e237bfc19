package reactive

import "reflect"

// targetKind is the structural classification of a candidate target.
type targetKind int

const (
	// targetInvalid marks values that must pass through unwrapped.
	targetInvalid targetKind = iota
	// targetCommon marks record/sequence targets: non-nil pointers to
	// struct, array, or slice.
	targetCommon
	// targetCollection marks associative targets: maps, or non-nil
	// pointers to map.
	targetCollection
)

// classify decides eligibility and structural kind for a target.
// Skip-flagged targets are invalid regardless of shape. No recursion,
// no side effects.
func classify(target any) targetKind {
	if target == nil || isSkipped(target) {
		return targetInvalid
	}
	rv := reflect.ValueOf(target)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return targetInvalid
		}
		return targetCollection
	case reflect.Pointer:
		if rv.IsNil() {
			return targetInvalid
		}
		switch rv.Type().Elem().Kind() {
		case reflect.Struct, reflect.Array, reflect.Slice:
			return targetCommon
		case reflect.Map:
			return targetCollection
		}
	}
	return targetInvalid
}

// isObjectLike reports whether a value is even a candidate for wrapping.
// Values that fail this test trigger the debug diagnostic in the factory;
// values that pass but classify as invalid stay silent.
func isObjectLike(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Pointer, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// identityOf returns the identity word for an object-like value: the
// pointer for pointer targets, the header word for maps. Zero for
// anything without a stable identity.
func identityOf(v any) uintptr {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		return rv.Pointer()
	}
	return 0
}
