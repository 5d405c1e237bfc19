package reactive

// Reactive returns a mutable, deep wrapper over target using the default
// context. Ineligible values are returned unchanged. Calling Reactive
// twice with the same target returns the same wrapper.
func Reactive(target any) any { return defaultContext.Reactive(target) }

// ShallowReactive returns a mutable wrapper that leaves nested values
// unwrapped, using the default context.
func ShallowReactive(target any) any { return defaultContext.ShallowReactive(target) }

// Readonly returns a readonly, deep wrapper over target using the
// default context.
func Readonly(target any) any { return defaultContext.Readonly(target) }

// ShallowReadonly returns a readonly wrapper that leaves nested values
// unwrapped, using the default context.
func ShallowReadonly(target any) any { return defaultContext.ShallowReadonly(target) }

// IsReactive reports whether v is a mutable wrapper. A readonly view
// over a mutable wrapper still reports true: the check delegates to the
// wrapped value.
func IsReactive(v any) bool {
	p, ok := v.(*Proxy)
	if !ok {
		return false
	}
	if p.mode.Readonly() {
		return IsReactive(p.target)
	}
	return true
}

// IsReadonly reports whether v is a readonly wrapper.
func IsReadonly(v any) bool {
	p, ok := v.(*Proxy)
	return ok && p.mode.Readonly()
}

// IsShallow reports whether v is a shallow wrapper.
func IsShallow(v any) bool {
	p, ok := v.(*Proxy)
	return ok && p.mode.Shallow()
}

// IsProxy reports whether v is a wrapper of any kind.
func IsProxy(v any) bool {
	_, ok := v.(*Proxy)
	return ok
}

// ToRaw recovers the original value from an arbitrary wrapper chain.
// Unwrapped values are returned unchanged. Terminates because each step
// strictly follows the chain toward the unwrapped ancestor.
func ToRaw(v any) any {
	if p, ok := v.(*Proxy); ok {
		return ToRaw(p.target)
	}
	return v
}

// ToReactive wraps object-like values mutably in the default context and
// passes everything else through.
func ToReactive(v any) any { return defaultContext.ToReactive(v) }

// ToReadonly wraps object-like values readonly in the default context
// and passes everything else through.
func ToReadonly(v any) any { return defaultContext.ToReadonly(v) }
