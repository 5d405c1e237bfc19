package reactive

import (
	"fmt"
	"reflect"

	"github.com/go-drift/reactive/pkg/errors"
)

// baseHandler intercepts record/sequence targets: pointers to struct,
// array, or slice. Struct members are addressed by exported field name,
// array and slice elements by int index.
//
// A baseHandler also serves wrappers layered over other wrappers
// (readonly over reactive); those delegate every operation to the inner
// wrapper and re-wrap results per their own mode.
type baseHandler struct {
	mode Mode
}

func (h baseHandler) Get(p *Proxy, key any) (result any) {
	defer errors.Recover("reactive.Proxy.Get")
	if inner, ok := p.target.(*Proxy); ok {
		v := inner.Get(key)
		if h.mode.Shallow() {
			return v
		}
		return p.ctx.wrapIfObject(v, h.mode)
	}
	rv := reflect.ValueOf(p.target).Elem()
	fv := resolveMember(rv, key)
	if !h.mode.Readonly() {
		p.ctx.track(p.target, key)
	}
	if !fv.IsValid() {
		return nil
	}
	if h.mode.Shallow() {
		return fv.Interface()
	}
	return wrapNested(p.ctx, h.mode, fv)
}

func (h baseHandler) Set(p *Proxy, key, value any) (ok bool) {
	defer errors.Recover("reactive.Proxy.Set")
	if h.mode.Readonly() {
		reportReadonlyWrite("reactive.Proxy.Set", p, key)
		return false
	}
	if inner, isProxy := p.target.(*Proxy); isProxy {
		return inner.Set(key, value)
	}
	rv := reflect.ValueOf(p.target).Elem()
	fv := resolveMember(rv, key)
	if !fv.IsValid() || !fv.CanSet() {
		return false
	}
	// Deep wrappers store originals, never wrappers.
	if !h.mode.Shallow() {
		value = ToRaw(value)
	}
	old := fv.Interface()
	// Untyped nil means the field's zero value, so a nil write over an
	// already-zero field is not a change.
	nv := reflect.ValueOf(value)
	if value == nil {
		nv = reflect.Zero(fv.Type())
	} else if !nv.Type().AssignableTo(fv.Type()) {
		return false
	}
	fv.Set(nv)
	if hasChanged(old, nv.Interface()) {
		p.ctx.trigger(p.target, key)
	}
	return true
}

func (h baseHandler) Has(p *Proxy, key any) (ok bool) {
	defer errors.Recover("reactive.Proxy.Has")
	if inner, isProxy := p.target.(*Proxy); isProxy {
		return inner.Has(key)
	}
	rv := reflect.ValueOf(p.target).Elem()
	fv := resolveMember(rv, key)
	if !h.mode.Readonly() {
		p.ctx.track(p.target, key)
	}
	return fv.IsValid()
}

func (h baseHandler) Delete(p *Proxy, key any) (ok bool) {
	defer errors.Recover("reactive.Proxy.Delete")
	if h.mode.Readonly() {
		reportReadonlyWrite("reactive.Proxy.Delete", p, key)
		return false
	}
	if inner, isProxy := p.target.(*Proxy); isProxy {
		return inner.Delete(key)
	}
	// Records and sequences have fixed shape.
	return false
}

func (h baseHandler) Keys(p *Proxy) (keys []any) {
	defer errors.Recover("reactive.Proxy.Keys")
	if inner, isProxy := p.target.(*Proxy); isProxy {
		return inner.Keys()
	}
	rv := reflect.ValueOf(p.target).Elem()
	if !h.mode.Readonly() {
		p.ctx.track(p.target, IterateKey)
	}
	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		keys = make([]any, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				keys = append(keys, f.Name)
			}
		}
		return keys
	case reflect.Array, reflect.Slice:
		keys = make([]any, rv.Len())
		for i := range keys {
			keys[i] = i
		}
		return keys
	}
	return nil
}

// resolveMember locates the member named by key: an exported struct
// field, or an in-range element index. Invalid for everything else.
func resolveMember(rv reflect.Value, key any) reflect.Value {
	switch rv.Kind() {
	case reflect.Struct:
		name, ok := key.(string)
		if !ok {
			return reflect.Value{}
		}
		fv := rv.FieldByName(name)
		if !fv.IsValid() || !fv.CanInterface() {
			return reflect.Value{}
		}
		return fv
	case reflect.Array, reflect.Slice:
		i, ok := key.(int)
		if !ok || i < 0 || i >= rv.Len() {
			return reflect.Value{}
		}
		return rv.Index(i)
	}
	return reflect.Value{}
}

// wrapNested wraps a member value read through a deep wrapper.
// Addressable structs, arrays, and slices wrap through their address;
// maps and pointers wrap directly. Non-addressable composites (map
// values) and everything ineligible come back as-is.
func wrapNested(c *Context, mode Mode, fv reflect.Value) any {
	switch fv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Interface:
		return wrapNested(c, mode, fv.Elem())
	case reflect.Struct, reflect.Array, reflect.Slice:
		if fv.CanAddr() {
			return c.wrap(fv.Addr().Interface(), mode)
		}
	case reflect.Map, reflect.Pointer:
		return c.wrapIfObject(fv.Interface(), mode)
	}
	if !fv.CanInterface() {
		return nil
	}
	return fv.Interface()
}

// reportReadonlyWrite emits the debug diagnostic for a rejected mutation.
func reportReadonlyWrite(op string, p *Proxy, key any) {
	if !DebugMode {
		return
	}
	errors.Report(&errors.ReactiveError{
		Op:     op,
		Kind:   errors.KindReadonlyWrite,
		Target: fmt.Sprintf("%T", p.target),
		Err:    fmt.Errorf("mutation of key %v ignored: wrapper is %s", key, p.mode),
	})
}
