package reactive

import (
	"reflect"

	"github.com/go-drift/reactive/pkg/errors"
)

// collectionHandler intercepts associative targets: maps, or pointers to
// map. Map values are not addressable, so deep modes wrap nested maps
// and pointers but return struct values as-is.
type collectionHandler struct {
	mode Mode
}

func (h collectionHandler) Get(p *Proxy, key any) (result any) {
	defer errors.Recover("reactive.Proxy.Get")
	mv := mapOf(p.target)
	if !h.mode.Readonly() {
		p.ctx.track(p.target, key)
	}
	if !mv.IsValid() || mv.IsNil() {
		return nil
	}
	rk, ok := mapKey(mv, key)
	if !ok {
		return nil
	}
	fv := mv.MapIndex(rk)
	if !fv.IsValid() {
		return nil
	}
	if h.mode.Shallow() {
		return fv.Interface()
	}
	return wrapNested(p.ctx, h.mode, fv)
}

func (h collectionHandler) Set(p *Proxy, key, value any) (ok bool) {
	defer errors.Recover("reactive.Proxy.Set")
	if h.mode.Readonly() {
		reportReadonlyWrite("reactive.Proxy.Set", p, key)
		return false
	}
	mv := mapOf(p.target)
	if !mv.IsValid() {
		return false
	}
	if mv.IsNil() {
		// A pointer-to-map target may still hold a nil map.
		if !mv.CanSet() {
			return false
		}
		mv.Set(reflect.MakeMap(mv.Type()))
	}
	rk, keyOK := mapKey(mv, key)
	if !keyOK {
		return false
	}
	if !h.mode.Shallow() {
		value = ToRaw(value)
	}
	vt := mv.Type().Elem()
	var nv reflect.Value
	if value == nil {
		nv = reflect.Zero(vt)
	} else {
		nv = reflect.ValueOf(value)
		if !nv.Type().AssignableTo(vt) {
			return false
		}
	}
	old := mv.MapIndex(rk)
	mv.SetMapIndex(rk, nv)
	if !old.IsValid() {
		p.ctx.trigger(p.target, key)
		p.ctx.trigger(p.target, IterateKey)
	} else if hasChanged(old.Interface(), nv.Interface()) {
		p.ctx.trigger(p.target, key)
	}
	return true
}

func (h collectionHandler) Has(p *Proxy, key any) (ok bool) {
	defer errors.Recover("reactive.Proxy.Has")
	if !h.mode.Readonly() {
		p.ctx.track(p.target, key)
	}
	mv := mapOf(p.target)
	if !mv.IsValid() || mv.IsNil() {
		return false
	}
	rk, keyOK := mapKey(mv, key)
	if !keyOK {
		return false
	}
	return mv.MapIndex(rk).IsValid()
}

func (h collectionHandler) Delete(p *Proxy, key any) (ok bool) {
	defer errors.Recover("reactive.Proxy.Delete")
	if h.mode.Readonly() {
		reportReadonlyWrite("reactive.Proxy.Delete", p, key)
		return false
	}
	mv := mapOf(p.target)
	if !mv.IsValid() || mv.IsNil() {
		return false
	}
	rk, keyOK := mapKey(mv, key)
	if !keyOK {
		return false
	}
	existed := mv.MapIndex(rk).IsValid()
	mv.SetMapIndex(rk, reflect.Value{})
	if existed {
		p.ctx.trigger(p.target, key)
		p.ctx.trigger(p.target, IterateKey)
	}
	return existed
}

func (h collectionHandler) Keys(p *Proxy) (keys []any) {
	defer errors.Recover("reactive.Proxy.Keys")
	if !h.mode.Readonly() {
		p.ctx.track(p.target, IterateKey)
	}
	mv := mapOf(p.target)
	if !mv.IsValid() || mv.IsNil() {
		return nil
	}
	keys = make([]any, 0, mv.Len())
	for _, k := range mv.MapKeys() {
		keys = append(keys, k.Interface())
	}
	return keys
}

// mapOf resolves the target to its map value, dereferencing a pointer
// target.
func mapOf(target any) reflect.Value {
	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map {
		return reflect.Value{}
	}
	return rv
}

// mapKey converts key to the map's key type. Lossy conversions are
// rejected: the key must be directly assignable.
func mapKey(mv reflect.Value, key any) (reflect.Value, bool) {
	kt := mv.Type().Key()
	if key == nil {
		if kt.Kind() == reflect.Interface {
			return reflect.Zero(kt), true
		}
		return reflect.Value{}, false
	}
	rk := reflect.ValueOf(key)
	if !rk.Type().AssignableTo(kt) {
		return reflect.Value{}, false
	}
	return rk, true
}
