package reactive

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/reactive/pkg/errors"
)

type counter struct {
	Count int
}

type profile struct {
	Name  string
	Inner counter
	Tags  map[string]string
}

func TestReactiveIdentity(t *testing.T) {
	x := &counter{}
	a := Reactive(x)
	b := Reactive(x)
	if a != b {
		t.Error("two Reactive calls on the same target should return the same wrapper")
	}
	p, ok := a.(*Proxy)
	if !ok {
		t.Fatalf("expected *Proxy, got %T", a)
	}
	if got := p.Get("Count"); got != 0 {
		t.Errorf("Get(Count) = %v, want 0", got)
	}
}

func TestWrappingIsIdempotent(t *testing.T) {
	x := &counter{}
	tests := []struct {
		name string
		wrap func(any) any
	}{
		{"reactive", Reactive},
		{"shallow-reactive", ShallowReactive},
		{"readonly", Readonly},
		{"shallow-readonly", ShallowReadonly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.wrap(x)
			if tt.wrap(w) != w {
				t.Error("re-wrapping a wrapper in its own mode should be a no-op")
			}
			if tt.wrap(x) != w {
				t.Error("wrapping the same target twice should return the same wrapper")
			}
		})
	}
}

func TestModeIndependence(t *testing.T) {
	x := &counter{}
	wrappers := []any{Reactive(x), ShallowReactive(x), Readonly(x), ShallowReadonly(x)}
	for i := range wrappers {
		if !IsProxy(wrappers[i]) {
			t.Fatalf("wrapper %d is not a proxy", i)
		}
		for j := i + 1; j < len(wrappers); j++ {
			if wrappers[i] == wrappers[j] {
				t.Errorf("modes %d and %d produced the same wrapper", i, j)
			}
		}
	}
}

func TestReadonlyOverReactive(t *testing.T) {
	x := &counter{Count: 7}
	r := Reactive(x)
	ro := Readonly(r)

	if ro == r {
		t.Fatal("readonly over a reactive wrapper must be a distinct wrapper")
	}
	if !IsReadonly(ro) {
		t.Error("IsReadonly should be true for the layered wrapper")
	}
	if !IsReactive(ro) {
		t.Error("IsReactive should delegate through raw and report true")
	}
	if ToRaw(ro) != x {
		t.Error("ToRaw should recurse through the chain to the original")
	}
	if p := ro.(*Proxy); p.Raw() != r {
		t.Error("the layered wrapper's raw should be the inner reactive wrapper")
	}
	if got := ro.(*Proxy).Get("Count"); got != 7 {
		t.Errorf("layered Get(Count) = %v, want 7", got)
	}
}

func TestReadonlyOverReadonlyPassthrough(t *testing.T) {
	x := &counter{}
	ro := Readonly(x)
	if Readonly(ro) != ro {
		t.Error("readonly over readonly should be an identity passthrough")
	}
}

func TestReactiveOverReadonlyPassthrough(t *testing.T) {
	x := &counter{}
	ro := Readonly(x)
	if Reactive(ro) != ro {
		t.Error("reactive over readonly should return the readonly wrapper unchanged")
	}
}

func TestToRaw(t *testing.T) {
	x := &counter{}
	if ToRaw(Reactive(x)) != x {
		t.Error("ToRaw(Reactive(x)) should be x")
	}
	if ToRaw(Readonly(Reactive(x))) != x {
		t.Error("ToRaw should unwrap a two-level chain")
	}
	if ToRaw(x) != x {
		t.Error("ToRaw on an unwrapped value should be a no-op")
	}
	if ToRaw(nil) != nil {
		t.Error("ToRaw(nil) should be nil")
	}
}

func TestToRawStructural(t *testing.T) {
	x := &counter{Count: 1}
	r := Readonly(x)
	raw := ToRaw(r).(*counter)
	if diff := cmp.Diff(&counter{Count: 1}, raw); diff != "" {
		t.Errorf("ToRaw mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkRaw(t *testing.T) {
	x := MarkRaw(&counter{})
	if Reactive(x) != x {
		t.Error("a marked object must never be wrapped")
	}
	if IsReactive(Reactive(x)) {
		t.Error("IsReactive should stay false for a marked object")
	}
	if Readonly(x) != x {
		t.Error("markRaw applies to every mode")
	}
	// Idempotent.
	if MarkRaw(x) != x {
		t.Error("MarkRaw should return its argument unchanged")
	}
}

func TestMarkRawMap(t *testing.T) {
	m := MarkRawMap(map[string]int{"a": 1})
	if IsProxy(Reactive(m)) {
		t.Error("a marked map must never be wrapped")
	}
	if IsProxy(Readonly(m)) {
		t.Error("markRaw applies to every mode")
	}
	if identityOf(Reactive(m)) != identityOf(m) {
		t.Error("a marked map should pass through unchanged")
	}
	// Reaching the same map through a pointer is blocked too.
	if IsProxy(Reactive(&m)) {
		t.Error("a pointer to a marked map must not be wrapped")
	}

	var nilMap map[string]int
	if MarkRawMap(nilMap) != nil {
		t.Error("MarkRawMap on a nil map should pass through")
	}
}

func TestMarkRawPointerToMapFlagsMap(t *testing.T) {
	m := map[string]int{"a": 1}
	if MarkRaw(&m) != &m {
		t.Error("MarkRaw should return its argument unchanged")
	}
	if IsProxy(Reactive(m)) {
		t.Error("flagging through a pointer must cover the map itself")
	}
	if IsProxy(Reactive(&m)) {
		t.Error("the pointer is flagged as well")
	}
}

func TestIneligiblePassthrough(t *testing.T) {
	SetDebugMode(false)
	defer SetDebugMode(true)

	if Reactive(42) != 42 {
		t.Error("numbers should pass through")
	}
	if Reactive(nil) != nil {
		t.Error("nil should pass through")
	}
	if Reactive("s") != "s" {
		t.Error("strings should pass through")
	}
	if IsProxy(Reactive(func() {})) {
		t.Error("functions should pass through")
	}
	if IsProxy(Reactive(counter{})) {
		t.Error("bare structs have no stable identity and should pass through")
	}
	if IsProxy(Reactive([]int{1})) {
		t.Error("bare slices have no stable identity and should pass through")
	}
	var nilMap map[string]int
	if IsProxy(Reactive(nilMap)) {
		t.Error("nil maps should pass through")
	}
	var nilPtr *counter
	if IsProxy(Reactive(nilPtr)) {
		t.Error("nil pointers should pass through")
	}
	n := 3
	if IsProxy(Reactive(&n)) {
		t.Error("pointers to primitives should pass through")
	}
}

func TestIntrospectionIsTotal(t *testing.T) {
	for _, v := range []any{nil, 1, "x", counter{}, func() {}} {
		if IsReactive(v) || IsReadonly(v) || IsShallow(v) || IsProxy(v) {
			t.Errorf("introspection on %T should be false", v)
		}
	}
}

func TestShallowFlags(t *testing.T) {
	x := &counter{}
	if !IsShallow(ShallowReactive(x)) || !IsShallow(ShallowReadonly(x)) {
		t.Error("shallow wrappers should report IsShallow")
	}
	if IsShallow(Reactive(x)) || IsShallow(Readonly(x)) {
		t.Error("deep wrappers should not report IsShallow")
	}
	if IsReadonly(ShallowReactive(x)) {
		t.Error("shallow-reactive is not readonly")
	}
	if !IsReadonly(ShallowReadonly(x)) {
		t.Error("shallow-readonly is readonly")
	}
}

func TestToReactiveToReadonly(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	if ToReactive(5) != 5 {
		t.Error("ToReactive on a non-object should pass through")
	}
	if ToReadonly("x") != "x" {
		t.Error("ToReadonly on a non-object should pass through")
	}
	if len(rec.errs) != 0 {
		t.Error("the To* escape hatches must stay silent on non-objects")
	}

	x := &counter{}
	if ToReactive(x) != Reactive(x) {
		t.Error("ToReactive should delegate to Reactive for objects")
	}
	if ToReadonly(x) != Readonly(x) {
		t.Error("ToReadonly should delegate to Readonly for objects")
	}
}

func TestContextIsolation(t *testing.T) {
	a := NewContext()
	b := NewContext()
	x := &counter{}
	pa := a.Reactive(x)
	pb := b.Reactive(x)
	if pa == pb {
		t.Error("independent contexts must produce independent wrappers")
	}
	if pa != a.Reactive(x) {
		t.Error("identity must still hold within a context")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want targetKind
	}{
		{"pointer-to-struct", &counter{}, targetCommon},
		{"pointer-to-slice", &[]int{}, targetCommon},
		{"pointer-to-array", &[2]int{}, targetCommon},
		{"map", map[string]int{}, targetCollection},
		{"pointer-to-map", &map[string]int{}, targetCollection},
		{"nil", nil, targetInvalid},
		{"int", 3, targetInvalid},
		{"func", func() {}, targetInvalid},
		{"chan", make(chan int), targetInvalid},
		{"bare-struct", counter{}, targetInvalid},
		{"pointer-to-int", new(int), targetInvalid},
		{"pointer-to-pointer", new(*counter), targetInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.v); got != tt.want {
				t.Errorf("classify(%T) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}

	var nilMap map[string]int
	if classify(nilMap) != targetInvalid {
		t.Error("nil map should be invalid")
	}
	if classify(MarkRaw(&counter{})) != targetInvalid {
		t.Error("skip-flagged targets should be invalid")
	}
}

// recordingHandler captures reported diagnostics.
type recordingHandler struct {
	errs   []*errors.ReactiveError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.ReactiveError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError)    { h.panics = append(h.panics, err) }

func TestNonObjectDiagnostic(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	SetDebugMode(true)
	Reactive(42)
	if len(rec.errs) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(rec.errs))
	}
	if rec.errs[0].Kind != errors.KindInvalidTarget {
		t.Errorf("kind = %v, want %v", rec.errs[0].Kind, errors.KindInvalidTarget)
	}

	rec.errs = nil
	SetDebugMode(false)
	defer SetDebugMode(true)
	Reactive(42)
	if len(rec.errs) != 0 {
		t.Error("diagnostics must stay silent with DebugMode off")
	}
}

func TestIneligibleObjectIsSilent(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	SetDebugMode(true)
	Reactive(new(int)) // object-like but ineligible
	if len(rec.errs) != 0 {
		t.Error("ineligible objects must pass through without diagnostics")
	}
}
