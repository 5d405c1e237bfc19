package reactive

import (
	"runtime"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestRegistryLookupValidatesType(t *testing.T) {
	ctx := NewContext()
	x := &counter{}
	p := ctx.Reactive(x).(*Proxy)

	ctx.mu.Lock()
	cache := &ctx.caches[ModeReactive]
	key := identityOf(x)
	if got := cache.lookup(key, x); got != p {
		t.Error("lookup should return the registered wrapper")
	}
	// Same identity word, different dynamic type: must miss.
	type other struct{ Count int }
	if got := cache.lookup(key, (*other)(nil)); got != nil {
		t.Error("lookup must validate the target's dynamic type")
	}
	ctx.mu.Unlock()
}

func TestRegistryDoesNotPinWrappers(t *testing.T) {
	ctx := NewContext()
	x := &counter{}
	key := identityOf(x)

	// Build a wrapper and drop every reference to it.
	func() {
		_ = ctx.Reactive(x)
	}()
	runtime.GC()
	runtime.GC()

	// The entry is either evicted by cleanup or holds a cleared weak
	// pointer; either way the wrapper is gone.
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if e, ok := ctx.caches[ModeReactive].entries[key]; ok {
		if e.wrapper.Value() != nil {
			t.Error("the registry must not keep wrappers alive")
		}
	}
}

func TestConcurrentWrapIdentity(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := NewContext()
	x := &counter{}

	const n = 32
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ctx.Reactive(x)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent wraps of one target must return one wrapper")
		}
	}
}
