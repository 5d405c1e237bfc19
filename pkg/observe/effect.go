// Package observe provides a minimal dependency-tracking consumer for
// the reactive core.
//
// A Scheduler implements reactive.Tracker: it records which effect read
// which (target, key) pair and re-runs the affected effects when a key
// is written. Install it on a context, then run effects:
//
//	sched := observe.NewScheduler()
//	ctx := reactive.NewContext(reactive.WithTracker(sched))
//
//	counter := ctx.Reactive(&Counter{}).(*reactive.Proxy)
//	effect := sched.Run(func() {
//	    fmt.Println(counter.Get("Count"))
//	})
//	counter.Set("Count", 1) // the effect re-runs
//	effect.Stop()
//
// Effects must run on one goroutine at a time; concurrent Run calls on
// one Scheduler interleave their dependency collection. Trigger is safe
// to call from any goroutine.
package observe

import (
	"reflect"
	"sync"

	"github.com/go-drift/reactive/pkg/errors"
	"github.com/go-drift/reactive/pkg/reactive"
)

var _ reactive.Tracker = (*Scheduler)(nil)

// depKey identifies one tracked (target, key) pair.
type depKey struct {
	target uintptr
	key    any
}

// Scheduler records effect dependencies and re-runs effects on writes.
// The zero value is not usable; call NewScheduler.
type Scheduler struct {
	mu sync.Mutex
	// deps maps a tracked pair to the effects depending on it.
	deps map[depKey]map[*Effect]struct{}
	// stack holds the effects currently running, innermost last.
	stack []*Effect
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{deps: make(map[depKey]map[*Effect]struct{})}
}

// Run executes fn as an effect, recording every tracked read as a
// dependency, and re-runs it whenever a dependency is triggered.
// Each re-run re-collects the dependency set from scratch.
// A panicking fn is reported through pkg/errors and its effect stopped;
// the panic does not propagate to the writer that triggered it.
func (s *Scheduler) Run(fn func()) *Effect {
	e := &Effect{scheduler: s, fn: fn, deps: make(map[depKey]struct{})}
	e.run()
	return e
}

// Track records that the innermost running effect read (target, key).
// No-op outside an effect. Implements reactive.Tracker.
func (s *Scheduler) Track(target, key any) {
	id := identityOf(target)
	if id == 0 || !comparableKey(key) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return
	}
	e := s.stack[len(s.stack)-1]
	if e.stopped {
		return
	}
	k := depKey{target: id, key: key}
	set := s.deps[k]
	if set == nil {
		set = make(map[*Effect]struct{})
		s.deps[k] = set
	}
	set[e] = struct{}{}
	e.deps[k] = struct{}{}
}

// Trigger re-runs every effect that depends on (target, key). Effects
// currently running are skipped, so an effect writing its own
// dependency does not recurse. Implements reactive.Tracker.
func (s *Scheduler) Trigger(target, key any) {
	id := identityOf(target)
	if id == 0 || !comparableKey(key) {
		return
	}
	s.mu.Lock()
	var toRun []*Effect
	for e := range s.deps[depKey{target: id, key: key}] {
		if !e.stopped && !s.runningLocked(e) {
			toRun = append(toRun, e)
		}
	}
	s.mu.Unlock()
	for _, e := range toRun {
		e.run()
	}
}

func (s *Scheduler) runningLocked(e *Effect) bool {
	for _, r := range s.stack {
		if r == e {
			return true
		}
	}
	return false
}

// Effect is one tracked computation. Obtain one from Scheduler.Run.
type Effect struct {
	scheduler *Scheduler
	fn        func()
	deps      map[depKey]struct{}
	stopped   bool
}

func (e *Effect) run() {
	s := e.scheduler
	s.mu.Lock()
	if e.stopped {
		s.mu.Unlock()
		return
	}
	e.detachLocked()
	s.stack = append(s.stack, e)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.stack = s.stack[:len(s.stack)-1]
		s.mu.Unlock()
	}()
	// A broken effect would panic again on every trigger; detach it.
	defer errors.RecoverWithCallback("observe.Effect.run", func(any) {
		e.Stop()
	})
	e.fn()
}

// Stop detaches the effect permanently. Safe to call more than once.
func (e *Effect) Stop() {
	s := e.scheduler
	s.mu.Lock()
	e.stopped = true
	e.detachLocked()
	s.mu.Unlock()
}

// detachLocked removes the effect from every dependency set.
func (e *Effect) detachLocked() {
	for k := range e.deps {
		if set := e.scheduler.deps[k]; set != nil {
			delete(set, e)
			if len(set) == 0 {
				delete(e.scheduler.deps, k)
			}
		}
	}
	clear(e.deps)
}

// identityOf mirrors the reactive package's identity word: targets
// reported by trackers are always the wrapped originals.
func identityOf(v any) uintptr {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		return rv.Pointer()
	}
	return 0
}

// comparableKey rejects keys that cannot index the dependency map.
func comparableKey(key any) bool {
	if key == nil {
		return true
	}
	return reflect.TypeOf(key).Comparable()
}
