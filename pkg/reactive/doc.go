// Package reactive provides identity-stable intercepting wrappers over
// mutable Go values.
//
// Given a pointer to a struct, array, or slice, or a map, the package builds
// a wrapper ([Proxy]) that behaves like the original value but routes every
// read and write through an interception layer, so a tracking subsystem can
// observe them. Wrapping never mutates the original value.
//
// # Modes
//
// Four orthogonal wrapping modes exist: mutable or readonly, each deep or
// shallow. Deep wrappers wrap eligible nested values on read; shallow
// wrappers return nested values as-is. Each mode has its own identity cache,
// so the same original can carry up to four simultaneous wrappers:
//
//	type Counter struct{ Count int }
//
//	c := &Counter{}
//	r := reactive.Reactive(c)
//	r == reactive.Reactive(c) // always true: wrapping is idempotent
//
// # Introspection
//
// IsReactive, IsReadonly, IsShallow, and IsProxy classify any value without
// ever failing. ToRaw recovers the original from an arbitrary wrapper chain,
// and MarkRaw permanently opts an object out of wrapping:
//
//	raw := reactive.ToRaw(r)        // raw == c
//	reactive.MarkRaw(c)             // reactive.Reactive(c) == c from now on
//
// # Contexts
//
// The package-level constructors share one default [Context]. Independent
// reactive systems (for tests, or for clean teardown) create their own:
//
//	ctx := reactive.NewContext(reactive.WithTracker(sched))
//	r := ctx.Reactive(c)
//
// # Tracking
//
// The core only makes values observable; deciding what to track and when to
// re-run dependents belongs to a [Tracker] implementation such as
// observe.Scheduler. Without a tracker, wrappers still intercept but report
// nothing.
//
// # Error Handling
//
// No operation in this package panics or returns an error. Ineligible values
// pass through unchanged, misuse degrades to zero values, and diagnostics
// are reported through pkg/errors when DebugMode is enabled.
package reactive
