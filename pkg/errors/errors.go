// Package errors provides structured error reporting for the reactive library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidTarget indicates a value that cannot be wrapped.
	KindInvalidTarget
	// KindReadonlyWrite indicates a rejected mutation on a readonly wrapper.
	KindReadonlyWrite
	// KindIntercept indicates a failure inside an interception handler.
	KindIntercept
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidTarget:
		return "invalid-target"
	case KindReadonlyWrite:
		return "readonly-write"
	case KindIntercept:
		return "intercept"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ReactiveError represents a structured error in the reactive library.
type ReactiveError struct {
	// Op is the operation that failed (e.g., "reactive.Proxy.Set").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Target describes the target's dynamic type, if applicable.
	Target string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReactiveError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s [%s] target=%s: %v", e.Op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReactiveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "reactive.Proxy.Get").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the reactive library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ReactiveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
