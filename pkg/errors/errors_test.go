package errors

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReactiveErrorString(t *testing.T) {
	err := &ReactiveError{
		Op:   "reactive.wrap",
		Kind: KindInvalidTarget,
		Err:  errors.New("value of type int cannot be made reactive"),
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	if !strings.Contains(got, "invalid-target") {
		t.Errorf("error string %q should contain kind", got)
	}
}

func TestReactiveErrorWithTarget(t *testing.T) {
	err := &ReactiveError{
		Op:     "reactive.Proxy.Set",
		Kind:   KindReadonlyWrite,
		Target: "*errors.testTarget",
		Err:    errors.New("set ignored"),
	}
	got := err.Error()
	want := "target=*errors.testTarget"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestReactiveErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &ReactiveError{Op: "op", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the underlying error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidTarget, "invalid-target"},
		{KindReadonlyWrite, "readonly-write"},
		{KindIntercept, "intercept"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Op:        "reactive.Proxy.Get",
		Value:     "boom",
		Timestamp: time.Now(),
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("panic error string %q should contain the panic value", err.Error())
	}
}

// recordingHandler captures reported errors for assertions.
type recordingHandler struct {
	errors []*ReactiveError
	panics []*PanicError
}

func (h *recordingHandler) HandleError(err *ReactiveError) { h.errors = append(h.errors, err) }
func (h *recordingHandler) HandlePanic(err *PanicError)    { h.panics = append(h.panics, err) }

func TestSetHandler(t *testing.T) {
	rec := &recordingHandler{}
	SetHandler(rec)
	defer SetHandler(nil)

	Report(&ReactiveError{Op: "test.op", Kind: KindIntercept, Err: errors.New("x")})
	if len(rec.errors) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(rec.errors))
	}
	if rec.errors[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero timestamp")
	}
}

func TestRecover(t *testing.T) {
	rec := &recordingHandler{}
	SetHandler(rec)
	defer SetHandler(nil)

	func() {
		defer Recover("test.panicky")
		panic("expected")
	}()

	if len(rec.panics) != 1 {
		t.Fatalf("expected 1 recovered panic, got %d", len(rec.panics))
	}
	if rec.panics[0].Op != "test.panicky" {
		t.Errorf("panic op = %q, want %q", rec.panics[0].Op, "test.panicky")
	}
}

func TestReportNil(t *testing.T) {
	// Must not panic.
	Report(nil)
	ReportPanic(nil)
}
