package reactive

// DebugMode controls whether wrapping misuse is reported as diagnostics.
// When true, wrapping a non-object value and writing through a readonly
// wrapper report through pkg/errors. When false, both stay silent.
var DebugMode = true

// SetDebugMode enables or disables debug diagnostics for the library.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
