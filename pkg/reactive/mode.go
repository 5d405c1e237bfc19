package reactive

// Mode selects the wrapping discipline for a Proxy. The readonly axis
// decides whether writes are accepted; the shallow axis decides whether
// nested values read through the wrapper are wrapped in turn.
type Mode uint8

const (
	// ModeReactive is the mutable, deep mode.
	ModeReactive Mode = iota
	// ModeShallowReactive is the mutable, shallow mode.
	ModeShallowReactive
	// ModeReadonly is the readonly, deep mode.
	ModeReadonly
	// ModeShallowReadonly is the readonly, shallow mode.
	ModeShallowReadonly

	modeCount
)

// Readonly reports whether the mode rejects writes.
func (m Mode) Readonly() bool {
	return m == ModeReadonly || m == ModeShallowReadonly
}

// Shallow reports whether the mode leaves nested values unwrapped.
func (m Mode) Shallow() bool {
	return m == ModeShallowReactive || m == ModeShallowReadonly
}

func (m Mode) String() string {
	switch m {
	case ModeReactive:
		return "reactive"
	case ModeShallowReactive:
		return "shallow-reactive"
	case ModeReadonly:
		return "readonly"
	case ModeShallowReadonly:
		return "shallow-readonly"
	default:
		return "invalid-mode"
	}
}
