package fault

// State is the decoded condition of one fault.
type State int

const (
	// Unknown means the register holding the fault could not be read from
	// the active response. It is the zero value.
	Unknown State = iota

	// OK means the fault bit is clear
	OK

	// NG ("not good") means the fault bit is set
	NG
)

func (s State) String() string {
	switch s {
	case OK:
		return "ok"
	case NG:
		return "ng"
	default:
		return "unknown"
	}
}

// MarshalText renders the state as its String form, so states read well in
// JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// bitState tests one bit of a register byte.
func bitState(b byte, pos uint) State {
	if b&(1<<pos) == 0 {
		return OK
	}
	return NG
}
