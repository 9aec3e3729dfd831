package capture

// State is the capture state machine position
type State int

const (
	StateReading State = iota
	StateStartOver
	StateSubmitted
	StateInterrupted
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateStartOver:
		return "start-over"
	case StateSubmitted:
		return "submitted"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Policy selects what backspace/delete does to the buffer
type Policy int

const (
	// PolicyFullReset clears the buffer, counts a retry and re-speaks the target
	PolicyFullReset Policy = iota

	// PolicySingleErase pops one character and counts nothing
	PolicySingleErase
)

// String returns the string representation of the policy
func (p Policy) String() string {
	switch p {
	case PolicyFullReset:
		return "reset"
	case PolicySingleErase:
		return "erase"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a configuration value to a Policy
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "reset":
		return PolicyFullReset, true
	case "erase":
		return PolicySingleErase, true
	default:
		return PolicyFullReset, false
	}
}
