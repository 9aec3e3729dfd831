package speech

// Outcome tells the caller which path produced the speech
type Outcome int

const (
	// OutcomeSpoken - fast path spoke the text
	OutcomeSpoken Outcome = iota

	// OutcomeDegraded - the say utility spoke the text
	OutcomeDegraded

	// OutcomeVoiceRejected - say rejected the configured voice and spoke
	// with its default voice instead
	OutcomeVoiceRejected

	// OutcomeFatal - say is missing or failed even with its default voice
	OutcomeFatal

	// OutcomeCanceled - the context ended before speech finished
	OutcomeCanceled
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSpoken:
		return "spoken"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeVoiceRejected:
		return "voice-rejected"
	case OutcomeFatal:
		return "fatal"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// State of the engine, fixed at construction
type State int

const (
	StateFastPathUnavailable State = iota
	StateFastPathReady
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateFastPathReady:
		return "fast-path-ready"
	case StateFastPathUnavailable:
		return "fast-path-unavailable"
	default:
		return "unknown"
	}
}
