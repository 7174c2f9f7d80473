package connection

// State is the state of the link to the sequencer destination.
type State uint8

const (
	// StateUnresolved means no destination is known.
	StateUnresolved State = iota

	// StateProbing means the instrument probe is waiting to retry.
	StateProbing

	// StateConnected means a destination is resolved and subscribed.
	StateConnected

	// StateClosed means the session has stopped.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "UNRESOLVED"
	case StateProbing:
		return "PROBING"
	case StateConnected:
		return "CONNECTED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
