package seq

import "errors"

// ErrNotConnected is returned when sending to a destination that has not
// been connected.
var ErrNotConnected = errors.New("destination not connected")

// Transport is the bridge's view of the event bus.
type Transport interface {
	// Source returns the endpoint events originate from.
	Source() Endpoint

	// Participants lists the clients currently attached to the bus.
	Participants() ([]Participant, error)

	// Connected reports whether dst is still present and subscribed.
	Connected(dst Endpoint) (bool, error)

	// Connect subscribes the source to dst.
	Connect(dst Endpoint) error

	// Send delivers an event to its destination.
	Send(ev Event) error
}
