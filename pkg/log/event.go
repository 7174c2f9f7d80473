package log

import (
	"time"
)

// Event is a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the bridge run (UUID).
	SessionID string `cbor:"2,keyasint"`

	Direction Direction `cbor:"3,keyasint"`
	Layer     Layer     `cbor:"4,keyasint"`
	Category  Category  `cbor:"5,keyasint"`

	// RemoteAddr is the OSC sender, when known.
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// Destination is the sequencer endpoint ("client:port"), when resolved.
	Destination string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	OSC         *OSCEvent         `cbor:"10,keyasint,omitempty"`
	Control     *ControlEvent     `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Direction indicates message flow.
type Direction uint8

const (
	// DirectionIn is traffic arriving at the bridge.
	DirectionIn Direction = 0
	// DirectionOut is traffic leaving the bridge.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates where the event was captured.
type Layer uint8

const (
	// LayerOSC is the network side.
	LayerOSC Layer = 0
	// LayerSession is the bridge session.
	LayerSession Layer = 1
	// LayerSeq is the sequencer side.
	LayerSeq Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerOSC:
		return "OSC"
	case LayerSession:
		return "SESSION"
	case LayerSeq:
		return "SEQ"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event.
type Category uint8

const (
	// CategoryMessage is an inbound OSC message.
	CategoryMessage Category = 0
	// CategoryControl is an outbound control event.
	CategoryControl Category = 1
	// CategoryState is a state change.
	CategoryState Category = 2
	// CategoryError is an error.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryControl:
		return "CONTROL"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// OSCEvent captures an inbound OSC message.
type OSCEvent struct {
	Address string `cbor:"1,keyasint"`
	Args    []any  `cbor:"2,keyasint,omitempty"`

	// Action is the classification, e.g. "button", "cancel", "unrecognized".
	Action string `cbor:"3,keyasint,omitempty"`
}

// ControlEvent captures a control event written to the sequencer.
type ControlEvent struct {
	Type       ControlType `cbor:"1,keyasint"`
	Channel    uint8       `cbor:"2,keyasint"`
	Controller uint8       `cbor:"3,keyasint,omitempty"`
	Value      uint8       `cbor:"4,keyasint"`

	// Selector is a decoded form of Value, e.g. "group 1 on".
	Selector string `cbor:"5,keyasint,omitempty"`
}

// ControlType is the kind of control event.
type ControlType uint8

const (
	// ControlController is a controller event.
	ControlController ControlType = 0
	// ControlProgramChange is a program change.
	ControlProgramChange ControlType = 1
)

// String returns the control type name.
func (c ControlType) String() string {
	switch c {
	case ControlController:
		return "CONTROLLER"
	case ControlProgramChange:
		return "PGMCHANGE"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures session lifecycle changes.
type StateChangeEvent struct {
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`
	NewState string `cbor:"3,keyasint"`
	Reason   string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what changed state.
type StateEntity uint8

const (
	// StateEntitySession is the bridge session itself.
	StateEntitySession StateEntity = 0
	// StateEntityDestination is the resolved sequencer destination.
	StateEntityDestination StateEntity = 1
	// StateEntityProbe is the instrument probe.
	StateEntityProbe StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntitySession:
		return "SESSION"
	case StateEntityDestination:
		return "DESTINATION"
	case StateEntityProbe:
		return "PROBE"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
