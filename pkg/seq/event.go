package seq

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// EventKind identifies the kind of a control event.
type EventKind uint8

const (
	// KindController is a continuous-controller event.
	KindController EventKind = iota

	// KindProgramChange is a program change event.
	KindProgramChange
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case KindController:
		return "CONTROLLER"
	case KindProgramChange:
		return "PGMCHANGE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// Event is a typed control event addressed from Source to Destination.
//
// Channel is the 0-based wire channel. Controller is only meaningful for
// KindController. Value carries the controller value or the program number.
type Event struct {
	Kind        EventKind
	Channel     uint8
	Source      Endpoint
	Destination Endpoint
	Controller  uint8
	Value       uint8
}

// Bytes returns the MIDI channel voice message for the event.
func (e Event) Bytes() []byte {
	switch e.Kind {
	case KindController:
		return midi.ControlChange(e.Channel, e.Controller, e.Value)
	case KindProgramChange:
		return midi.ProgramChange(e.Channel, e.Value)
	}
	return nil
}

// String returns a compact human-readable form.
func (e Event) String() string {
	switch e.Kind {
	case KindController:
		return fmt.Sprintf("%s %s->%s ch=%d ctl=%d val=%d", e.Kind, e.Source, e.Destination, e.Channel, e.Controller, e.Value)
	default:
		return fmt.Sprintf("%s %s->%s ch=%d prog=%d", e.Kind, e.Source, e.Destination, e.Channel, e.Value)
	}
}
