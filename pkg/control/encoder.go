package control

import (
	"fmt"

	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// Route is the source and destination every encoded event carries.
type Route struct {
	Source      seq.Endpoint
	Destination seq.Endpoint
}

// Encoder builds control events on one channel.
type Encoder struct {
	channel uint8
}

// NewEncoder returns an encoder for a 1-based channel.
func NewEncoder(channel int) (*Encoder, error) {
	if channel < 1 || channel > MaxChannel {
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidIndex, channel)
	}
	return &Encoder{channel: uint8(channel - 1)}, nil
}

// Channel returns the 0-based wire channel.
func (e *Encoder) Channel() uint8 {
	return e.channel
}

func (e *Encoder) controller(r Route, value byte) seq.Event {
	return seq.Event{
		Kind:        seq.KindController,
		Channel:     e.channel,
		Source:      r.Source,
		Destination: r.Destination,
		Controller:  Controller,
		Value:       value,
	}
}

// SelectAndSetGroup selects a group and sets its mode.
func (e *Encoder) SelectAndSetGroup(r Route, group int, mode Mode) ([]seq.Event, error) {
	b, err := GroupSelector(mode, group)
	if err != nil {
		return nil, err
	}
	return []seq.Event{e.controller(r, b)}, nil
}

// SelectButton applies the mode of the previously selected group to a button.
func (e *Encoder) SelectButton(r Route, button int) ([]seq.Event, error) {
	b, err := ButtonSelector(button)
	if err != nil {
		return nil, err
	}
	return []seq.Event{e.controller(r, b)}, nil
}

// ButtonPress encodes a button state report from a control surface.
//
// A released button (pressed == false) selects the group in ModeOn and a
// pressed one in ModeOff.
func (e *Encoder) ButtonPress(r Route, group, button int, pressed bool) ([]seq.Event, error) {
	mode := ModeOn
	if pressed {
		mode = ModeOff
	}
	g, err := GroupSelector(mode, group)
	if err != nil {
		return nil, err
	}
	b, err := ButtonSelector(button)
	if err != nil {
		return nil, err
	}
	return []seq.Event{e.controller(r, g), e.controller(r, b)}, nil
}

// ChangeProgram encodes a program change.
func (e *Encoder) ChangeProgram(r Route, program int) ([]seq.Event, error) {
	if program < 0 || program > MaxProgram {
		return nil, fmt.Errorf("%w: program %d", ErrInvalidIndex, program)
	}
	return []seq.Event{{
		Kind:        seq.KindProgramChange,
		Channel:     e.channel,
		Source:      r.Source,
		Destination: r.Destination,
		Value:       uint8(program),
	}}, nil
}

// GeneralCancel resets groups 0..groupCount-1 in ascending order.
func (e *Encoder) GeneralCancel(r Route, groupCount int) ([]seq.Event, error) {
	if groupCount < 0 || groupCount > MaxGroup+1 {
		return nil, fmt.Errorf("%w: group count %d", ErrInvalidIndex, groupCount)
	}
	events := make([]seq.Event, 0, groupCount)
	for g := 0; g < groupCount; g++ {
		b, err := GroupSelector(ModeReset, g)
		if err != nil {
			return nil, err
		}
		events = append(events, e.controller(r, b))
	}
	return events, nil
}
