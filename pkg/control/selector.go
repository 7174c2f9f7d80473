package control

import (
	"errors"
	"fmt"
)

// Encodable ranges.
const (
	// Controller is the controller number Aeolus listens on.
	Controller = 98

	// MaxGroup is the highest 0-based group index.
	MaxGroup = 7

	// MaxButton is the highest 0-based button index.
	MaxButton = 31

	// MaxProgram is the highest program number.
	MaxProgram = 127

	// MaxChannel is the highest 1-based channel.
	MaxChannel = 16
)

// Errors returned by the encoder.
var (
	ErrInvalidIndex     = errors.New("index out of encodable range")
	ErrNotGroupSelector = errors.New("not a group selector")
)

// Mode is the operation a group selector applies.
type Mode uint8

const (
	// ModeReset clears every button of the group.
	ModeReset Mode = 0b00

	// ModeOn switches the selected button on.
	ModeOn Mode = 0b01

	// ModeOff switches the selected button off.
	ModeOff Mode = 0b10

	// ModeToggle toggles the selected button.
	ModeToggle Mode = 0b11
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeReset:
		return "reset"
	case ModeOn:
		return "on"
	case ModeOff:
		return "off"
	case ModeToggle:
		return "toggle"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for m := ModeReset; m <= ModeToggle; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

const groupOpcode = 0b01

// GroupSelector returns the selector byte for mode and a 0-based group.
func GroupSelector(mode Mode, group int) (byte, error) {
	if mode > ModeToggle {
		return 0, fmt.Errorf("%w: mode %d", ErrInvalidIndex, mode)
	}
	if group < 0 || group > MaxGroup {
		return 0, fmt.Errorf("%w: group %d", ErrInvalidIndex, group)
	}
	return groupOpcode<<6 | byte(mode)<<4 | byte(group), nil
}

// DecodeGroupSelector splits a selector byte into mode and group.
func DecodeGroupSelector(b byte) (Mode, int, error) {
	if b>>6 != groupOpcode || b&0x08 != 0 {
		return 0, 0, fmt.Errorf("%w: 0x%02X", ErrNotGroupSelector, b)
	}
	return Mode(b >> 4 & 0b11), int(b & 0b111), nil
}

// ButtonSelector returns the selector byte for a 0-based button index.
func ButtonSelector(button int) (byte, error) {
	if button < 0 || button > MaxButton {
		return 0, fmt.Errorf("%w: button %d", ErrInvalidIndex, button)
	}
	return byte(button), nil
}
