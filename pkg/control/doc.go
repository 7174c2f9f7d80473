// Package control encodes organ commands as control events.
//
// Aeolus listens on a single controller number. A command is a short
// sequence of controller events on that number: a group selector byte
// chooses a stop group and a mode, and a following button selector byte
// names the button within the group the mode applies to.
//
//	group selector:  01mm0ggg   mm = mode, ggg = group 0..7
//	button selector: 000bbbbb   bbbbb = button 0..31
//
// Every function here is pure. Indices outside the encodable width are
// rejected with ErrInvalidIndex, never truncated.
package control
