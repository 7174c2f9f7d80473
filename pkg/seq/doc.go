// Package seq models the sequencer side of the bridge: endpoints on the
// shared event bus, the control events sent to them, and the Transport
// interface that carries those events.
//
// The package has no driver dependency. Package rtmidi implements
// Transport on top of gomidi's rtmidi driver, which on Linux talks to the
// ALSA sequencer.
package seq
