// Package bridge translates OSC control-surface messages into Aeolus
// control events.
//
// A Session owns everything the translation needs: the sequencer
// transport, the endpoint resolver, the encoder and the loggers. Messages
// are processed one at a time on the goroutine running Session.Run, so the
// events of one message are sent before the next message is looked at.
// Server feeds the session from a UDP socket; the interactive console and
// tests run work on it through Do.
//
// While no destination is known and probing is enabled, the session loop
// retries resolution with exponential backoff so an organ started after
// the bridge is picked up before the first button press.
package bridge
