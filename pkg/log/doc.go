// Package log provides protocol capture for the Aeolus bridge.
//
// This package defines the Logger interface and Event types for recording
// what the bridge saw and did at each layer: inbound OSC messages, session
// state (destination resolution, probing), and the control events written
// to the sequencer. It is separate from operational logging (slog) and
// gives a complete machine-readable trace for debugging control surfaces.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/aeolus/bridge.alog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - OSC: inbound messages and their classification (OSCEvent)
//   - Session: destination and probe state changes (StateChangeEvent)
//   - Seq: outbound control events (ControlEvent)
//
// Errors at any layer have a dedicated payload.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events, conventionally with the
// .alog extension. The aeolus-log tool views, filters and exports them.
package log
