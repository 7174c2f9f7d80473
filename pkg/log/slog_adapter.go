package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if event.Destination != "" {
		attrs = append(attrs, slog.String("dest", event.Destination))
	}

	switch {
	case event.OSC != nil:
		attrs = append(attrs,
			slog.String("address", event.OSC.Address),
			slog.String("args", fmt.Sprint(event.OSC.Args)),
		)
		if event.OSC.Action != "" {
			attrs = append(attrs, slog.String("action", event.OSC.Action))
		}
	case event.Control != nil:
		attrs = append(attrs,
			slog.String("ctrl_type", event.Control.Type.String()),
			slog.Int("channel", int(event.Control.Channel)),
			slog.Int("value", int(event.Control.Value)),
		)
		if event.Control.Type == ControlController {
			attrs = append(attrs, slog.Int("controller", int(event.Control.Controller)))
		}
		if event.Control.Selector != "" {
			attrs = append(attrs, slog.String("selector", event.Control.Selector))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
