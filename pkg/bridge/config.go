package bridge

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aeolus-osc/aeolus-go/pkg/connection"
	"github.com/aeolus-osc/aeolus-go/pkg/control"
	"github.com/aeolus-osc/aeolus-go/pkg/log"
	"github.com/aeolus-osc/aeolus-go/pkg/resolver"
	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config configures a Session and its Server.
type Config struct {
	// ListenAddress is the UDP address the OSC server binds (e.g., ":8080").
	ListenAddress string

	// Channel is the 1-based channel Aeolus expects control events on.
	Channel int

	// Destination is an explicit sequencer endpoint. If nil, the organ is
	// discovered by client name.
	Destination *seq.Endpoint

	// InstrumentNames are the client names recognized as the organ.
	InstrumentNames []string

	// QueueSize is the number of messages buffered ahead of the session loop.
	QueueSize int

	// Probe enables background resolution while no destination is known.
	Probe bool

	// ProbeBackoff configures the delay between probe attempts.
	ProbeBackoff connection.BackoffConfig

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives protocol capture events.
	// If nil, protocol capture is disabled.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a Config with the defaults of the command line tool.
func DefaultConfig() Config {
	return Config{
		ListenAddress:   ":8080",
		Channel:         1,
		InstrumentNames: append([]string(nil), resolver.DefaultNames...),
		QueueSize:       64,
		ProbeBackoff: connection.BackoffConfig{
			Initial:    1 * time.Second,
			Max:        30 * time.Second,
			Multiplier: 2.0,
			Jitter:     0.25,
		},
	}
}

// Validate checks if the config is usable.
func (c *Config) Validate() error {
	if c.Channel < 1 || c.Channel > control.MaxChannel {
		return fmt.Errorf("%w: channel %d not in 1..%d", ErrInvalidConfig, c.Channel, control.MaxChannel)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: negative queue size", ErrInvalidConfig)
	}
	for _, n := range c.InstrumentNames {
		if n == "" {
			return fmt.Errorf("%w: empty instrument name", ErrInvalidConfig)
		}
	}
	return nil
}
