package seq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEndpoint is returned when an endpoint string cannot be parsed.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// Endpoint addresses a port of a client on the event bus.
type Endpoint struct {
	Client int
	Port   int
}

// String returns the textual "client:port" form.
func (e Endpoint) String() string {
	return fmt.Sprintf("%d:%d", e.Client, e.Port)
}

// ParseEndpoint parses the "client:port" form, e.g. "128:0".
func ParseEndpoint(s string) (Endpoint, error) {
	client, port, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q: expected client:port", ErrInvalidEndpoint, s)
	}
	c, err := strconv.Atoi(client)
	if err != nil || c < 0 {
		return Endpoint{}, fmt.Errorf("%w: %q: bad client", ErrInvalidEndpoint, s)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 {
		return Endpoint{}, fmt.Errorf("%w: %q: bad port", ErrInvalidEndpoint, s)
	}
	return Endpoint{Client: c, Port: p}, nil
}

// Participant is a client currently attached to the event bus.
type Participant struct {
	Client int
	Name   string
	Ports  []int
}
