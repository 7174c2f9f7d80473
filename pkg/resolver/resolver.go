// Package resolver finds and caches the sequencer endpoint of the organ.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// ErrNotFound is returned when no destination could be resolved.
var ErrNotFound = errors.New("instrument endpoint not found")

// DefaultNames are the client names recognized as the organ.
var DefaultNames = []string{"aeolus"}

// Resolver tracks the current destination endpoint.
//
// A Resolver is not safe for concurrent use; the bridge session owns it.
type Resolver struct {
	transport  seq.Transport
	configured *seq.Endpoint
	names      []string

	current *seq.Endpoint
}

// New returns a resolver. configured, if non-nil, is used whenever Resolve
// is called without an explicit endpoint. A nil or empty names falls back
// to DefaultNames.
func New(transport seq.Transport, configured *seq.Endpoint, names []string) *Resolver {
	if len(names) == 0 {
		names = DefaultNames
	}
	r := &Resolver{transport: transport, names: names}
	if configured != nil {
		ep := *configured
		r.configured = &ep
	}
	return r
}

// Resolve returns a connected destination.
//
// A cached destination that is still connected is returned as is; a stale
// one is dropped. Otherwise the explicit endpoint (or the configured one) is connected. Without either,
// the bus participants are scanned for the organ, whose port 0 is connected.
// The check and the connect are not atomic against topology changes.
func (r *Resolver) Resolve(explicit *seq.Endpoint) (seq.Endpoint, error) {
	if r.current != nil {
		ok, err := r.transport.Connected(*r.current)
		if err != nil {
			return seq.Endpoint{}, fmt.Errorf("check %s: %w", *r.current, err)
		}
		if ok {
			return *r.current, nil
		}
		r.current = nil
	}

	if explicit == nil {
		explicit = r.configured
	}
	if explicit != nil {
		return r.connect(*explicit)
	}

	participants, err := r.transport.Participants()
	if err != nil {
		return seq.Endpoint{}, fmt.Errorf("list participants: %w", err)
	}
	for _, p := range participants {
		if r.matches(p.Name) {
			return r.connect(seq.Endpoint{Client: p.Client, Port: 0})
		}
	}
	return seq.Endpoint{}, ErrNotFound
}

// Current returns the cached destination, which may be stale.
func (r *Resolver) Current() (seq.Endpoint, bool) {
	if r.current == nil {
		return seq.Endpoint{}, false
	}
	return *r.current, true
}

// Forget drops the cached destination so the next Resolve starts over.
func (r *Resolver) Forget() {
	r.current = nil
}

func (r *Resolver) connect(ep seq.Endpoint) (seq.Endpoint, error) {
	if err := r.transport.Connect(ep); err != nil {
		return seq.Endpoint{}, fmt.Errorf("connect %s: %w", ep, err)
	}
	r.current = &ep
	return ep, nil
}

func (r *Resolver) matches(name string) bool {
	for _, n := range r.names {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}
