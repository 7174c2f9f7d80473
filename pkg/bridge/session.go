package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aeolus-osc/aeolus-go/pkg/connection"
	"github.com/aeolus-osc/aeolus-go/pkg/control"
	"github.com/aeolus-osc/aeolus-go/pkg/log"
	"github.com/aeolus-osc/aeolus-go/pkg/resolver"
	"github.com/aeolus-osc/aeolus-go/pkg/route"
	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// ErrStopped is returned when submitting to a session whose loop has exited.
var ErrStopped = errors.New("session stopped")

// Message is an inbound OSC message.
type Message struct {
	Address string
	Args    []any

	// Sender is the remote address, if known.
	Sender string
}

// Stats counts what the session did with the messages it received.
type Stats struct {
	Received     int
	Sent         int
	Dropped      int
	Unrecognized int
	Errors       int
}

// BuildFunc builds events for a route with the session's encoder.
type BuildFunc func(r control.Route, enc *control.Encoder) ([]seq.Event, error)

type request struct {
	msg  *Message
	fn   func(*Session) error
	done chan error
}

// Session is the single owner of the bridge state.
//
// Handle, Execute and the accessors are not safe for concurrent use. Call
// them from the goroutine running Run (through Do), or before Run starts.
type Session struct {
	id        string
	config    Config
	transport seq.Transport
	resolver  *resolver.Resolver
	encoder   *control.Encoder
	logger    *slog.Logger
	plog      log.Logger
	probe     *connection.Backoff

	state connection.State
	dest  seq.Endpoint
	stats Stats

	requests chan request
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewSession creates a session sending through transport.
func NewSession(transport seq.Transport, config Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	enc, err := control.NewEncoder(config.Channel)
	if err != nil {
		return nil, err
	}

	plog := config.ProtocolLogger
	if plog == nil {
		plog = log.NoopLogger{}
	}

	s := &Session{
		id:        uuid.NewString(),
		config:    config,
		transport: transport,
		resolver:  resolver.New(transport, config.Destination, config.InstrumentNames),
		encoder:   enc,
		logger:    config.Logger,
		plog:      plog,
		requests:  make(chan request, config.QueueSize),
		stopped:   make(chan struct{}),
	}
	if config.Probe {
		s.probe = connection.NewBackoffWithConfig(config.ProbeBackoff)
	}
	return s, nil
}

// ID returns the session ID recorded in protocol logs.
func (s *Session) ID() string { return s.id }

// Stats returns the message counters.
func (s *Session) Stats() Stats { return s.stats }

// State returns the destination link state.
func (s *Session) State() connection.State { return s.state }

// Destination returns the cached destination, if any.
func (s *Session) Destination() (seq.Endpoint, bool) { return s.resolver.Current() }

// Transport returns the transport the session sends through.
func (s *Session) Transport() seq.Transport { return s.transport }

// Channel returns the 1-based control channel.
func (s *Session) Channel() int { return s.config.Channel }

// Handle processes one message: resolve the destination, classify the
// message, encode it and send the events.
//
// A missing destination drops the message without error. Encoding and
// send failures are returned; a send failure also forgets the destination
// so the next message resolves again.
func (s *Session) Handle(msg Message) error {
	s.stats.Received++

	dst, rerr := s.Resolve()
	action := route.Classify(msg.Address, msg.Args)
	s.logMessage(msg, action)

	switch a := action.(type) {
	case route.Unrecognized:
		s.stats.Unrecognized++
		s.debugLog("unrecognized message", "address", a.Address, "reason", a.Reason)
		return nil
	case route.Ignored:
		s.debugLog("ignored message", "address", a.Address)
		return nil
	}

	if rerr != nil {
		s.drop(msg.Address, rerr)
		return nil
	}

	events, err := s.encode(s.route(dst), action)
	if err != nil {
		s.stats.Errors++
		s.logError(log.LayerSession, err, msg.Address)
		return fmt.Errorf("%s: %w", msg.Address, err)
	}
	return s.send(events)
}

// Execute resolves the destination and sends the events built by fn.
// Without a destination it returns resolver.ErrNotFound.
func (s *Session) Execute(fn BuildFunc) error {
	dst, err := s.Resolve()
	if err != nil {
		return err
	}
	events, err := fn(s.route(dst), s.encoder)
	if err != nil {
		s.stats.Errors++
		s.logError(log.LayerSession, err, "execute")
		return err
	}
	return s.send(events)
}

// Resolve resolves the destination and records state changes.
func (s *Session) Resolve() (seq.Endpoint, error) {
	ep, err := s.resolver.Resolve(nil)
	if err != nil {
		if s.state == connection.StateConnected {
			s.setState(connection.StateUnresolved, seq.Endpoint{}, err.Error())
		}
		return seq.Endpoint{}, err
	}
	s.setState(connection.StateConnected, ep, "resolved "+ep.String())
	return ep, nil
}

// Forget drops the destination.
func (s *Session) Forget(reason string) {
	s.resolver.Forget()
	s.setState(connection.StateUnresolved, seq.Endpoint{}, reason)
}

func (s *Session) route(dst seq.Endpoint) control.Route {
	return control.Route{Source: s.transport.Source(), Destination: dst}
}

func (s *Session) encode(r control.Route, action route.Action) ([]seq.Event, error) {
	switch a := action.(type) {
	case route.ButtonPress:
		return s.encoder.ButtonPress(r, a.Group, a.Button, a.Pressed)
	case route.PresetSelect:
		return s.encoder.ChangeProgram(r, a.Index)
	case route.Cancel:
		return s.encoder.GeneralCancel(r, a.GroupCount)
	}
	return nil, fmt.Errorf("unsupported action %T", action)
}

func (s *Session) send(events []seq.Event) error {
	for _, ev := range events {
		if err := s.transport.Send(ev); err != nil {
			s.stats.Errors++
			s.logError(log.LayerSeq, err, ev.String())
			s.Forget(err.Error())
			return fmt.Errorf("send: %w", err)
		}
		s.stats.Sent++
		s.logControl(ev)
	}
	return nil
}

func (s *Session) drop(address string, err error) {
	s.stats.Dropped++
	if errors.Is(err, resolver.ErrNotFound) {
		s.debugLog("no destination, message dropped", "address", address)
		return
	}
	s.warnLog("destination unavailable, message dropped", "address", address, "error", err)
}

// Run processes submitted messages until ctx is cancelled. Run may be
// called once.
func (s *Session) Run(ctx context.Context) error {
	defer s.stopOnce.Do(func() { close(s.stopped) })

	s.logSession("", "RUNNING", "")
	s.infoLog("session started", "id", s.id, "channel", s.config.Channel)
	if _, err := s.Resolve(); err != nil {
		s.debugLog("no destination at startup", "error", err)
	}

	var timer *time.Timer
	var probeC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if s.probe != nil && probeC == nil {
			if _, ok := s.resolver.Current(); !ok {
				delay := s.probe.Next()
				timer = time.NewTimer(delay)
				probeC = timer.C
				s.setState(connection.StateProbing, seq.Endpoint{}, "waiting for instrument")
				s.debugLog("probing for instrument", "delay", delay, "attempt", s.probe.Attempts())
			}
		}

		select {
		case <-ctx.Done():
			s.setState(connection.StateClosed, seq.Endpoint{}, "shutdown")
			s.logSession("RUNNING", "STOPPED", ctx.Err().Error())
			s.infoLog("session stopped", "id", s.id)
			return nil

		case req := <-s.requests:
			s.serve(req)

		case <-probeC:
			timer, probeC = nil, nil
			_, err := s.Resolve()
			switch {
			case err == nil:
				s.probe.Reset()
			case !errors.Is(err, resolver.ErrNotFound):
				s.warnLog("probe failed", "error", err)
			}
		}
	}
}

func (s *Session) serve(req request) {
	var err error
	if req.msg != nil {
		err = s.Handle(*req.msg)
	} else {
		err = req.fn(s)
	}

	if req.done != nil {
		req.done <- err
		return
	}
	if err != nil {
		s.warnLog("message failed", "error", err)
	}
}

// Enqueue hands a message to the session loop without waiting for it to
// be processed. Messages enqueued after the loop exits are discarded.
func (s *Session) Enqueue(msg Message) {
	select {
	case s.requests <- request{msg: &msg}:
	case <-s.stopped:
	}
}

// Do runs fn on the session loop and returns its result.
func (s *Session) Do(ctx context.Context, fn func(*Session) error) error {
	return s.submit(ctx, request{fn: fn})
}

func (s *Session) submit(ctx context.Context, req request) error {
	req.done = make(chan error, 1)

	select {
	case s.requests <- req:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-s.stopped:
		select {
		case err := <-req.done:
			return err
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setState records a change of the destination link.
func (s *Session) setState(state connection.State, dest seq.Endpoint, reason string) {
	if state == s.state && dest == s.dest {
		return
	}
	old := s.state
	s.state, s.dest = state, dest

	ev := s.event(log.DirectionOut, log.LayerSession, log.CategoryState)
	if state == connection.StateConnected {
		ev.Destination = dest.String()
	}
	ev.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntityDestination,
		OldState: old.String(),
		NewState: state.String(),
		Reason:   reason,
	}
	s.plog.Log(ev)

	if state == connection.StateConnected {
		s.infoLog("destination connected", "dest", dest)
	} else {
		s.debugLog("destination state changed", "from", old, "to", state, "reason", reason)
	}
}

func (s *Session) event(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Direction: dir,
		Layer:     layer,
		Category:  cat,
	}
}

func (s *Session) logSession(old, state, reason string) {
	ev := s.event(log.DirectionOut, log.LayerSession, log.CategoryState)
	ev.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntitySession,
		OldState: old,
		NewState: state,
		Reason:   reason,
	}
	s.plog.Log(ev)
}

func (s *Session) logMessage(msg Message, action route.Action) {
	ev := s.event(log.DirectionIn, log.LayerOSC, log.CategoryMessage)
	ev.RemoteAddr = msg.Sender
	ev.OSC = &log.OSCEvent{
		Address: msg.Address,
		Args:    msg.Args,
		Action:  actionName(action),
	}
	s.plog.Log(ev)
}

func (s *Session) logControl(e seq.Event) {
	ev := s.event(log.DirectionOut, log.LayerSeq, log.CategoryControl)
	ev.Destination = e.Destination.String()
	ce := &log.ControlEvent{
		Channel:  e.Channel,
		Value:    e.Value,
		Selector: describe(e),
	}
	if e.Kind == seq.KindProgramChange {
		ce.Type = log.ControlProgramChange
	} else {
		ce.Type = log.ControlController
		ce.Controller = e.Controller
	}
	ev.Control = ce
	s.plog.Log(ev)
}

func (s *Session) logError(layer log.Layer, err error, where string) {
	ev := s.event(log.DirectionOut, layer, log.CategoryError)
	ev.Error = &log.ErrorEventData{Layer: layer, Message: err.Error(), Context: where}
	s.plog.Log(ev)
}

func actionName(a route.Action) string {
	switch a.(type) {
	case route.ButtonPress:
		return "button"
	case route.PresetSelect:
		return "preset"
	case route.Cancel:
		return "cancel"
	case route.Ignored:
		return "ignored"
	default:
		return "unrecognized"
	}
}

// describe decodes a control event value for logs.
func describe(e seq.Event) string {
	if e.Kind == seq.KindProgramChange {
		return fmt.Sprintf("program %d", e.Value)
	}
	if mode, group, err := control.DecodeGroupSelector(e.Value); err == nil {
		return fmt.Sprintf("group %d %s", group, mode)
	}
	if e.Value <= control.MaxButton {
		return fmt.Sprintf("button %d", e.Value)
	}
	return ""
}

func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Session) infoLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Session) warnLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
