package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/hypebeast/go-osc/osc"
)

// maxPacketSize is the largest UDP datagram read.
const maxPacketSize = 65535

// Server receives OSC packets over UDP and hands their messages to a
// session.
type Server struct {
	addr    string
	session *Session
	logger  *slog.Logger
	conn    net.PacketConn
}

// NewServer creates a server for the session's listen address.
func NewServer(session *Session) *Server {
	return &Server{
		addr:    session.config.ListenAddress,
		session: session,
		logger:  session.config.Logger,
	}
}

// Listen binds the UDP socket. ListenAndServe calls it if needed; calling
// it first lets callers learn the bound address.
func (s *Server) Listen() error {
	if s.conn != nil {
		return nil
	}
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.conn = conn
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("OSC server listening", "addr", s.conn.LocalAddr().String())
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	d := dispatcher{session: s.session}
	buf := make([]byte, maxPacketSize)
	for {
		n, addr, err := s.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		packet, err := osc.ParsePacket(string(buf[:n]))
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("malformed OSC packet", "from", addr.String(), "error", err)
			}
			continue
		}
		d.Dispatch(packet, addr.String())
	}
}

// dispatcher flattens OSC packets into session messages. Messages are
// enqueued on the reading goroutine so the session sees them in arrival
// order.
type dispatcher struct {
	session *Session
}

func (d dispatcher) Dispatch(packet osc.Packet, sender string) {
	switch p := packet.(type) {
	case *osc.Message:
		d.session.Enqueue(messageFromOSC(p, sender))
	case *osc.Bundle:
		for _, m := range p.Messages {
			d.session.Enqueue(messageFromOSC(m, sender))
		}
		for _, b := range p.Bundles {
			d.Dispatch(b, sender)
		}
	}
}

func messageFromOSC(m *osc.Message, sender string) Message {
	return Message{Address: m.Address, Args: m.Arguments, Sender: sender}
}
