package rtmidi

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// alsaPortName matches rtmidi's ALSA port names, e.g.
// "aeolus:In 128:0" (client name, port name, client id, port id).
var alsaPortName = regexp.MustCompile(`^(.*?):(.*) (\d+):(\d+)$`)

// Transport is a seq.Transport backed by the rtmidi driver.
//
// rtmidi does not expose the id of its own sequencer client, so the source
// endpoint is whatever the caller configured. It is carried on events for
// logging only.
type Transport struct {
	mu     sync.Mutex
	drv    *rtmididrv.Driver
	source seq.Endpoint
	out    drivers.Out
	dest   seq.Endpoint
}

// New opens the rtmidi driver.
func New(source seq.Endpoint) (*Transport, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &Transport{drv: drv, source: source}, nil
}

// Source returns the configured source endpoint.
func (t *Transport) Source() seq.Endpoint {
	return t.source
}

// Participants lists the clients owning at least one output port.
func (t *Transport) Participants() ([]seq.Participant, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	outs, err := t.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}

	var result []seq.Participant
	index := make(map[int]int)
	for _, out := range outs {
		name, ep := portEndpoint(out)
		if i, ok := index[ep.Client]; ok {
			result[i].Ports = append(result[i].Ports, ep.Port)
			continue
		}
		index[ep.Client] = len(result)
		result = append(result, seq.Participant{Client: ep.Client, Name: name, Ports: []int{ep.Port}})
	}
	return result, nil
}

// Connected reports whether dst is the open destination and is still listed
// by the driver.
func (t *Transport) Connected(dst seq.Endpoint) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out == nil || t.dest != dst || !t.out.IsOpen() {
		return false, nil
	}
	out, err := t.find(dst)
	if err != nil {
		return false, err
	}
	return out != nil, nil
}

// Connect opens the output port for dst, closing any previous one.
func (t *Transport) Connect(dst seq.Endpoint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	out, err := t.find(dst)
	if err != nil {
		return err
	}
	if out == nil {
		return fmt.Errorf("connect %s: no such port", dst)
	}

	t.closeOut()
	if err := out.Open(); err != nil {
		return fmt.Errorf("connect %s: %w", dst, err)
	}
	t.out = out
	t.dest = dst
	return nil
}

// Send writes the event to the open destination.
func (t *Transport) Send(ev seq.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out == nil || t.dest != ev.Destination {
		return fmt.Errorf("send to %s: %w", ev.Destination, seq.ErrNotConnected)
	}
	if err := t.out.Send(ev.Bytes()); err != nil {
		return fmt.Errorf("send to %s: %w", ev.Destination, err)
	}
	return nil
}

// Close closes the open port and the driver.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeOut()
	return t.drv.Close()
}

func (t *Transport) closeOut() {
	if t.out != nil {
		t.out.Close()
		t.out = nil
	}
}

func (t *Transport) find(dst seq.Endpoint) (drivers.Out, error) {
	outs, err := t.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	for _, out := range outs {
		if _, ep := portEndpoint(out); ep == dst {
			return out, nil
		}
	}
	return nil, nil
}

// portEndpoint extracts the client name and endpoint from a port. Ports not
// following the ALSA naming are treated as port 0 of a client numbered by
// the driver.
func portEndpoint(out drivers.Out) (string, seq.Endpoint) {
	return parsePortName(out.String(), out.Number())
}

func parsePortName(name string, number int) (string, seq.Endpoint) {
	m := alsaPortName.FindStringSubmatch(name)
	if m == nil {
		return name, seq.Endpoint{Client: number}
	}
	client, _ := strconv.Atoi(m[3])
	port, _ := strconv.Atoi(m[4])
	return m[1], seq.Endpoint{Client: client, Port: port}
}

var _ seq.Transport = (*Transport)(nil)
