package interactive

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aeolus-osc/aeolus-go/pkg/bridge"
	"github.com/aeolus-osc/aeolus-go/pkg/seq"
	"github.com/aeolus-osc/aeolus-go/pkg/seq/mocks"
)

var (
	source = seq.Endpoint{Client: 130}
	aeolus = seq.Endpoint{Client: 128}
)

// newConsole starts a session over tr and returns a console writing to
// the returned buffer.
func newConsole(t *testing.T, tr *mocks.MockTransport) (*Console, *bytes.Buffer) {
	t.Helper()
	tr.EXPECT().Source().Return(source).Maybe()

	s, err := bridge.NewSession(tr, bridge.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("session did not stop")
		}
	})

	var buf bytes.Buffer
	return &Console{session: s, out: &buf}, &buf
}

func withOrgan(tr *mocks.MockTransport) {
	tr.EXPECT().Participants().Return([]seq.Participant{
		{Client: 14, Name: "Midi Through", Ports: []int{0}},
		{Client: 128, Name: "aeolus", Ports: []int{0}},
	}, nil).Maybe()
	tr.EXPECT().Connect(aeolus).Return(nil).Maybe()
	tr.EXPECT().Connected(aeolus).Return(true, nil).Maybe()
}

func sentValues(tr *mocks.MockTransport) []uint8 {
	var out []uint8
	for _, call := range tr.Calls {
		if call.Method == "Send" {
			out = append(out, call.Arguments.Get(0).(seq.Event).Value)
		}
	}
	return out
}

func TestConsoleButton(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	tr.EXPECT().Send(mock.Anything).Return(nil).Times(4)
	c, out := newConsole(t, tr)
	ctx := context.Background()

	assert.True(t, c.Exec(ctx, "button 2 5"))
	assert.True(t, c.Exec(ctx, "b 2 5 off"))

	assert.Equal(t, []uint8{0x61, 0x04, 0x51, 0x04}, sentValues(tr))
	assert.Contains(t, out.String(), "/aeolus/button/2/5: 2 event(s) sent")
}

func TestConsolePresetAndCancel(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	tr.EXPECT().Send(mock.Anything).Return(nil).Times(4)
	c, _ := newConsole(t, tr)
	ctx := context.Background()

	c.Exec(ctx, "preset 3")
	c.Exec(ctx, "cancel 3")

	assert.Equal(t, []uint8{2, 0x40, 0x41, 0x42}, sentValues(tr))
}

func TestConsoleSendRaw(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	tr.EXPECT().Send(mock.Anything).Return(nil).Times(2)
	c, out := newConsole(t, tr)
	ctx := context.Background()

	c.Exec(ctx, "send /aeolus/button/1/1 1.0")
	c.Exec(ctx, "send /other/thing 1")

	assert.Equal(t, []uint8{0x60, 0x00}, sentValues(tr))
	assert.Contains(t, out.String(), "/other/thing: address not recognized")
}

func TestConsoleNoDestination(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return(nil, nil).Maybe()
	c, out := newConsole(t, tr)

	c.Exec(context.Background(), "preset 1")
	c.Exec(context.Background(), "resolve")

	assert.Contains(t, out.String(), "/aeolus/preset/1: dropped: no destination")
	assert.Contains(t, out.String(), "Resolve failed")
	tr.AssertNotCalled(t, "Send", mock.Anything)
}

func TestConsoleInvalidIndex(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	c, out := newConsole(t, tr)

	c.Exec(context.Background(), "button 9 1")

	assert.Contains(t, out.String(), "/aeolus/button/9/1:")
	assert.Contains(t, out.String(), "out of encodable range")
	tr.AssertNotCalled(t, "Send", mock.Anything)
}

func TestConsoleGroupAndSelect(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	tr.EXPECT().Send(mock.Anything).Return(nil).Times(2)
	c, out := newConsole(t, tr)
	ctx := context.Background()

	c.Exec(ctx, "group 2 toggle")
	c.Exec(ctx, "select 5")

	assert.Equal(t, []uint8{0x71, 0x04}, sentValues(tr))
	assert.Contains(t, out.String(), "group 2 toggle: 1 event(s) sent")
	assert.Contains(t, out.String(), "select 5: 1 event(s) sent")
}

func TestConsoleGroupErrors(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	c, out := newConsole(t, tr)
	ctx := context.Background()

	c.Exec(ctx, "group 9 on")
	c.Exec(ctx, "group 1 flip")
	c.Exec(ctx, "select 33")

	s := out.String()
	assert.Contains(t, s, "group 9 on:")
	assert.Contains(t, s, "Invalid mode")
	assert.Contains(t, s, "select 33:")
	tr.AssertNotCalled(t, "Send", mock.Anything)
}

func TestConsoleGroupNoDestination(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return(nil, nil).Maybe()
	c, out := newConsole(t, tr)

	c.Exec(context.Background(), "group 1 reset")

	assert.Contains(t, out.String(), "group 1 reset: dropped: no destination")
	tr.AssertNotCalled(t, "Send", mock.Anything)
}

func TestConsoleStatusAndParticipants(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	withOrgan(tr)
	c, out := newConsole(t, tr)
	ctx := context.Background()

	c.Exec(ctx, "resolve")
	c.Exec(ctx, "status")
	c.Exec(ctx, "participants")

	s := out.String()
	assert.Contains(t, s, "Destination: 128:0")
	assert.Contains(t, s, "Channel:      1")
	assert.Contains(t, s, "Source:       130:0")
	assert.Contains(t, s, "Sequencer Clients (2)")
	assert.Contains(t, s, "aeolus")
}

func TestConsoleParticipantsError(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return(nil, errors.New("bus down")).Maybe()
	c, out := newConsole(t, tr)

	c.Exec(context.Background(), "ls")
	assert.Contains(t, out.String(), "Error: bus down")
}

func TestConsoleUsage(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return(nil, nil).Maybe()
	c, out := newConsole(t, tr)
	ctx := context.Background()

	assert.True(t, c.Exec(ctx, ""))
	assert.True(t, c.Exec(ctx, "button 1"))
	assert.True(t, c.Exec(ctx, "button 1 2 maybe"))
	assert.True(t, c.Exec(ctx, "preset x"))
	assert.True(t, c.Exec(ctx, "frobnicate"))
	assert.True(t, c.Exec(ctx, "help"))
	assert.False(t, c.Exec(ctx, "quit"))

	s := out.String()
	assert.Contains(t, s, "Usage: button")
	assert.Contains(t, s, "Invalid state: maybe")
	assert.Contains(t, s, "Invalid preset: x")
	assert.Contains(t, s, "Unknown command: frobnicate")
	assert.Contains(t, s, "Aeolus OSC Commands")
}

func TestParseArg(t *testing.T) {
	assert.Equal(t, int32(3), parseArg("3"))
	assert.Equal(t, float32(0.5), parseArg("0.5"))
	assert.Equal(t, "hello", parseArg(`"hello"`))
}
