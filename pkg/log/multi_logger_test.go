package log

import (
	"testing"
	"time"
)

// recordingLogger records events for testing
type recordingLogger struct {
	events []Event
}

func (m *recordingLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	l1 := &recordingLogger{}
	l2 := &recordingLogger{}
	l3 := &recordingLogger{}

	multi := NewMultiLogger(l1, l2, l3)
	multi.Log(Event{
		Timestamp: time.Now(),
		SessionID: "session-123",
		Direction: DirectionIn,
		Layer:     LayerOSC,
		Category:  CategoryMessage,
	})

	for i, l := range []*recordingLogger{l1, l2, l3} {
		if len(l.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(l.events))
			continue
		}
		if l.events[0].SessionID != "session-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, l.events[0].SessionID, "session-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	NewMultiLogger().Log(Event{Timestamp: time.Now()})
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	l := &recordingLogger{}
	multi := NewMultiLogger(nil, l, nil)
	multi.Log(Event{SessionID: "s"})

	if len(l.events) != 1 {
		t.Fatalf("got %d events, want 1", len(l.events))
	}
}
