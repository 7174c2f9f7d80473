package seq

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestEvent_BytesController(t *testing.T) {
	ev := Event{Kind: KindController, Channel: 0, Controller: 98, Value: 0x52}

	var ch, ctl, val uint8
	if !midi.Message(ev.Bytes()).GetControlChange(&ch, &ctl, &val) {
		t.Fatalf("Bytes() = % X, not a control change", ev.Bytes())
	}
	if ch != 0 || ctl != 98 || val != 0x52 {
		t.Errorf("got ch=%d ctl=%d val=%d, want 0/98/0x52", ch, ctl, val)
	}
}

func TestEvent_BytesProgramChange(t *testing.T) {
	ev := Event{Kind: KindProgramChange, Channel: 2, Value: 5}

	var ch, prog uint8
	if !midi.Message(ev.Bytes()).GetProgramChange(&ch, &prog) {
		t.Fatalf("Bytes() = % X, not a program change", ev.Bytes())
	}
	if ch != 2 || prog != 5 {
		t.Errorf("got ch=%d prog=%d, want 2/5", ch, prog)
	}
}

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{KindController, "CONTROLLER"},
		{KindProgramChange, "PGMCHANGE"},
		{EventKind(9), "UNKNOWN(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEvent_String(t *testing.T) {
	ev := Event{
		Kind:        KindController,
		Source:      Endpoint{Client: 130},
		Destination: Endpoint{Client: 128},
		Controller:  98,
		Value:       3,
	}
	want := "CONTROLLER 130:0->128:0 ch=0 ctl=98 val=3"
	if got := ev.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
