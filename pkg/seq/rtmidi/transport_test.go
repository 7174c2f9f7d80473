package rtmidi

import (
	"testing"

	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

func TestParsePortName(t *testing.T) {
	tests := []struct {
		name     string
		number   int
		wantName string
		want     seq.Endpoint
	}{
		{"aeolus:In 128:0", 3, "aeolus", seq.Endpoint{Client: 128, Port: 0}},
		{"Midi Through:Midi Through Port-0 14:0", 0, "Midi Through", seq.Endpoint{Client: 14, Port: 0}},
		{"FLUID Synth (1234):Synth input port (1234:0) 129:1", 2, "FLUID Synth (1234)", seq.Endpoint{Client: 129, Port: 1}},
		{"IAC Driver Bus 1", 5, "IAC Driver Bus 1", seq.Endpoint{Client: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ep := parsePortName(tt.name, tt.number)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if ep != tt.want {
				t.Errorf("endpoint = %v, want %v", ep, tt.want)
			}
		})
	}
}
