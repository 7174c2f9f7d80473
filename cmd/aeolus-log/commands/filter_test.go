package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aeolus-osc/aeolus-go/pkg/log"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func TestFilterBySessionID(t *testing.T) {
	ts := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: "session-1", Category: log.CategoryMessage},
		{Timestamp: ts, SessionID: "session-2", Category: log.CategoryMessage},
		{Timestamp: ts, SessionID: "session-1", Category: log.CategoryState},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.alog")

	var buf bytes.Buffer
	if err := RunFilter(path, FilterOptions{Output: outPath, SessionID: "session-1"}, &buf); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readAll(t, outPath)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	for _, e := range got {
		if e.SessionID != "session-1" {
			t.Errorf("expected session-1, got %s", e.SessionID)
		}
	}
	if !strings.Contains(buf.String(), "Filtered 2 events") {
		t.Errorf("unexpected summary: %q", buf.String())
	}
}

func TestFilterByAddressAndDestination(t *testing.T) {
	ts := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	events := append(sessionEvents(ts), log.Event{
		Timestamp: ts,
		Category:  log.CategoryMessage,
		OSC:       &log.OSCEvent{Address: "/aeolus/preset/2", Action: "preset"},
	})
	path := createTestLogFile(t, events)

	outPath := filepath.Join(t.TempDir(), "buttons.alog")
	if err := RunFilter(path, FilterOptions{Output: outPath, Address: "/aeolus/button"}, io.Discard); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	got := readAll(t, outPath)
	if len(got) != 1 || got[0].OSC.Address != "/aeolus/button/1/4" {
		t.Errorf("unexpected events: %+v", got)
	}

	outPath = filepath.Join(t.TempDir(), "dest.alog")
	if err := RunFilter(path, FilterOptions{Output: outPath, Destination: "128:0"}, io.Discard); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	got = readAll(t, outPath)
	if len(got) != 1 || got[0].Control == nil {
		t.Errorf("unexpected events: %+v", got)
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: base, Category: log.CategoryMessage},
		{Timestamp: base.Add(5 * time.Minute), Category: log.CategoryMessage},
		{Timestamp: base.Add(10 * time.Minute), Category: log.CategoryMessage},
	}
	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.alog")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		TimeStart: base.Add(time.Minute).Format(time.RFC3339),
		TimeEnd:   base.Add(10 * time.Minute).Format(time.RFC3339),
	}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readAll(t, outPath)
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(base.Add(5 * time.Minute)) {
		t.Errorf("unexpected timestamp %v", got[0].Timestamp)
	}
}

func TestFilterByLayerAndCategory(t *testing.T) {
	ts := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(ts))
	outPath := filepath.Join(t.TempDir(), "filtered.alog")

	err := RunFilter(path, FilterOptions{Output: outPath, Layer: "seq", Category: "control", Direction: "out"}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if got := readAll(t, outPath); len(got) != 1 {
		t.Errorf("expected 1 event, got %d", len(got))
	}
}

func TestFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, nil)
	outPath := filepath.Join(t.TempDir(), "filtered.alog")

	for _, opts := range []FilterOptions{
		{Output: outPath, TimeStart: "yesterday"},
		{Output: outPath, TimeEnd: "tomorrow"},
		{Output: outPath, Layer: "wire"},
		{Output: outPath, Direction: "up"},
		{Output: outPath, Category: "snapshot"},
	} {
		if err := RunFilter(path, opts, io.Discard); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}
