package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var out []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("invalid JSON line: %v\nline: %s", err, scanner.Text())
		}
		out = append(out, evt)
	}
	return out
}

func TestNewEmitter_CreatesFileAndDir(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sub", "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter(%q): %v", path, err)
	}
	defer em.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist at %q: %v", path, err)
	}
}

func TestNewEmitter_ErrorOnBadPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewEmitter(filepath.Join(blocker, "events.jsonl"))
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestEmit_WritesValidJSONL(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: ts, Kind: KindToggleChapter, BookID: "gen", Chapter: 1, Percent: 0.1},
		{Timestamp: ts, Kind: KindSetCompletionDate, BookID: "gen", Data: map[string]string{"date": "2025-01-01"}},
		{Kind: KindReset},
	}
	for _, evt := range events {
		if err := em.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readEvents(t, path)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Kind != KindToggleChapter || got[0].BookID != "gen" || got[0].Chapter != 1 {
		t.Errorf("event 0 = %+v", got[0])
	}
	if got[2].Timestamp.IsZero() {
		t.Error("zero timestamp should be filled on emit")
	}
}

func TestEmit_AppendsAcrossOpens(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	for i := 0; i < 2; i++ {
		em, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := em.Emit(Event{Kind: KindToggleBook, BookID: "rut"}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		em.Close()
	}
	if got := readEvents(t, path); len(got) != 2 {
		t.Errorf("got %d events, want 2", len(got))
	}
}

func TestEmit_Concurrent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = em.Emit(Event{Kind: KindToggleChapter, BookID: "psa", Chapter: n + 1})
		}(i)
	}
	wg.Wait()
	em.Close()

	if got := readEvents(t, path); len(got) != 20 {
		t.Errorf("got %d events, want 20", len(got))
	}
}

func TestNilEmitter(t *testing.T) {
	t.Parallel()
	var em *Emitter
	if err := em.Emit(Event{Kind: KindReset}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
