// Package telemetry appends a JSONL record of every applied progress
// transition, so a reading history can be audited or charted later. It is
// write-only; nothing in the tracker reads it back.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event kinds, one per transition.
const (
	KindToggleChapter         = "toggle_chapter"
	KindToggleBook            = "toggle_book"
	KindToggleFavoriteChapter = "toggle_favorite_chapter"
	KindToggleFavoriteBook    = "toggle_favorite_book"
	KindSetCompletionDate     = "set_completion_date"
	KindSetCurrentPlace       = "set_current_place"
	KindClearCurrentPlace     = "clear_current_place"
	KindReset                 = "reset"
)

// Event is a single telemetry record.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	BookID    string    `json:"book,omitempty"`
	Chapter   int       `json:"chapter,omitempty"`
	Percent   float64   `json:"percent"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes events to a JSONL file. It is safe for concurrent use.
// A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter opens path for appending, creating it and its directory if
// needed.
func NewEmitter(path string) (*Emitter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit writes one event. A zero Timestamp is filled with the current time.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
