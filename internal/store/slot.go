// Package store persists the progress record in a single key-value slot and
// converts whatever shape it finds there into the canonical record.
package store

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey is the slot key the record lives under.
const DefaultKey = "scripture_steps_progress"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

var (
	// ErrEmpty is returned by Slot.Get when nothing has been stored yet.
	ErrEmpty = errors.New("slot is empty")
	// ErrUnknownBackend indicates an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Slot is one durable key-value cell. Put replaces the stored bytes whole.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
	Close() error
}

// Options selects and configures a slot backend.
type Options struct {
	Backend string // file (default), sqlite or badger
	Path    string // file path, database path, or badger directory
	Key     string // slot key for sqlite and badger; DefaultKey when empty
}

// Open creates the slot described by opts.
func Open(ctx context.Context, opts Options) (Slot, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	switch opts.Backend {
	case "", BackendFile:
		return NewFileSlot(opts.Path)
	case BackendSQLite:
		return NewSQLiteSlot(ctx, opts.Path, opts.Key)
	case BackendBadger:
		return NewBadgerSlot(opts.Path, opts.Key)
	}
	return nil, fmt.Errorf("store: %w: %q", ErrUnknownBackend, opts.Backend)
}
