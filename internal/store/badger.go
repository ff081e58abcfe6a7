package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSlot keeps the record under one key of an embedded BadgerDB.
type BadgerSlot struct {
	db  *badger.DB
	key []byte
}

// NewBadgerSlot opens a persistent BadgerDB in dir with synchronous writes.
func NewBadgerSlot(dir, key string) (*BadgerSlot, error) {
	if dir == "" {
		return nil, errors.New("store: badger slot requires a directory")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("store: create badger directory %s: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1).
		WithLogger(nil)
	return openBadger(opts, key)
}

// NewMemoryBadgerSlot opens an in-memory BadgerDB; nothing reaches disk.
func NewMemoryBadgerSlot(key string) (*BadgerSlot, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithNumVersionsToKeep(1).
		WithLogger(nil)
	return openBadger(opts, key)
}

func openBadger(opts badger.Options, key string) (*BadgerSlot, error) {
	if key == "" {
		key = DefaultKey
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger database: %w", err)
	}
	return &BadgerSlot{db: db, key: []byte(key)}, nil
}

// Get returns a copy of the stored value, or ErrEmpty.
func (s *BadgerSlot) Get(_ context.Context) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("store: badger get: %w", err)
	}
	return out, nil
}

// Put replaces the stored value.
func (s *BadgerSlot) Put(_ context.Context, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, data)
	})
	if err != nil {
		return fmt.Errorf("store: badger put: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *BadgerSlot) Close() error {
	return s.db.Close()
}
