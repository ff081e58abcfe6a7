package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slotFactories opens each backend in a fresh temp location.
func slotFactories(t *testing.T) map[string]func() Slot {
	t.Helper()
	return map[string]func() Slot{
		"file": func() Slot {
			s, err := NewFileSlot(filepath.Join(t.TempDir(), "nested", "progress.json"))
			require.NoError(t, err)
			return s
		},
		"sqlite": func() Slot {
			s, err := NewSQLiteSlot(context.Background(), filepath.Join(t.TempDir(), "progress.db"), DefaultKey)
			require.NoError(t, err)
			return s
		},
		"badger": func() Slot {
			s, err := NewMemoryBadgerSlot(DefaultKey)
			require.NoError(t, err)
			return s
		},
	}
}

func TestSlotsGetPut(t *testing.T) {
	ctx := context.Background()
	for name, open := range slotFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			_, err := s.Get(ctx)
			assert.ErrorIs(t, err, ErrEmpty)

			require.NoError(t, s.Put(ctx, []byte(`{"a":1}`)))
			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got))

			require.NoError(t, s.Put(ctx, []byte(`{"b":2}`)))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, `{"b":2}`, string(got), "put must overwrite")
		})
	}
}

func TestFileSlotPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")

	s1, err := NewFileSlot(path)
	require.NoError(t, err)
	require.NoError(t, s1.Put(ctx, []byte("hello")))
	assert.NoFileExists(t, path+".tmp")

	s2, err := NewFileSlot(path)
	require.NoError(t, err)
	got, err := s2.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestSQLiteSlotPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.db")

	s1, err := NewSQLiteSlot(ctx, path, "k")
	require.NoError(t, err)
	require.NoError(t, s1.Put(ctx, []byte("v1")))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteSlot(ctx, path, "k")
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	other, err := NewSQLiteSlot(ctx, path, "other")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Get(ctx)
	assert.ErrorIs(t, err, ErrEmpty, "keys are independent")
}

func TestBadgerSlotPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := NewBadgerSlot(dir, "")
	require.NoError(t, err)
	require.NoError(t, s1.Put(ctx, []byte("durable")))
	require.NoError(t, s1.Close())

	s2, err := NewBadgerSlot(dir, "")
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "durable", string(got))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Options{Path: filepath.Join(dir, "p.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileSlot{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, Path: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSlot{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{Backend: BackendBadger, Path: filepath.Join(dir, "badger")})
	require.NoError(t, err)
	assert.IsType(t, &BadgerSlot{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "redis"})
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Open(ctx, Options{})
	assert.Error(t, err, "file backend needs a path")
}
