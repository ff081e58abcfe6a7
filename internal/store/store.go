package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/logging"
	"github.com/papapumpkin/scripturesteps/internal/progress"
)

// Store reads and writes the progress record through a Slot.
type Store struct {
	slot  Slot
	books progress.Books
	log   *zap.Logger
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = logging.OrNop(l) }
}

// WithClock overrides the timestamp source used by Save.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps slot. books resolves chapter counts when migrating the
// book-list layout.
func New(slot Slot, books progress.Books, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		books: books,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load returns the stored record in canonical form along with the shape it
// was found in. It never fails: an empty slot, a read error or bytes that
// cannot be decoded all yield the empty record, logged.
func (s *Store) Load(ctx context.Context) (progress.Record, progress.Shape) {
	data, err := s.slot.Get(ctx)
	if errors.Is(err, ErrEmpty) {
		s.log.Debug("no saved progress")
		return progress.Empty(), progress.ShapeUnknown
	}
	if err != nil {
		s.log.Warn("failed to read progress, starting empty", zap.Error(err))
		return progress.Empty(), progress.ShapeUnknown
	}

	r, shape, err := progress.Decode(data, s.books)
	if err != nil {
		s.log.Warn("failed to parse progress, starting empty", zap.Error(err))
		return progress.Empty(), progress.ShapeUnknown
	}
	switch shape {
	case progress.ShapeCanonical:
	case progress.ShapeUnknown:
		s.log.Warn("saved progress has no recognizable fields, starting empty")
	default:
		s.log.Info("migrated saved progress", zap.Stringer("from", shape))
	}
	return r, shape
}

// Save stamps r with the current time and writes it whole, replacing
// whatever the slot held. The stamped record is returned even on error.
func (s *Store) Save(ctx context.Context, r progress.Record) (progress.Record, error) {
	r = r.Stamp(s.now())
	data, err := progress.Encode(r)
	if err != nil {
		return r, err
	}
	if err := s.slot.Put(ctx, data); err != nil {
		return r, fmt.Errorf("store: save: %w", err)
	}
	return r, nil
}

// Migrate loads the record and immediately writes it back in canonical
// form. It reports the shape that was found.
func (s *Store) Migrate(ctx context.Context) (progress.Shape, error) {
	r, shape := s.Load(ctx)
	if _, err := s.Save(ctx, r); err != nil {
		return shape, err
	}
	return shape, nil
}

// Close closes the underlying slot.
func (s *Store) Close() error {
	return s.slot.Close()
}
