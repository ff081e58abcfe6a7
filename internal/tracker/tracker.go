// Package tracker holds the live progress snapshot for one front end and
// commits every transition to the store as it happens.
package tracker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/logging"
	"github.com/papapumpkin/scripturesteps/internal/progress"
	"github.com/papapumpkin/scripturesteps/internal/stats"
	"github.com/papapumpkin/scripturesteps/internal/store"
	"github.com/papapumpkin/scripturesteps/internal/telemetry"
)

// ResetPrompt is the question asked before clearing all progress.
const ResetPrompt = "Are you sure you want to clear all progress? This cannot be undone."

// ErrResetDeclined is returned by Reset when the confirmation is refused.
var ErrResetDeclined = errors.New("reset declined")

// Confirmer gates destructive operations behind a yes/no answer.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Session owns the current snapshot. Transitions are serialized, so one
// Session may be shared by the TUI loop, HTTP handlers and the watcher.
type Session struct {
	mu      sync.Mutex
	store   *store.Store
	cat     *catalog.Catalog
	rec     progress.Record
	log     *zap.Logger
	events  *telemetry.Emitter
	metrics *Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = logging.OrNop(l) }
}

// WithTelemetry records every applied transition to em.
func WithTelemetry(em *telemetry.Emitter) Option {
	return func(s *Session) { s.events = em }
}

// WithMetrics reports transitions to m.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New loads the stored record once and returns a session over it.
func New(ctx context.Context, st *store.Store, cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		store: st,
		cat:   cat,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.rec, _ = st.Load(ctx)
	return s
}

// Record returns the current snapshot.
func (s *Session) Record() progress.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec
}

// Catalog returns the catalog the session measures against.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Summary computes the headline figures for the current snapshot.
func (s *Session) Summary() stats.Summary {
	return stats.Summarize(s.Record(), s.cat)
}

// Reload discards the in-memory snapshot and reads the store again. Used
// when another process has written the slot. Transitions wait until the
// read has been adopted.
func (s *Session) Reload(ctx context.Context) progress.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec, _ = s.store.Load(ctx)
	return s.rec
}

// Apply runs fn on the current snapshot, adopts the result and writes it to
// the store in full. The in-memory snapshot advances even when the write
// fails; the error is logged and returned. A transition that changes
// nothing is a silent no-op: no write, no event, no metrics.
func (s *Session) Apply(ctx context.Context, evt telemetry.Event, fn func(progress.Record) progress.Record) (progress.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposed := fn(s.rec)
	if progress.Equal(proposed, s.rec) {
		s.log.Debug("transition changed nothing", zap.String("kind", evt.Kind), zap.String("book", evt.BookID))
		return s.rec, nil
	}

	next, err := s.store.Save(ctx, proposed)
	s.rec = next
	if err != nil {
		s.log.Error("failed to save progress", zap.String("kind", evt.Kind), zap.Error(err))
		s.metrics.saveFailed()
	}

	pct := stats.Percentage(next, s.cat)
	s.metrics.observe(evt.Kind, pct, stats.CompletedChapters(next, s.cat))
	evt.Percent = pct
	if emitErr := s.events.Emit(evt); emitErr != nil {
		s.log.Warn("failed to record telemetry", zap.Error(emitErr))
	}
	s.log.Debug("applied transition",
		zap.String("kind", evt.Kind),
		zap.String("book", evt.BookID),
		zap.Int("chapter", evt.Chapter),
		zap.Float64("percent", pct),
	)
	return next, err
}

// ToggleChapter flips completion of one chapter.
func (s *Session) ToggleChapter(ctx context.Context, bookID string, chapter int) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindToggleChapter, BookID: bookID, Chapter: chapter}
	return s.Apply(ctx, evt, func(r progress.Record) progress.Record {
		return progress.ToggleChapter(r, bookID, chapter)
	})
}

// ToggleBook completes or clears a whole book.
func (s *Session) ToggleBook(ctx context.Context, bookID string) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindToggleBook, BookID: bookID}
	return s.Apply(ctx, evt, func(r progress.Record) progress.Record {
		return progress.ToggleBook(r, s.cat, bookID)
	})
}

// ToggleFavoriteChapter flips the favorite flag of one chapter.
func (s *Session) ToggleFavoriteChapter(ctx context.Context, bookID string, chapter int) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindToggleFavoriteChapter, BookID: bookID, Chapter: chapter}
	return s.Apply(ctx, evt, func(r progress.Record) progress.Record {
		return progress.ToggleFavoriteChapter(r, bookID, chapter)
	})
}

// ToggleFavoriteBook flips the favorite flag of a book.
func (s *Session) ToggleFavoriteBook(ctx context.Context, bookID string) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindToggleFavoriteBook, BookID: bookID}
	return s.Apply(ctx, evt, func(r progress.Record) progress.Record {
		return progress.ToggleFavoriteBook(r, bookID)
	})
}

// SetCompletionDate records or, with an empty date, clears a book's date.
func (s *Session) SetCompletionDate(ctx context.Context, bookID, date string) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindSetCompletionDate, BookID: bookID, Data: map[string]string{"date": date}}
	return s.Apply(ctx, evt, func(r progress.Record) progress.Record {
		return progress.SetCompletionDate(r, bookID, date)
	})
}

// SetCurrentPlace overwrites the reading position.
func (s *Session) SetCurrentPlace(ctx context.Context, p progress.Place) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindSetCurrentPlace, BookID: p.BookID, Chapter: p.Chapter, Data: map[string]int{"verse": p.Verse}}
	return s.Apply(ctx, evt, func(r progress.Record) progress.Record {
		return progress.SetCurrentPlace(r, p.BookID, p.Chapter, p.Verse)
	})
}

// ClearCurrentPlace removes the reading position.
func (s *Session) ClearCurrentPlace(ctx context.Context) (progress.Record, error) {
	evt := telemetry.Event{Kind: telemetry.KindClearCurrentPlace}
	return s.Apply(ctx, evt, progress.ClearCurrentPlace)
}

// Reset clears all progress once c confirms. Declining returns
// ErrResetDeclined and leaves the snapshot untouched.
func (s *Session) Reset(ctx context.Context, c Confirmer) (progress.Record, error) {
	ok, err := c.Confirm(ResetPrompt)
	if err != nil {
		return s.Record(), err
	}
	if !ok {
		return s.Record(), ErrResetDeclined
	}
	evt := telemetry.Event{Kind: telemetry.KindReset}
	return s.Apply(ctx, evt, func(progress.Record) progress.Record {
		return progress.Reset()
	})
}
