package tracker

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
	"github.com/papapumpkin/scripturesteps/internal/store"
	"github.com/papapumpkin/scripturesteps/internal/telemetry"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Book{
		{ID: "x", Name: "Exemplar", Testament: catalog.OldTestament, Chapters: 50, WordCount: 1000},
		{ID: "y", Name: "Yonder", Testament: catalog.OldTestament, Chapters: 3, WordCount: 4000},
		{ID: "z", Name: "Zenith", Testament: catalog.NewTestament, Chapters: 1, WordCount: 5000},
	}, 10000)
}

// testSession opens a session over a file slot in a temp dir.
func testSession(t *testing.T, opts ...Option) (*Session, *store.Store) {
	t.Helper()
	slot, err := store.NewFileSlot(filepath.Join(t.TempDir(), "progress.json"))
	if err != nil {
		t.Fatalf("NewFileSlot: %v", err)
	}
	st := store.New(slot, testCatalog())
	return New(context.Background(), st, testCatalog(), opts...), st
}

type failingSlot struct{}

func (failingSlot) Get(context.Context) ([]byte, error) { return nil, store.ErrEmpty }
func (failingSlot) Put(context.Context, []byte) error   { return errors.New("disk full") }
func (failingSlot) Close() error                        { return nil }

func TestEndToEndPercentage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st := testSession(t)

	for _, ch := range []int{1, 2, 3} {
		if _, err := s.ToggleChapter(ctx, "x", ch); err != nil {
			t.Fatalf("ToggleChapter: %v", err)
		}
	}
	if got := s.Summary().Percentage; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Percentage = %v, want 0.6", got)
	}

	// Every transition is persisted.
	loaded, shape := st.Load(ctx)
	if shape != progress.ShapeCanonical {
		t.Errorf("stored shape = %v", shape)
	}
	if !slices.Equal(loaded.Completed("x"), []int{1, 2, 3}) {
		t.Errorf("stored chapters = %v", loaded.Completed("x"))
	}
	if loaded.LastUpdated == "" {
		t.Error("LastUpdated not set on save")
	}
}

func TestSessionOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := testSession(t)

	mustApply := func(_ progress.Record, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	mustApply(s.ToggleBook(ctx, "y"))
	mustApply(s.ToggleFavoriteChapter(ctx, "x", 5))
	mustApply(s.ToggleFavoriteBook(ctx, "z"))
	mustApply(s.SetCompletionDate(ctx, "y", "2024-05-01"))
	mustApply(s.SetCurrentPlace(ctx, progress.Place{BookID: "x", Chapter: 4, Verse: 2}))

	r := s.Record()
	if !slices.Equal(r.Completed("y"), []int{1, 2, 3}) {
		t.Errorf("Completed(y) = %v", r.Completed("y"))
	}
	if !r.IsChapterFavorite("x", 5) || r.IsChapterComplete("x", 5) {
		t.Error("favorite chapter state wrong")
	}
	if !r.IsBookFavorite("z") {
		t.Error("z not favorited")
	}
	if d, _ := r.CompletionDate("y"); d != "2024-05-01" {
		t.Errorf("date = %q", d)
	}
	if r.CurrentPlace == nil || r.CurrentPlace.Chapter != 4 {
		t.Errorf("CurrentPlace = %+v", r.CurrentPlace)
	}

	mustApply(s.ClearCurrentPlace(ctx))
	if s.Record().CurrentPlace != nil {
		t.Error("place not cleared")
	}
}

func TestResetGate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("declined leaves state", func(t *testing.T) {
		t.Parallel()
		s, st := testSession(t)
		if _, err := s.ToggleBook(ctx, "z"); err != nil {
			t.Fatal(err)
		}
		var asked string
		no := ConfirmFunc(func(p string) (bool, error) { asked = p; return false, nil })
		if _, err := s.Reset(ctx, no); !errors.Is(err, ErrResetDeclined) {
			t.Fatalf("err = %v, want ErrResetDeclined", err)
		}
		if asked != ResetPrompt {
			t.Errorf("prompt = %q", asked)
		}
		if len(s.Record().Completed("z")) != 1 {
			t.Error("declined reset changed memory")
		}
		if r, _ := st.Load(ctx); len(r.Completed("z")) != 1 {
			t.Error("declined reset changed storage")
		}
	})

	t.Run("confirmer error leaves state", func(t *testing.T) {
		t.Parallel()
		s, _ := testSession(t)
		if _, err := s.ToggleBook(ctx, "z"); err != nil {
			t.Fatal(err)
		}
		boom := ConfirmFunc(func(string) (bool, error) { return false, errors.New("no tty") })
		if _, err := s.Reset(ctx, boom); err == nil || errors.Is(err, ErrResetDeclined) {
			t.Fatalf("err = %v, want confirmer error", err)
		}
		if len(s.Record().Completed("z")) != 1 {
			t.Error("state changed")
		}
	})

	t.Run("confirmed clears", func(t *testing.T) {
		t.Parallel()
		s, st := testSession(t)
		if _, err := s.ToggleBook(ctx, "z"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Reset(ctx, AlwaysConfirm); err != nil {
			t.Fatal(err)
		}
		if len(s.Record().CompletedChapters) != 0 {
			t.Error("memory not cleared")
		}
		if r, _ := st.Load(ctx); len(r.CompletedChapters) != 0 {
			t.Error("storage not cleared")
		}
	})
}

func TestSaveFailureStillAdvances(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	st := store.New(failingSlot{}, testCatalog())
	s := New(context.Background(), st, testCatalog(), WithMetrics(m))

	r, err := s.ToggleChapter(context.Background(), "x", 1)
	if err == nil {
		t.Fatal("expected save error")
	}
	if !r.IsChapterComplete("x", 1) || !s.Record().IsChapterComplete("x", 1) {
		t.Error("snapshot should advance despite save failure")
	}
	if got := testutil.ToFloat64(m.saveErrors); got != 1 {
		t.Errorf("save_errors_total = %v, want 1", got)
	}
}

func TestMetricsAndTelemetry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	em, err := telemetry.NewEmitter(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer em.Close()

	s, _ := testSession(t, WithMetrics(m), WithTelemetry(em))
	if _, err := s.ToggleBook(ctx, "z"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleChapter(ctx, "x", 1); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(m.transitions.WithLabelValues(telemetry.KindToggleBook)); got != 1 {
		t.Errorf("toggle_book count = %v", got)
	}
	if got := testutil.ToFloat64(m.chapters); got != 2 {
		t.Errorf("completed_chapters = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.percent); math.Abs(got-50.2) > 1e-9 {
		t.Errorf("completion_percent = %v, want 50.2", got)
	}
}

func TestConcurrentTransitionsAreSerialized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st := testSession(t)

	var wg sync.WaitGroup
	for ch := 1; ch <= 50; ch++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = s.ToggleChapter(ctx, "x", n)
		}(ch)
	}
	wg.Wait()

	if got := len(s.Record().Completed("x")); got != 50 {
		t.Errorf("in memory = %d chapters, want 50", got)
	}
	if r, _ := st.Load(ctx); len(r.Completed("x")) != 50 {
		t.Errorf("stored = %d chapters, want 50", len(r.Completed("x")))
	}
}

func TestReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st := testSession(t)

	other := progress.ToggleBook(progress.Empty(), testCatalog(), "y")
	if _, err := st.Save(ctx, other); err != nil {
		t.Fatal(err)
	}
	if len(s.Record().Completed("y")) != 0 {
		t.Fatal("session should not see external write before reload")
	}
	if r := s.Reload(ctx); len(r.Completed("y")) != 3 {
		t.Errorf("after reload Completed(y) = %v", r.Completed("y"))
	}
}

// parkingSlot wraps a slot and, once armed, holds Get after reading until
// release is closed.
type parkingSlot struct {
	store.Slot
	armed   atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func (p *parkingSlot) Get(ctx context.Context) ([]byte, error) {
	data, err := p.Slot.Get(ctx)
	if p.armed.Load() {
		close(p.read)
		<-p.release
	}
	return data, err
}

func TestReloadDoesNotLoseConcurrentTransition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fs, err := store.NewFileSlot(filepath.Join(t.TempDir(), "progress.json"))
	if err != nil {
		t.Fatal(err)
	}
	slot := &parkingSlot{Slot: fs, read: make(chan struct{}), release: make(chan struct{})}
	s := New(ctx, store.New(slot, testCatalog()), testCatalog())

	slot.armed.Store(true)
	reloaded := make(chan struct{})
	go func() {
		s.Reload(ctx)
		close(reloaded)
	}()
	<-slot.read
	slot.armed.Store(false)

	toggled := make(chan error, 1)
	go func() {
		_, err := s.ToggleChapter(ctx, "x", 1)
		toggled <- err
	}()

	select {
	case <-toggled:
		t.Fatal("transition completed while reload was still reading")
	case <-time.After(50 * time.Millisecond):
	}

	close(slot.release)
	<-reloaded
	if err := <-toggled; err != nil {
		t.Fatalf("ToggleChapter: %v", err)
	}

	if !s.Record().IsChapterComplete("x", 1) {
		t.Error("in-memory snapshot lost the transition applied during reload")
	}
	if r, _ := store.New(fs, testCatalog()).Load(ctx); !r.IsChapterComplete("x", 1) {
		t.Error("stored record lost the transition applied during reload")
	}
}

func TestNoOpTransitionsAreSilent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name  string
		apply func(*Session) (progress.Record, error)
	}{
		{"unknown book", func(s *Session) (progress.Record, error) { return s.ToggleBook(ctx, "nope") }},
		{"reset empty", func(s *Session) (progress.Record, error) { return s.Reset(ctx, AlwaysConfirm) }},
		{"clear missing place", func(s *Session) (progress.Record, error) { return s.ClearCurrentPlace(ctx) }},
		{"clear missing date", func(s *Session) (progress.Record, error) { return s.SetCompletionDate(ctx, "x", "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := prometheus.NewRegistry()
			m := NewMetrics(reg)
			events := filepath.Join(t.TempDir(), "events.jsonl")
			em, err := telemetry.NewEmitter(events)
			if err != nil {
				t.Fatal(err)
			}
			defer em.Close()

			s, st := testSession(t, WithMetrics(m), WithTelemetry(em))
			r, err := tt.apply(s)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if r.LastUpdated != "" {
				t.Errorf("no-op stamped LastUpdated = %q", r.LastUpdated)
			}
			if _, shape := st.Load(ctx); shape != progress.ShapeUnknown {
				t.Errorf("no-op wrote the slot (shape %v)", shape)
			}
			if got := testutil.CollectAndCount(m.transitions); got != 0 {
				t.Errorf("transitions recorded = %d, want 0", got)
			}
			if data, _ := os.ReadFile(events); len(data) != 0 {
				t.Errorf("no-op emitted telemetry: %s", data)
			}
		})
	}
}

func TestSetCurrentPlaceTwiceWritesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	s, _ := testSession(t, WithMetrics(m))

	p := progress.Place{BookID: "y", Chapter: 2, Verse: 3}
	for range 2 {
		if _, err := s.SetCurrentPlace(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues(telemetry.KindSetCurrentPlace)); got != 1 {
		t.Errorf("set_current_place count = %v, want 1", got)
	}
}
