// Package watch notices when another process rewrites the progress file.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/logging"
)

// Debounce is how long the file must stay quiet before a change is reported.
const Debounce = 100 * time.Millisecond

// Change is reported once per burst of writes to the watched file.
type Change struct {
	File    string
	Removed bool
}

// Watcher monitors a single file. It watches the parent directory so that
// atomic replace-by-rename is seen as a change.
type Watcher struct {
	File    string
	Changes <-chan Change

	changes chan Change
	done    chan struct{}
	started bool
	watcher *fsnotify.Watcher
	log     *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger reports watch errors to l.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.log = logging.OrNop(l) }
}

// New creates a watcher for file. The file itself need not exist yet, but
// its directory must.
func New(file string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		File:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It is safe to call
// after a failed or skipped Start.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= Debounce {
				w.emit()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.String("file", w.File), zap.Error(err))
		}
	}
}

// emit never blocks; a full channel already holds an unread change.
func (w *Watcher) emit() {
	_, err := os.Stat(w.File)
	c := Change{File: w.File, Removed: os.IsNotExist(err)}
	select {
	case w.changes <- c:
	default:
	}
}
