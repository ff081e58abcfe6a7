package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/config"
	"github.com/papapumpkin/scripturesteps/internal/logging"
	"github.com/papapumpkin/scripturesteps/internal/reflection"
	"github.com/papapumpkin/scripturesteps/internal/store"
	"github.com/papapumpkin/scripturesteps/internal/telemetry"
	"github.com/papapumpkin/scripturesteps/internal/tracker"
	"github.com/papapumpkin/scripturesteps/internal/ui"
)

// app bundles everything a command needs to read or change progress.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	cat      *catalog.Catalog
	store    *store.Store
	session  *tracker.Session
	registry *prometheus.Registry
	events   *telemetry.Emitter
	printer  *ui.Printer
}

// openApp loads config and opens the configured store and session.
func openApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	slot, err := store.Open(ctx, store.Options{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
		Key:     cfg.Storage.Key,
	})
	if err != nil {
		return nil, err
	}
	st := store.New(slot, cat, store.WithLogger(log))

	a := &app{
		cfg:      cfg,
		log:      log,
		cat:      cat,
		store:    st,
		registry: prometheus.NewRegistry(),
		printer:  ui.New(),
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []tracker.Option{
		tracker.WithLogger(log),
		tracker.WithMetrics(tracker.NewMetrics(a.registry)),
	}
	if cfg.TelemetryFile != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryFile)
		if err != nil {
			log.Warn("telemetry disabled", zap.Error(err))
		} else {
			a.events = em
			opts = append(opts, tracker.WithTelemetry(em))
		}
	}
	a.session = tracker.New(ctx, st, cat, opts...)
	log.Debug("opened progress",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
	)
	return a, nil
}

func (a *app) Close() error {
	err := errors.Join(a.store.Close(), a.events.Close())
	_ = a.log.Sync()
	return err
}

func (a *app) reflector() *reflection.Reflector {
	return reflection.New(reflection.Config{
		APIKey:  a.cfg.Reflection.APIKey,
		BaseURL: a.cfg.Reflection.BaseURL,
		Model:   a.cfg.Reflection.Model,
		Timeout: a.cfg.Reflection.Timeout,
	}, a.log)
}

// book resolves a book reference, reporting unknown books to the user.
func (a *app) book(ref string) (catalog.Book, error) {
	b, err := a.cat.Resolve(ref)
	if err != nil {
		a.printer.Error(err.Error())
		return catalog.Book{}, err
	}
	return b, nil
}

// saved reports the outcome of a transition. The in-memory snapshot has
// advanced either way; a failed write is an error for the command.
func (a *app) saved(err error, msg string) error {
	if err != nil {
		a.printer.Error(fmt.Sprintf("saving progress: %v", err))
		return err
	}
	a.printer.Success(msg)
	return nil
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
