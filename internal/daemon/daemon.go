package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tasknotify/internal/config"
	"tasknotify/internal/directory"
	"tasknotify/internal/dispatch"
	"tasknotify/internal/logging"
	"tasknotify/internal/notify"
	"tasknotify/internal/push"
	"tasknotify/internal/store"
)

// Daemon wires the store, dispatchers, scheduler, and API server together and
// enforces single-instance execution. All dependencies are constructed here
// and passed down explicitly; there is no process-wide shared state.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	resolver *directory.Resolver
	gateway  push.Gateway
	events   *dispatch.Events
	scanner  *dispatch.Scanner
	api      *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running  bool              `json:"running"`
	DBPath   string            `json:"dbPath"`
	LockPath string            `json:"lockPath"`
	Counts   store.Counts      `json:"counts"`
	LastScan *dispatch.Summary `json:"lastScan,omitempty"`
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	opts := notify.Options{
		ChannelID:   cfg.Push.NotificationChannel,
		ClickAction: cfg.Push.ClickAction,
		Icon:        cfg.Push.Icon,
	}
	resolver := directory.NewResolver(st, logger)
	gateway := push.NewGateway(cfg, logger)
	dispatcher := dispatch.New(resolver, gateway, opts, logger)

	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		resolver: resolver,
		gateway:  gateway,
		events:   dispatch.NewEvents(dispatcher, logger),
		scanner:  dispatch.NewScanner(cfg, st, dispatcher, logger),
		lockPath: filepath.Join(cfg.Paths.DataDir, "tasknotifyd.lock"),
	}
	d.lock = flock.New(d.lockPath)

	api, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = api
	return d, nil
}

// Start acquires the daemon lock and launches the scanner and API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another tasknotify daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if d.api != nil {
		if err := d.api.start(d.ctx); err != nil {
			_ = d.lock.Unlock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return err
		}
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.scanner.Run(d.ctx)
	}()

	d.running.Store(true)
	d.logger.Info("tasknotify daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("scan_interval", d.scanner.Interval()),
	)
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if d.api != nil {
		d.api.stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("tasknotify daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// APIAddr returns the bound API listener address, empty until Start.
func (d *Daemon) APIAddr() string {
	return d.api.addr()
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	counts, err := d.store.Counts(ctx)
	if err != nil {
		return Status{}, err
	}
	status := Status{
		Running:  d.running.Load(),
		DBPath:   d.store.Path(),
		LockPath: d.lockPath,
		Counts:   counts,
	}
	if summary, ok := d.scanner.LastSummary(); ok {
		status.LastScan = &summary
	}
	return status, nil
}

// IngestTask persists a task snapshot from the change feed and hands the
// resulting event to the dispatcher asynchronously, so a slow delivery never
// blocks the feed. It returns whether the snapshot created a new task and
// the event id assigned to the dispatch.
func (d *Daemon) IngestTask(ctx context.Context, task store.Task) (created bool, eventID string, err error) {
	before, err := d.store.SaveTask(ctx, task)
	if err != nil {
		return false, "", err
	}
	after, err := d.store.GetTask(ctx, task.ID)
	if err != nil {
		return false, "", err
	}

	eventID = uuid.NewString()
	created = before == nil
	d.logger.Debug("task snapshot ingested",
		logging.String("event_id", eventID),
		logging.String("task_id", task.ID),
		logging.Bool("created", created),
	)

	dispatchCtx := d.ctx
	if dispatchCtx == nil {
		dispatchCtx = context.Background()
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		eventCtx, cancel := context.WithTimeout(dispatchCtx, time.Duration(d.cfg.Push.RequestTimeout+5)*time.Second)
		defer cancel()
		if created {
			d.events.TaskCreated(eventCtx, after)
		} else {
			d.events.TaskUpdated(eventCtx, before, after)
		}
	}()
	return created, eventID, nil
}

// ScanNow runs one due-soon scan immediately, outside the ticker cadence,
// and returns its summary.
func (d *Daemon) ScanNow(ctx context.Context) dispatch.Summary {
	return d.scanner.Tick(ctx, time.Now())
}

// DueTasks returns the open tasks currently inside the due-soon window.
func (d *Daemon) DueTasks(ctx context.Context, now time.Time) ([]*store.Task, error) {
	tasks, err := d.store.ListOpenTasks(ctx)
	if err != nil {
		return nil, err
	}
	return dispatch.DueWithin(tasks, now, dispatch.DueWindow), nil
}

// TestNotification sends a synthetic message to the given username through
// the real resolver and gateway.
func (d *Daemon) TestNotification(ctx context.Context, username string) (bool, string, error) {
	token, ok, err := d.resolver.Resolve(ctx, username)
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, fmt.Sprintf("no delivery token registered for %q", username), nil
	}

	msg := notify.Message{
		Token: token,
		Title: "Tasknotify Test",
		Body:  "Test notification from tasknotify",
		Data:  map[string]string{"type": "test"},
		Android: notify.AndroidConfig{
			Priority:  "high",
			ChannelID: d.cfg.Push.NotificationChannel,
			Sound:     "default",
		},
		APNS: notify.APNSConfig{Badge: 1, Sound: "default"},
	}
	result := d.gateway.Send(ctx, msg)
	return result.OK, result.Detail, nil
}
