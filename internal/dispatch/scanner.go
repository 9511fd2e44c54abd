package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tasknotify/internal/config"
	"tasknotify/internal/logging"
	"tasknotify/internal/notify"
	"tasknotify/internal/store"
)

// DueWindow is the fixed look-ahead for due-soon reminders. The notification
// copy promises "due in about 1 hour", so the window is not configurable.
const DueWindow = time.Hour

// Summary aggregates the results of one scan tick.
type Summary struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Scanned  int           `json:"scanned"`
	Matched  int           `json:"matched"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
}

// Scanner runs the recurring due-soon scan. Each tick queries open tasks,
// filters to those entering the due window, and fans the dispatches out over
// a bounded worker pool. Because the window check re-evaluates against the
// current time and no sent marker exists, a task that stays inside the
// rolling window is re-notified on every tick. That at-least-once-per-tick
// behavior is intentional; callers needing exactly-once reminders must add
// an idempotency key outside this package.
type Scanner struct {
	store       *store.Store
	dispatcher  *Dispatcher
	logger      *slog.Logger
	interval    time.Duration
	concurrency int
	location    *time.Location

	mu      sync.Mutex
	last    Summary
	hasLast bool
}

// NewScanner constructs the window-scan dispatcher from configuration. The
// configured time zone affects tick scheduling and log timestamps only; the
// window comparison itself is instant-based.
func NewScanner(cfg *config.Config, st *store.Store, dispatcher *Dispatcher, logger *slog.Logger) *Scanner {
	location, err := time.LoadLocation(cfg.Scheduler.TimeZone)
	if err != nil {
		// Config validation rejects unknown zones; this covers hand-built configs.
		location = time.UTC
	}
	return &Scanner{
		store:       st,
		dispatcher:  dispatcher,
		logger:      logging.NewComponentLogger(logger, "scanner"),
		interval:    time.Duration(cfg.Scheduler.ScanInterval) * time.Minute,
		concurrency: cfg.Workers.ScanConcurrency,
		location:    location,
	}
}

// Interval returns the scan cadence.
func (s *Scanner) Interval() time.Duration {
	return s.interval
}

// Run ticks until ctx is cancelled. Each tick runs under a deadline of one
// interval so a slow tick is cancelled rather than allowed to pile up behind
// the next one.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scanner started",
		logging.Duration("interval", s.interval),
		logging.String("time_zone", s.location.String()),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner stopped")
			return
		case <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, s.interval)
			s.Tick(tickCtx, time.Now())
			cancel()
		}
	}
}

// Tick performs one scan at the given instant and returns its summary. Each
// task's dispatch is isolated: one failed lookup or delivery never aborts the
// rest of the tick.
func (s *Scanner) Tick(ctx context.Context, now time.Time) Summary {
	summary := Summary{Start: now.UTC()}
	started := time.Now()

	tasks, err := s.store.ListOpenTasks(ctx)
	if err != nil {
		s.logger.Error("list open tasks", logging.Error(err))
		summary.Duration = time.Since(started)
		s.record(summary)
		return summary
	}
	summary.Scanned = len(tasks)

	due := DueWithin(tasks, now, DueWindow)
	summary.Matched = len(due)

	if len(due) > 0 {
		outcomes := s.fanOut(ctx, due)
		for _, outcome := range outcomes {
			switch outcome {
			case OutcomeSent:
				summary.Sent++
			case OutcomeSkipped:
				summary.Skipped++
			case OutcomeFailed:
				summary.Failed++
			}
		}
	}

	summary.Duration = time.Since(started)
	s.record(summary)
	s.logger.Info("scan tick complete",
		logging.Time("tick", now.In(s.location)),
		logging.Int("scanned", summary.Scanned),
		logging.Int("matched", summary.Matched),
		logging.Int("sent", summary.Sent),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	return summary
}

// fanOut dispatches due-soon notifications over a bounded worker pool.
func (s *Scanner) fanOut(ctx context.Context, due []*store.Task) []Outcome {
	workers := s.concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(due) {
		workers = len(due)
	}

	jobs := make(chan *store.Task)
	results := make(chan Outcome, len(due))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- s.dispatcher.Dispatch(ctx, notify.KindDueSoon, task)
			}
		}()
	}

	for _, task := range due {
		select {
		case jobs <- task:
		case <-ctx.Done():
			// Count the tasks the cancelled tick never reached as failed.
			results <- OutcomeFailed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	outcomes := make([]Outcome, 0, len(due))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// LastSummary returns the most recent tick summary, if any tick has run.
func (s *Scanner) LastSummary() (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

func (s *Scanner) record(summary Summary) {
	s.mu.Lock()
	s.last = summary
	s.hasLast = true
	s.mu.Unlock()
}

// DueWithin filters tasks to those whose due date lies strictly inside
// (now, now+window]. Tasks without a due date never match.
func DueWithin(tasks []*store.Task, now time.Time, window time.Duration) []*store.Task {
	windowEnd := now.Add(window)
	var due []*store.Task
	for _, task := range tasks {
		if task == nil || task.DueDate == nil {
			continue
		}
		d := *task.DueDate
		if d.After(now) && !d.After(windowEnd) {
			due = append(due, task)
		}
	}
	return due
}
