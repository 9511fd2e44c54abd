package dispatch

import (
	"context"
	"log/slog"

	"tasknotify/internal/logging"
	"tasknotify/internal/notify"
	"tasknotify/internal/store"
)

// Events reacts to task change-feed events. Each call is one-shot and
// independent; nothing here serializes against the window scanner.
type Events struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewEvents constructs the event-triggered dispatcher.
func NewEvents(dispatcher *Dispatcher, logger *slog.Logger) *Events {
	return &Events{
		dispatcher: dispatcher,
		logger:     logging.NewComponentLogger(logger, "events"),
	}
}

// TaskCreated handles a task creation event: the assignee gets a new-task
// notification. A missing snapshot is a malformed event and is skipped.
func (e *Events) TaskCreated(ctx context.Context, after *store.Task) Outcome {
	if after == nil {
		e.logger.Warn("created event without task snapshot; skipping")
		return OutcomeSkipped
	}
	return e.dispatcher.Dispatch(ctx, notify.KindNewTask, after)
}

// TaskUpdated handles a task update event. The task creator is notified only
// on the strict open-to-completed transition: before.Completed must be false
// and after.Completed true. Re-saves of an already-completed task, reversals,
// and unrelated field changes are all no-ops.
func (e *Events) TaskUpdated(ctx context.Context, before, after *store.Task) Outcome {
	if after == nil {
		e.logger.Warn("updated event without after snapshot; skipping")
		return OutcomeSkipped
	}
	if before == nil {
		e.logger.Warn("updated event without before snapshot; skipping",
			logging.String("task_id", after.ID))
		return OutcomeSkipped
	}
	if before.Completed || !after.Completed {
		return OutcomeSkipped
	}
	return e.dispatcher.Dispatch(ctx, notify.KindTaskCompleted, after)
}
