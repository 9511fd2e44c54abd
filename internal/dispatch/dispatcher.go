package dispatch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"tasknotify/internal/directory"
	"tasknotify/internal/logging"
	"tasknotify/internal/notify"
	"tasknotify/internal/push"
	"tasknotify/internal/store"
)

// Outcome classifies a single dispatch attempt.
type Outcome string

const (
	// OutcomeSent means the gateway accepted the message.
	OutcomeSent Outcome = "sent"
	// OutcomeSkipped means no delivery was attempted: missing recipient
	// field, unknown user, or no registered token. Expected, never an error.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means a delivery was attempted or prepared and failed.
	OutcomeFailed Outcome = "failed"
)

// Dispatcher runs the resolve-build-send pipeline for one task and kind.
// Every failure is absorbed and logged here; callers only see the outcome,
// so one bad token or lookup can never abort sibling dispatches.
type Dispatcher struct {
	resolver *directory.Resolver
	gateway  push.Gateway
	opts     notify.Options
	logger   *slog.Logger
}

// New constructs a dispatcher over the given resolver and gateway.
func New(resolver *directory.Resolver, gateway push.Gateway, opts notify.Options, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		gateway:  gateway,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "dispatch"),
	}
}

// Dispatch resolves the recipient for kind, builds the message, and hands it
// to the gateway.
func (d *Dispatcher) Dispatch(ctx context.Context, kind notify.Kind, task *store.Task) Outcome {
	logger := d.logger.With(
		logging.String("dispatch_id", uuid.NewString()),
		logging.String("kind", kind.String()),
	)
	if task != nil {
		logger = logger.With(logging.String("task_id", task.ID))
	}

	recipient, err := kind.Recipient(task)
	if err != nil {
		logger.Warn("cannot determine recipient", logging.Error(err))
		return OutcomeFailed
	}
	if recipient == "" {
		logger.Info("task has no recipient for this kind; skipping")
		return OutcomeSkipped
	}
	logger = logger.With(logging.String("recipient", recipient))

	token, ok, err := d.resolver.Resolve(ctx, recipient)
	if err != nil {
		logger.Warn("recipient lookup failed; skipping", logging.Error(err))
		return OutcomeFailed
	}
	if !ok {
		logger.Info("recipient has no delivery token; skipping")
		return OutcomeSkipped
	}

	msg, err := notify.Build(kind, task, d.opts)
	if err != nil {
		logger.Warn("build message", logging.Error(err))
		return OutcomeFailed
	}
	msg.Token = token

	result := d.gateway.Send(ctx, msg)
	if !result.OK {
		logger.Warn("delivery failed",
			logging.String("detail", result.Detail),
			logging.Bool("unregistered_token", result.Unregistered),
		)
		return OutcomeFailed
	}

	logger.Info("notification sent")
	return OutcomeSent
}
