package push

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"tasknotify/internal/config"
	"tasknotify/internal/logging"
	"tasknotify/internal/notify"
)

// Result reports the outcome of a single delivery attempt. Failures are data,
// not errors: the gateway never lets a provider or transport problem escape
// its boundary.
type Result struct {
	OK           bool
	Detail       string
	Unregistered bool
}

// Gateway sends one constructed message per call. Implementations do not
// retry; retry policy, if any, belongs to callers.
type Gateway interface {
	Send(ctx context.Context, msg notify.Message) Result
}

// NewGateway builds the gateway described by the configuration: the HTTP
// provider client when an endpoint is configured, a dry-run logger when
// dry_run is set, and a no-op otherwise.
func NewGateway(cfg *config.Config, logger *slog.Logger) Gateway {
	logger = logging.NewComponentLogger(logger, "push")
	if cfg == nil || !cfg.PushConfigured() {
		logger.Info("push endpoint not configured; deliveries disabled")
		return noopGateway{}
	}
	if cfg.Push.DryRun {
		return &dryRunGateway{logger: logger}
	}

	token := cfg.Push.BearerToken
	if token == "" && cfg.Push.TokenFile != "" {
		data, err := os.ReadFile(cfg.Push.TokenFile)
		if err != nil {
			logger.Warn("push token file unreadable; deliveries disabled", logging.Error(err))
			return noopGateway{}
		}
		token = strings.TrimSpace(string(data))
	}

	return NewHTTPGateway(cfg.Push.Endpoint, token, newHTTPClient(cfg))
}

// noopGateway silently succeeds without delivering anything. Used when no
// provider is configured so the dispatch pipeline stays exercised end to end.
type noopGateway struct{}

func (noopGateway) Send(context.Context, notify.Message) Result {
	return Result{OK: true, Detail: "push disabled"}
}

// dryRunGateway logs what would have been sent instead of sending it.
type dryRunGateway struct {
	logger *slog.Logger
}

func (g *dryRunGateway) Send(_ context.Context, msg notify.Message) Result {
	g.logger.Info("dry run delivery",
		logging.String("token", truncateToken(msg.Token)),
		logging.String("title", msg.Title),
		logging.String("type", msg.Data["type"]),
		logging.String("task_id", msg.Data["taskId"]),
	)
	return Result{OK: true, Detail: "dry run"}
}

func truncateToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
