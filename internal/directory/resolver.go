package directory

import (
	"context"
	"log/slog"
	"strings"

	"tasknotify/internal/logging"
	"tasknotify/internal/store"
)

// Resolver maps usernames to registered device tokens.
type Resolver struct {
	store  *store.Store
	logger *slog.Logger
}

// NewResolver constructs a resolver over the given store.
func NewResolver(st *store.Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  st,
		logger: logging.NewComponentLogger(logger, "directory"),
	}
}

// Resolve looks up the device token for a username. ok is false when the user
// does not exist or has no registered token; both are expected states and
// callers must skip delivery silently rather than treat them as failures. The
// error return is reserved for store access problems.
func (r *Resolver) Resolve(ctx context.Context, username string) (token string, ok bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", false, nil
	}

	user, err := r.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", false, err
	}
	if user == nil {
		r.logger.Debug("user not found", logging.String("username", username))
		return "", false, nil
	}
	if !user.HasToken() {
		r.logger.Debug("user has no device token", logging.String("username", username))
		return "", false, nil
	}
	return user.DeviceToken, true, nil
}
