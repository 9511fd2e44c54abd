package testsupport

import (
	"path/filepath"
	"testing"

	"tasknotify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Logging.Format = "json"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithPushEndpoint points the push gateway at a test server.
func WithPushEndpoint(endpoint, token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Push.Endpoint = endpoint
		cfg.Push.BearerToken = token
	}
}

// WithScanInterval overrides the scheduler interval in minutes.
func WithScanInterval(minutes int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scheduler.ScanInterval = minutes
	}
}
