// Package daemon hosts the long-running tasknotify process.
//
// The daemon owns the store, the event and window-scan dispatchers, and the
// HTTP API. The API is both the inbound change feed (task snapshots and
// device registrations posted by the task application) and the operator
// surface the CLI talks to. A flock-based lock enforces a single instance
// per data directory.
package daemon
