// Package store persists task snapshots and user device registrations in
// SQLite.
//
// The dispatch pipeline is read-only against this store: it looks up users by
// username and scans open tasks. Writes come from the daemon's ingest API,
// which stands in for the external task application. SaveTask returns the
// prior snapshot so callers can observe state transitions without a separate
// change log.
package store
